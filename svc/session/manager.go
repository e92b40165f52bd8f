package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/kvstore"
	"github.com/michaeljip/rt07/pkg/observable"
)

const profilePath = "/auth/me"

// Manager bridges durable storage and in-memory session state. Mutators are
// serialized by a single mutex, so overlapping SetToken/Logout calls cannot
// interleave and leave an inconsistent final state.
type Manager struct {
	store  kvstore.Store
	client *apiclient.Client

	mu          sync.Mutex
	state       *observable.Value[State]
	restoreOnce sync.Once
}

// New creates a session manager. The manager starts in the loading state;
// call Restore once at startup to leave it.
func New(store kvstore.Store, client *apiclient.Client) *Manager {
	return &Manager{
		store:  store,
		client: client,
		state:  observable.NewValue(State{Loading: true}),
	}
}

// State returns the current session snapshot.
func (m *Manager) State() State {
	return m.state.Get()
}

// IsAuthenticated reports whether the session currently authenticates the
// client, derived from the in-memory snapshot on every call.
func (m *Manager) IsAuthenticated() bool {
	return m.state.Get().IsAuthenticated()
}

// Subscribe delivers every session state change until ctx is cancelled.
func (m *Manager) Subscribe(ctx context.Context) *observable.Subscription[State] {
	return m.state.Subscribe(ctx)
}

// Close releases the state observable and its subscriptions.
func (m *Manager) Close() error {
	return m.state.Close()
}

// Restore loads the persisted session exactly once per process lifetime.
// A stored token is verified by fetching the user profile; any failure along
// the way (storage, network, parsing) is absorbed into a clean logged-out
// state with both storage keys removed. The loading flag is cleared on every
// path.
func (m *Manager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		m.restore(ctx)
	})
}

func (m *Manager) restore(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	defer m.state.Update(func(s State) State {
		s.Loading = false
		return s
	})

	if err := m.loadStored(ctx); err != nil {
		// Treat an unverifiable session as no session
		_ = m.store.Remove(ctx, StorageKeyToken)
		_ = m.store.Remove(ctx, StorageKeyGoogleUser)
		m.state.Update(func(s State) State {
			s.Token = ""
			s.User = nil
			s.GoogleUser = nil
			return s
		})
	}
}

// loadStored applies whichever identity storage holds: a bearer token wins
// over a google identity. Callers must hold m.mu.
func (m *Manager) loadStored(ctx context.Context) error {
	token, err := m.store.Get(ctx, StorageKeyToken)
	if err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
		return err
	}

	if token != "" {
		m.state.Update(func(s State) State {
			s.Token = token
			return s
		})

		user, err := m.fetchProfile(ctx)
		if err != nil {
			return err
		}

		m.state.Update(func(s State) State {
			s.User = &user
			return s
		})
		return nil
	}

	raw, err := m.store.Get(ctx, StorageKeyGoogleUser)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	var googleUser GoogleUser
	if err := json.Unmarshal([]byte(raw), &googleUser); err != nil {
		return err
	}

	m.state.Update(func(s State) State {
		s.GoogleUser = &googleUser
		return s
	})
	return nil
}

// SetToken persists the token, updates memory, then fetches the canonical
// user profile. A profile-fetch failure propagates to the caller and leaves
// the token persisted; the caller owns the recovery decision (retry or
// logout).
func (m *Manager) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, StorageKeyToken, token); err != nil {
		return errors.Join(ErrPersistToken, err)
	}

	m.state.Update(func(s State) State {
		s.Token = token
		return s
	})

	user, err := m.fetchProfile(ctx)
	if err != nil {
		return errors.Join(ErrProfileFetch, err)
	}

	m.state.Update(func(s State) State {
		s.User = &user
		return s
	})
	return nil
}

// SetGoogleUser persists the google identity and updates memory. The token
// session, if any, is left untouched.
func (m *Manager) SetGoogleUser(ctx context.Context, googleUser GoogleUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, err := json.Marshal(googleUser)
	if err != nil {
		return errors.Join(ErrPersistGoogleUser, err)
	}

	if err := m.store.Set(ctx, StorageKeyGoogleUser, string(raw)); err != nil {
		return errors.Join(ErrPersistGoogleUser, err)
	}

	m.state.Update(func(s State) State {
		s.GoogleUser = &googleUser
		return s
	})
	return nil
}

// Logout removes both storage keys and clears every in-memory identity field,
// regardless of which identity was active.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, StorageKeyToken); err != nil {
		return errors.Join(ErrLogout, err)
	}
	if err := m.store.Remove(ctx, StorageKeyGoogleUser); err != nil {
		return errors.Join(ErrLogout, err)
	}

	m.state.Update(func(s State) State {
		s.Token = ""
		s.User = nil
		s.GoogleUser = nil
		return s
	})
	return nil
}

// HandleUnauthorized reacts to the HTTP client's 401 interceptor: the stored
// token is already gone, so the in-memory token session is dropped to keep
// memory and storage consistent. A google identity, if present, survives.
//
// It must not take the mutation mutex: the interceptor can fire from inside a
// mutator's own profile fetch, while that mutator still holds it. The state
// observable's internal lock keeps the clear atomic.
func (m *Manager) HandleUnauthorized() {
	m.state.Update(func(s State) State {
		s.Token = ""
		s.User = nil
		return s
	})
}

func (m *Manager) fetchProfile(ctx context.Context) (User, error) {
	resp, err := m.client.Get(ctx, profilePath)
	if err != nil {
		return User{}, err
	}
	return apiclient.DecodeEnvelope[User](resp)
}
