package identity

import (
	"context"
	"log/slog"
	"sync"

	"github.com/michaeljip/rt07/svc/session"
)

// Result is the outcome of a sign-in attempt, in the shape the login screen
// consumes: either a profile or a failure with a display message.
type Result struct {
	Success bool
	IDToken string
	Profile Profile
	Err     error
}

// Adapter runs the provider flow and records the resulting identity in the
// session manager. It also tracks a small amount of local UI state (whether a
// sign-in is in flight, the last failure) independent of the session's own
// loading flag.
type Adapter struct {
	provider Provider
	sessions *session.Manager
	log      *slog.Logger

	mu        sync.Mutex
	signingIn bool
	lastErr   error
}

// NewAdapter creates an adapter for provider. log may be nil.
func NewAdapter(provider Provider, sessions *session.Manager, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{
		provider: provider,
		sessions: sessions,
		log:      log,
	}
}

// SignIn performs availability check, the provider sign-in prompt, and stores
// the normalized identity in the session. Only one attempt may be in flight
// at a time; a second call fails with ErrSignInInProgress.
func (a *Adapter) SignIn(ctx context.Context) Result {
	a.mu.Lock()
	if a.signingIn {
		a.mu.Unlock()
		return Result{Err: ErrSignInInProgress}
	}
	a.signingIn = true
	a.lastErr = nil
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.signingIn = false
		a.mu.Unlock()
	}()

	result := a.signIn(ctx)
	if result.Err != nil {
		a.mu.Lock()
		a.lastErr = result.Err
		a.mu.Unlock()
	}
	return result
}

func (a *Adapter) signIn(ctx context.Context) Result {
	if err := a.provider.CheckAvailability(ctx); err != nil {
		return Result{Err: err}
	}

	profile, err := a.provider.SignIn(ctx)
	if err != nil {
		return Result{Err: err}
	}

	err = a.sessions.SetGoogleUser(ctx, session.GoogleUser{
		Email:   profile.Email,
		Name:    profile.Name,
		Photo:   profile.Photo,
		IDToken: profile.IDToken,
	})
	if err != nil {
		return Result{Err: err}
	}

	return Result{Success: true, IDToken: profile.IDToken, Profile: profile}
}

// SignOut is best-effort: provider failures are logged, never surfaced.
func (a *Adapter) SignOut(ctx context.Context) {
	if err := a.provider.SignOut(ctx); err != nil {
		a.log.Warn("provider sign-out failed",
			slog.String("provider", a.provider.ProviderID()),
			slog.Any("error", err),
		)
	}
}

// SigningIn reports whether a sign-in attempt is currently in flight.
func (a *Adapter) SigningIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signingIn
}

// LastError returns the failure of the most recent sign-in attempt, if any.
func (a *Adapter) LastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
