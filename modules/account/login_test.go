package account_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljip/rt07/modules/account"
	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/kvstore"
	"github.com/michaeljip/rt07/pkg/validator"
	"github.com/michaeljip/rt07/svc/identity"
	"github.com/michaeljip/rt07/svc/session"
)

const meBody = `{"meta":{"status":200,"message":"ok"},"data":{"_id":"u-1","email":"user@example.com","username":"user","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}}`

func authServer(t *testing.T, wantToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var form struct {
			Identifier string `json:"identifier"`
			Password   string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		if form.Identifier != "user@example.com" || form.Password != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"meta":{"status":401,"message":"invalid credentials"},"data":null}`))
			return
		}
		_, _ = w.Write([]byte(`{"meta":{"status":200,"message":"ok"},"data":"` + wantToken + `"}`))
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(meBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newService(t *testing.T, baseURL string) (*account.Service, *session.Manager, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	client := apiclient.New(baseURL)
	sessions := session.New(store, client)
	t.Cleanup(func() { _ = sessions.Close() })
	return account.NewService(client, sessions), sessions, store
}

func TestLoginForm_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid form passes", func(t *testing.T) {
		t.Parallel()

		form := account.LoginForm{Email: "user@example.com", Password: "secret1"}
		require.NoError(t, form.Validate())
	})

	t.Run("missing email reported on email field", func(t *testing.T) {
		t.Parallel()

		form := account.LoginForm{Password: "secret1"}
		err := form.Validate()
		require.Error(t, err)

		var verr validator.ValidationErrors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("email"))
		assert.False(t, verr.Has("password"))
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		t.Parallel()

		form := account.LoginForm{Email: "not-an-email", Password: "secret1"}
		err := form.Validate()
		require.Error(t, err)

		var verr validator.ValidationErrors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("email"))
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()

		form := account.LoginForm{Email: "user@example.com", Password: "12345"}
		err := form.Validate()
		require.Error(t, err)

		var verr validator.ValidationErrors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("password"))
		assert.Contains(t, verr.Get("password"), "must be at least 6 characters long")
	})

	t.Run("all failing fields collected", func(t *testing.T) {
		t.Parallel()

		err := account.LoginForm{}.Validate()

		var verr validator.ValidationErrors
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("email"))
		assert.True(t, verr.Has("password"))
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	t.Run("success installs token and profile", func(t *testing.T) {
		t.Parallel()

		srv := authServer(t, "tok-123")
		svc, sessions, store := newService(t, srv.URL)

		require.NoError(t, svc.Login(context.Background(), "user@example.com", "secret1"))

		st := sessions.State()
		assert.True(t, st.IsAuthenticated())
		assert.Equal(t, "tok-123", st.Token)
		require.NotNil(t, st.User)
		assert.Equal(t, "u-1", st.User.ID)

		stored, err := store.Get(context.Background(), session.StorageKeyToken)
		require.NoError(t, err)
		assert.Equal(t, "tok-123", stored)
	})

	t.Run("invalid form never reaches the backend", func(t *testing.T) {
		t.Parallel()

		svc, sessions, _ := newService(t, "http://127.0.0.1:1")

		err := svc.Login(context.Background(), "", "")

		var verr validator.ValidationErrors
		require.ErrorAs(t, err, &verr)
		assert.False(t, sessions.IsAuthenticated())
	})

	t.Run("rejected credentials wrapped in ErrLoginFailed", func(t *testing.T) {
		t.Parallel()

		srv := authServer(t, "tok-123")
		svc, sessions, _ := newService(t, srv.URL)

		err := svc.Login(context.Background(), "user@example.com", "wrongpw")
		require.ErrorIs(t, err, account.ErrLoginFailed)

		var apiErr *apiclient.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "invalid credentials", apiErr.Message)
		assert.False(t, sessions.IsAuthenticated())
	})

	t.Run("empty token in response rejected", func(t *testing.T) {
		t.Parallel()

		srv := authServer(t, "")
		svc, sessions, _ := newService(t, srv.URL)

		err := svc.Login(context.Background(), "user@example.com", "secret1")
		require.ErrorIs(t, err, account.ErrLoginFailed)
		assert.False(t, sessions.IsAuthenticated())
	})

	t.Run("unreachable backend wrapped in ErrLoginFailed", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t, "http://127.0.0.1:1")

		err := svc.Login(context.Background(), "user@example.com", "secret1")
		require.ErrorIs(t, err, account.ErrLoginFailed)
		require.ErrorIs(t, err, apiclient.ErrRequestFailed)
	})
}

type stubGoogleProvider struct {
	profile identity.Profile
	err     error
}

func (p *stubGoogleProvider) ProviderID() string                     { return identity.ProviderGoogle }
func (p *stubGoogleProvider) CheckAvailability(context.Context) error { return nil }
func (p *stubGoogleProvider) SignOut(context.Context) error           { return nil }

func (p *stubGoogleProvider) SignIn(context.Context) (identity.Profile, error) {
	return p.profile, p.err
}

func TestService_GoogleLogin(t *testing.T) {
	t.Parallel()

	t.Run("not configured", func(t *testing.T) {
		t.Parallel()

		svc, _, _ := newService(t, "http://127.0.0.1:1")

		err := svc.GoogleLogin(context.Background())
		require.ErrorIs(t, err, account.ErrGoogleUnavailable)
	})

	t.Run("success stores google profile", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		client := apiclient.New("http://127.0.0.1:1")
		sessions := session.New(store, client)
		t.Cleanup(func() { _ = sessions.Close() })

		provider := &stubGoogleProvider{profile: identity.Profile{
			Email:   "g@example.com",
			Name:    "G User",
			IDToken: "id-tok",
		}}
		adapter := identity.NewAdapter(provider, sessions, nil)
		svc := account.NewService(client, sessions, account.WithGoogleAdapter(adapter))

		require.NoError(t, svc.GoogleLogin(context.Background()))
		assert.True(t, sessions.IsAuthenticated())
		require.NotNil(t, sessions.State().GoogleUser)
		assert.Equal(t, "g@example.com", sessions.State().GoogleUser.Email)
	})

	t.Run("cancelled sign-in surfaces adapter error", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		client := apiclient.New("http://127.0.0.1:1")
		sessions := session.New(store, client)
		t.Cleanup(func() { _ = sessions.Close() })

		provider := &stubGoogleProvider{err: identity.ErrSignInCancelled}
		adapter := identity.NewAdapter(provider, sessions, nil)
		svc := account.NewService(client, sessions, account.WithGoogleAdapter(adapter))

		err := svc.GoogleLogin(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, identity.ErrSignInCancelled))
		assert.Equal(t, "Sign-in was cancelled", identity.Message(err))
		assert.False(t, sessions.IsAuthenticated())
	})
}
