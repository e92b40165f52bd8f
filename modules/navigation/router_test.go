package navigation_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljip/rt07/modules/navigation"
	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/kvstore"
	"github.com/michaeljip/rt07/svc/session"
)

func authedState() session.State {
	return session.State{
		Token: "tok",
		User:  &session.User{ID: "u-1", Email: "a@b.com"},
	}
}

func TestRouter_Apply(t *testing.T) {
	t.Parallel()

	newRouter := func(t *testing.T) *navigation.Router {
		t.Helper()
		store := kvstore.NewMemoryStore()
		sessions := session.New(store, apiclient.New("http://127.0.0.1:1"))
		t.Cleanup(func() { _ = sessions.Close() })
		r := navigation.New(sessions)
		t.Cleanup(func() { _ = r.Close() })
		return r
	}

	t.Run("starts on spinner", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		assert.Equal(t, navigation.StackSpinner, r.Current())
		assert.Equal(t, navigation.StateInitializing, r.State())
	})

	t.Run("loading state keeps the spinner", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), session.State{Loading: true})
		assert.Equal(t, navigation.StackSpinner, r.Current())
	})

	t.Run("restore without session lands on login", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), session.State{})
		assert.Equal(t, navigation.StackLogin, r.Current())
		assert.Equal(t, navigation.StateUnauthenticated, r.State())
	})

	t.Run("restore with session lands on main", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), authedState())
		assert.Equal(t, navigation.StackMain, r.Current())
	})

	t.Run("google-only session counts as authenticated", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), session.State{
			GoogleUser: &session.GoogleUser{Email: "g@example.com"},
		})
		assert.Equal(t, navigation.StackMain, r.Current())
	})

	t.Run("login moves to main", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), session.State{})
		require.Equal(t, navigation.StackLogin, r.Current())

		r.Apply(context.Background(), authedState())
		assert.Equal(t, navigation.StackMain, r.Current())
	})

	t.Run("logout moves back to login", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), authedState())
		require.Equal(t, navigation.StackMain, r.Current())

		r.Apply(context.Background(), session.State{})
		assert.Equal(t, navigation.StackLogin, r.Current())
	})

	t.Run("session invalidation also moves back to login", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), authedState())
		require.Equal(t, navigation.StackMain, r.Current())

		// Token cleared by a 401 reaction, user dropped with it.
		r.Apply(context.Background(), session.State{})
		assert.Equal(t, navigation.StackLogin, r.Current())
		assert.Equal(t, navigation.StateUnauthenticated, r.State())
	})

	t.Run("never returns to initializing", func(t *testing.T) {
		t.Parallel()

		r := newRouter(t)
		r.Apply(context.Background(), session.State{})
		r.Apply(context.Background(), session.State{Loading: true})
		assert.Equal(t, navigation.StateUnauthenticated, r.State())
		assert.Equal(t, navigation.StackLogin, r.Current())
	})
}

func TestRouter_Run(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta":{"status":200,"message":"ok"},"data":{"_id":"u-1","email":"a@b.com","username":"a","createdAt":"","updatedAt":""}}`))
	}))
	t.Cleanup(srv.Close)

	store := kvstore.NewMemoryStore()
	sessions := session.New(store, apiclient.New(srv.URL))
	t.Cleanup(func() { _ = sessions.Close() })

	router := navigation.New(sessions)
	t.Cleanup(func() { _ = router.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go router.Run(ctx)

	sessions.Restore(context.Background())
	require.Eventually(t, func() bool {
		return router.Current() == navigation.StackLogin
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, sessions.SetToken(context.Background(), "tok"))
	require.Eventually(t, func() bool {
		return router.Current() == navigation.StackMain
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, sessions.Logout(context.Background()))
	require.Eventually(t, func() bool {
		return router.Current() == navigation.StackLogin
	}, time.Second, 10*time.Millisecond)
}
