package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/kvstore"
)

func TestClient_Do(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("sends json defaults and request id", func(t *testing.T) {
		t.Parallel()

		var got *http.Request
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Clone(context.Background())
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := apiclient.New(srv.URL)
		_, err := client.Get(ctx, "/posts")
		require.NoError(t, err)

		assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
		assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
		assert.Equal(t, "/posts", got.URL.Path)
	})

	t.Run("post encodes body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			require.NoError(t, jsonDecode(r, &body))
			assert.Equal(t, "a@b.com", body["identifier"])
			w.Write([]byte(`{"meta":{"status":200,"message":"ok"},"data":"token-abc"}`))
		}))
		defer srv.Close()

		client := apiclient.New(srv.URL)
		resp, err := client.Post(ctx, "/auth/login", map[string]string{"identifier": "a@b.com", "password": "secret"})
		require.NoError(t, err)

		token, err := apiclient.DecodeEnvelope[string](resp)
		require.NoError(t, err)
		assert.Equal(t, "token-abc", token)
	})

	t.Run("4xx returns typed error with envelope message", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"meta":{"status":404,"message":"post not found"}}`))
		}))
		defer srv.Close()

		client := apiclient.New(srv.URL)
		_, err := client.Get(ctx, "/posts/999")

		require.Error(t, err)
		assert.True(t, apiclient.IsNotFound(err))
		assert.Equal(t, http.StatusNotFound, apiclient.StatusOf(err))
		assert.Contains(t, err.Error(), "post not found")
	})

	t.Run("transport failure wraps ErrRequestFailed", func(t *testing.T) {
		t.Parallel()

		client := apiclient.New("http://127.0.0.1:1")
		_, err := client.Get(ctx, "/posts")
		assert.ErrorIs(t, err, apiclient.ErrRequestFailed)
	})

	t.Run("panics on empty base url", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { apiclient.New("") })
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	newServer := func(t *testing.T, gotAuth *string) *httptest.Server {
		t.Helper()
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
	}

	t.Run("attaches header when token stored", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "abc"))

		var gotAuth string
		srv := newServer(t, &gotAuth)
		defer srv.Close()

		client := apiclient.New(srv.URL, apiclient.WithRequestInterceptor(apiclient.BearerToken(store, "token")))
		_, err := client.Get(ctx, "/auth/me")
		require.NoError(t, err)

		assert.Equal(t, "Bearer abc", gotAuth)
	})

	t.Run("omits header when no token stored", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()

		var gotAuth string
		srv := newServer(t, &gotAuth)
		defer srv.Close()

		client := apiclient.New(srv.URL, apiclient.WithRequestInterceptor(apiclient.BearerToken(store, "token")))
		_, err := client.Get(ctx, "/auth/me")
		require.NoError(t, err)

		assert.Empty(t, gotAuth)
	})
}

func TestEvictTokenOnUnauthorized(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("removes stored token and notifies on 401", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "abc"))

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		notified := false
		client := apiclient.New(srv.URL,
			apiclient.WithResponseInterceptor(apiclient.EvictTokenOnUnauthorized(store, "token", func() { notified = true })),
		)

		_, err := client.Post(ctx, "/anything", nil)
		require.Error(t, err)
		assert.True(t, apiclient.IsUnauthorized(err))
		assert.True(t, notified)

		_, err = store.Get(ctx, "token")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("leaves token for other statuses", func(t *testing.T) {
		t.Parallel()

		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "token", "abc"))

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := apiclient.New(srv.URL,
			apiclient.WithResponseInterceptor(apiclient.EvictTokenOnUnauthorized(store, "token", nil)),
		)

		_, err := client.Get(ctx, "/anything")
		require.Error(t, err)

		token, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("envelope unwraps data", func(t *testing.T) {
		t.Parallel()

		resp := &apiclient.Response{Body: []byte(`{"meta":{"status":200,"message":"ok"},"data":{"_id":"1","email":"a@b.com"}}`)}

		type user struct {
			ID    string `json:"_id"`
			Email string `json:"email"`
		}
		u, err := apiclient.DecodeEnvelope[user](resp)
		require.NoError(t, err)
		assert.Equal(t, "1", u.ID)
		assert.Equal(t, "a@b.com", u.Email)
	})

	t.Run("raw json", func(t *testing.T) {
		t.Parallel()

		resp := &apiclient.Response{Body: []byte(`[{"id":1,"title":"first"}]`)}

		type post struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		}
		posts, err := apiclient.DecodeJSON[[]post](resp)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "first", posts[0].Title)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		resp := &apiclient.Response{Body: []byte(`not json`)}
		_, err := apiclient.DecodeEnvelope[string](resp)
		assert.ErrorIs(t, err, apiclient.ErrDecodeResponse)
	})
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
