package feed

import (
	"context"
	"errors"
	"strconv"

	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/cache"
)

// Post is a read-only item from the demo API feed.
type Post struct {
	ID     int    `json:"id"`
	UserID int    `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Company is the optional employer record embedded in an Author.
type Company struct {
	Name string `json:"name"`
}

// Author is the demo API user who wrote a post.
type Author struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Company  *Company `json:"company,omitempty"`
}

const defaultCacheSize = 128

// Service reads posts and authors from the demo API, caching per-id lookups.
type Service struct {
	client  *apiclient.Client
	posts   *cache.LRU[int, Post]
	authors *cache.LRU[int, Author]
}

// Option configures a Service.
type Option func(*Service)

// WithCacheSize overrides the per-id cache capacity. Panics if size <= 0.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.posts = cache.NewLRU[int, Post](size)
		s.authors = cache.NewLRU[int, Author](size)
	}
}

// NewService returns a feed service bound to the demo API client.
func NewService(client *apiclient.Client, opts ...Option) *Service {
	s := &Service{
		client:  client,
		posts:   cache.NewLRU[int, Post](defaultCacheSize),
		authors: cache.NewLRU[int, Author](defaultCacheSize),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List fetches the full feed and primes the per-id post cache.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	resp, err := s.client.Get(ctx, "/posts")
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}

	posts, err := apiclient.DecodeJSON[[]Post](resp)
	if err != nil {
		return nil, errors.Join(ErrFetchFailed, err)
	}

	for _, p := range posts {
		s.posts.Put(p.ID, p)
	}
	return posts, nil
}

// Refresh drops the cached posts and fetches the feed again.
func (s *Service) Refresh(ctx context.Context) ([]Post, error) {
	s.posts.Clear()
	return s.List(ctx)
}

// Seed installs an already-fetched post into the cache so that a subsequent
// Get for its id is served without a round trip. The detail view uses it to
// reuse the list item it navigated from.
func (s *Service) Seed(post Post) {
	s.posts.Put(post.ID, post)
}

// Get returns the post with the given id, from cache when possible.
// Unknown ids yield ErrPostNotFound.
func (s *Service) Get(ctx context.Context, id int) (Post, error) {
	if p, ok := s.posts.Get(id); ok {
		return p, nil
	}

	resp, err := s.client.Get(ctx, "/posts/"+strconv.Itoa(id))
	if err != nil {
		if apiclient.IsNotFound(err) {
			return Post{}, ErrPostNotFound
		}
		return Post{}, errors.Join(ErrFetchFailed, err)
	}

	p, err := apiclient.DecodeJSON[Post](resp)
	if err != nil {
		return Post{}, errors.Join(ErrFetchFailed, err)
	}

	s.posts.Put(p.ID, p)
	return p, nil
}

// Author returns the user who wrote a post, from cache when possible.
// Unknown ids yield ErrAuthorNotFound.
func (s *Service) Author(ctx context.Context, userID int) (Author, error) {
	if a, ok := s.authors.Get(userID); ok {
		return a, nil
	}

	resp, err := s.client.Get(ctx, "/users/"+strconv.Itoa(userID))
	if err != nil {
		if apiclient.IsNotFound(err) {
			return Author{}, ErrAuthorNotFound
		}
		return Author{}, errors.Join(ErrFetchFailed, err)
	}

	a, err := apiclient.DecodeJSON[Author](resp)
	if err != nil {
		return Author{}, errors.Join(ErrFetchFailed, err)
	}

	s.authors.Put(a.ID, a)
	return a, nil
}
