package feed

import "errors"

var (
	// ErrPostNotFound is returned by Get when the demo API has no post with
	// the requested id.
	ErrPostNotFound = errors.New("feed: post not found")

	// ErrAuthorNotFound is returned by Author when the demo API has no user
	// with the requested id.
	ErrAuthorNotFound = errors.New("feed: author not found")

	// ErrFetchFailed wraps transport or decode failures from the demo API.
	ErrFetchFailed = errors.New("feed: fetch failed")
)
