package session

import "errors"

var (
	// ErrProfileFetch indicates the user profile could not be fetched after a
	// token was set. The token remains persisted; callers decide how to react.
	ErrProfileFetch = errors.New("session: failed to fetch user profile")

	// ErrPersistToken indicates the token could not be written to storage.
	ErrPersistToken = errors.New("session: failed to persist token")

	// ErrPersistGoogleUser indicates the google identity could not be written
	// to storage.
	ErrPersistGoogleUser = errors.New("session: failed to persist google user")

	// ErrLogout indicates storage keys could not be removed during logout.
	ErrLogout = errors.New("session: failed to clear stored credentials")
)
