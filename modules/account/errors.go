package account

import "errors"

var (
	// ErrLoginFailed wraps a rejected credential exchange with the auth backend.
	ErrLoginFailed = errors.New("account: login failed")

	// ErrGoogleUnavailable is returned by GoogleLogin when no Google adapter
	// was configured on the service.
	ErrGoogleUnavailable = errors.New("account: google sign-in not configured")
)
