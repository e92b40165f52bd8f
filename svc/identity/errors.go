package identity

import "errors"

var (
	// ErrSignInInProgress indicates another sign-in attempt is still running.
	ErrSignInInProgress = errors.New("identity: sign-in already in progress")

	// ErrServicesUnavailable indicates the provider's services cannot be
	// reached from this device.
	ErrServicesUnavailable = errors.New("identity: provider services not available")

	// ErrSignInCancelled indicates the user aborted the sign-in prompt.
	ErrSignInCancelled = errors.New("identity: sign-in was cancelled")

	// ErrExchangeFailed indicates the authorization code could not be
	// exchanged for a token.
	ErrExchangeFailed = errors.New("identity: authorization code exchange failed")

	// ErrNoEmail indicates the provider did not return an email address.
	ErrNoEmail = errors.New("identity: provider returned no email")
)

// Message maps known sign-in failures to the fixed human-readable messages
// shown inline on the login screen. Unknown errors fall back to their own
// message, or a generic one when there is none.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSignInInProgress):
		return "Sign-in already in progress"
	case errors.Is(err, ErrServicesUnavailable):
		return "Sign-in services are not available"
	case errors.Is(err, ErrSignInCancelled):
		return "Sign-in was cancelled"
	default:
		if msg := err.Error(); msg != "" {
			return msg
		}
		return "Google Sign-In failed"
	}
}
