package identity

import "context"

// ProviderGoogle is the stable identifier of the Google provider.
const ProviderGoogle = "google"

// Profile is the normalized identity a provider returns on successful
// sign-in. Fields a provider cannot supply stay empty.
type Profile struct {
	Email   string
	Name    string
	Photo   string
	IDToken string
}

// Provider abstracts a third-party sign-in flow behind a minimal interface.
// Implementations encapsulate all protocol details and expose only the
// primitives the adapter needs.
type Provider interface {
	// ProviderID returns a stable provider identifier used for logging,
	// e.g. "google".
	ProviderID() string

	// CheckAvailability verifies the provider's services are reachable before
	// the sign-in prompt is shown. Return ErrServicesUnavailable (possibly
	// wrapped) when they are not.
	CheckAvailability(ctx context.Context) error

	// SignIn runs the interactive sign-in flow and returns the resulting
	// profile. Return ErrSignInCancelled (possibly wrapped) when the user
	// aborts.
	SignIn(ctx context.Context) (Profile, error)

	// SignOut revokes the provider-side session. Failures are reported but
	// callers treat sign-out as best-effort.
	SignOut(ctx context.Context) error
}
