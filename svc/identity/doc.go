// Package identity integrates third-party sign-in providers with the session
// layer. A Provider abstracts the provider-specific flow (availability check,
// interactive sign-in, sign-out) behind a minimal interface; the Adapter
// translates provider outcomes into the session manager's vocabulary and maps
// known failure modes to human-readable messages.
//
// GoogleProvider implements the flow against Google's OAuth 2.0 endpoints
// with offline access, delegating the interactive authorization step to a
// caller-supplied callback.
package identity
