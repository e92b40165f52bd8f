// Package account implements credential and Google sign-in flows on top of
// the session manager.
//
// The Service validates login input, exchanges credentials for a bearer token
// at the auth backend, and hands the token to svc/session which persists it
// and loads the profile. Google sign-in is delegated to an identity.Adapter.
//
// # Usage
//
//	svc := account.NewService(client, sessions,
//		account.WithGoogleAdapter(adapter),
//	)
//
//	if err := svc.Login(ctx, "user@example.com", "secret"); err != nil {
//		var verr validator.ValidationErrors
//		if errors.As(err, &verr) {
//			// show per-field messages
//		}
//	}
//
// Field-level validation failures are returned as
// validator.ValidationErrors so callers can render inline errors next to
// the offending input.
package account
