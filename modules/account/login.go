package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/michaeljip/rt07/pkg/apiclient"
	"github.com/michaeljip/rt07/pkg/validator"
	"github.com/michaeljip/rt07/svc/identity"
	"github.com/michaeljip/rt07/svc/session"
)

const loginPath = "/auth/login"

// LoginForm carries the credential inputs as submitted by the user.
type LoginForm struct {
	Email    string `json:"identifier"`
	Password string `json:"password"`
}

// Validate checks the form against the login schema. It returns
// validator.ValidationErrors describing every failing field, or nil when the
// form is acceptable.
func (f LoginForm) Validate() error {
	return validator.Apply(
		validator.Required("email", f.Email),
		validator.ValidEmail("email", f.Email),
		validator.Required("password", f.Password),
		validator.MinLen("password", f.Password, 6),
	)
}

// Service drives the login flows against the auth backend.
type Service struct {
	client   *apiclient.Client
	sessions *session.Manager
	google   *identity.Adapter
}

// Option configures a Service.
type Option func(*Service)

// WithGoogleAdapter enables GoogleLogin through the given adapter.
func WithGoogleAdapter(a *identity.Adapter) Option {
	return func(s *Service) { s.google = a }
}

// NewService returns a login service bound to the auth API client and the
// session manager that receives successful outcomes.
func NewService(client *apiclient.Client, sessions *session.Manager, opts ...Option) *Service {
	s := &Service{client: client, sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login validates the credentials, exchanges them for a bearer token and
// installs the token in the session manager.
//
// Validation failures come back as validator.ValidationErrors for inline
// rendering. A rejected exchange is wrapped in ErrLoginFailed; the backend
// message, when present, is preserved in the chain as an *apiclient.Error.
func (s *Service) Login(ctx context.Context, email, password string) error {
	form := LoginForm{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		return err
	}

	resp, err := s.client.Post(ctx, loginPath, form)
	if err != nil {
		return errors.Join(ErrLoginFailed, err)
	}

	token, err := apiclient.DecodeEnvelope[string](resp)
	if err != nil {
		return errors.Join(ErrLoginFailed, err)
	}
	if token == "" {
		return fmt.Errorf("%w: empty token in response", ErrLoginFailed)
	}

	return s.sessions.SetToken(ctx, token)
}

// GoogleLogin runs the Google sign-in flow through the configured adapter.
// The adapter stores the resulting profile in the session manager itself;
// use identity.Message on the returned error for a user-facing string.
func (s *Service) GoogleLogin(ctx context.Context) error {
	if s.google == nil {
		return ErrGoogleUnavailable
	}
	res := s.google.SignIn(ctx)
	return res.Err
}
