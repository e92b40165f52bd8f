package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultUserInfoURL     = "https://www.googleapis.com/oauth2/v3/userinfo"
	defaultAvailabilityURL = "https://accounts.google.com/.well-known/openid-configuration"
	defaultRevokeURL       = "https://oauth2.googleapis.com/revoke"
)

// AuthCodeFunc obtains an authorization code interactively. The app shell
// presents authURL to the user and returns the code Google hands back, or
// ErrSignInCancelled when the user aborts.
type AuthCodeFunc func(ctx context.Context, authURL string) (string, error)

// GoogleProvider implements Provider against Google's OAuth 2.0 endpoints.
// It requests offline access so the granted session survives app restarts.
type GoogleProvider struct {
	oauth      *oauth2.Config
	authCode   AuthCodeFunc
	httpClient *http.Client

	// endpoint overrides for tests
	userInfoURL     string
	availabilityURL string
	revokeURL       string

	lastAccessToken string
}

// GoogleOption configures a GoogleProvider.
type GoogleOption func(*GoogleProvider)

// WithHTTPClient replaces the HTTP client used for userinfo and availability
// requests.
func WithHTTPClient(hc *http.Client) GoogleOption {
	return func(p *GoogleProvider) {
		if hc != nil {
			p.httpClient = hc
		}
	}
}

// WithEndpoints overrides the OAuth endpoints; used by tests.
func WithEndpoints(authURL, tokenURL, userInfoURL, availabilityURL, revokeURL string) GoogleOption {
	return func(p *GoogleProvider) {
		p.oauth.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
		p.userInfoURL = userInfoURL
		p.availabilityURL = availabilityURL
		p.revokeURL = revokeURL
	}
}

// NewGoogleProvider creates a provider for the given OAuth client. authCode
// supplies the interactive authorization step.
func NewGoogleProvider(clientID, clientSecret, redirectURL string, authCode AuthCodeFunc, opts ...GoogleOption) *GoogleProvider {
	p := &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		authCode:        authCode,
		httpClient:      http.DefaultClient,
		userInfoURL:     defaultUserInfoURL,
		availabilityURL: defaultAvailabilityURL,
		revokeURL:       defaultRevokeURL,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *GoogleProvider) ProviderID() string {
	return ProviderGoogle
}

// CheckAvailability probes Google's discovery document. Any transport failure
// or server error means the sign-in prompt cannot be served.
func (p *GoogleProvider) CheckAvailability(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.availabilityURL, nil)
	if err != nil {
		return errors.Join(ErrServicesUnavailable, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrServicesUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: discovery returned status %d", ErrServicesUnavailable, resp.StatusCode)
	}
	return nil
}

// SignIn runs the authorization-code flow: build the consent URL, hand it to
// the interactive callback, exchange the returned code, and fetch the user's
// profile. Missing profile fields normalize to empty strings.
func (p *GoogleProvider) SignIn(ctx context.Context) (Profile, error) {
	state := uuid.NewString()
	authURL := p.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)

	code, err := p.authCode(ctx, authURL)
	if err != nil {
		return Profile{}, err
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return Profile{}, errors.Join(ErrExchangeFailed, err)
	}
	p.lastAccessToken = token.AccessToken

	idToken, _ := token.Extra("id_token").(string)

	info, err := p.fetchUserInfo(ctx, token.AccessToken)
	if err != nil {
		return Profile{}, err
	}
	if info.Email == "" {
		return Profile{}, ErrNoEmail
	}

	return Profile{
		Email:   info.Email,
		Name:    info.Name,
		Photo:   info.Picture,
		IDToken: idToken,
	}, nil
}

// SignOut revokes the most recently granted access token. Without one there
// is nothing to do.
func (p *GoogleProvider) SignOut(ctx context.Context) error {
	if p.lastAccessToken == "" {
		return nil
	}

	form := url.Values{"token": {p.lastAccessToken}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.revokeURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("identity: build revoke request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity: revoke token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity: revoke returned status %d", resp.StatusCode)
	}

	p.lastAccessToken = ""
	return nil
}

type googleUserInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (p *GoogleProvider) fetchUserInfo(ctx context.Context, accessToken string) (googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return googleUserInfo{}, fmt.Errorf("identity: build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return googleUserInfo{}, fmt.Errorf("identity: userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return googleUserInfo{}, fmt.Errorf("identity: read userinfo response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("identity: userinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var info googleUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return googleUserInfo{}, fmt.Errorf("identity: parse userinfo response: %w", err)
	}
	return info, nil
}
