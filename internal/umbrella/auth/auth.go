// Package auth manages OAuth2 client-credentials tokens for the Umbrella API.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// tokenLifetime is how long a freshly issued token stays usable.
const tokenLifetime = 60 * time.Minute

const defaultTimeout = 30 * time.Second

// ErrMissingCredentials indicates the API key/secret pair was not configured.
var ErrMissingCredentials = errors.New("umbrella API key and secret are required")

// Credentials holds the API key/secret pair generated in the Umbrella
// dashboard. The pair is immutable for the life of the process.
type Credentials struct {
	Key    string
	Secret string
}

// Config holds authenticator configuration.
type Config struct {
	TokenURL string
	Timeout  time.Duration
}

// DefaultConfig returns a configuration pointing at the production token endpoint.
func DefaultConfig() Config {
	return Config{
		TokenURL: "https://api.umbrella.com/auth/v2/token",
		Timeout:  defaultTimeout,
	}
}

// AuthenticationError reports that the token endpoint rejected the credentials.
type AuthenticationError struct {
	Status int
	Body   string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.Status, e.Body)
}

// Auth acquires and tracks a bearer token via the client-credentials grant.
// The token value and its expiry are always replaced together.
type Auth struct {
	creds      Credentials
	tokenURL   string
	httpClient *http.Client
	now        func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// New creates an authenticator for the given credentials. Missing
// credentials are a configuration error, not something to discover on the
// first request.
func New(creds Credentials, config Config) (*Auth, error) {
	if creds.Key == "" || creds.Secret == "" {
		return nil, ErrMissingCredentials
	}

	return &Auth{
		creds:    creds,
		tokenURL: config.TokenURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		now: time.Now,
	}, nil
}

// tokenResponse mirrors the token endpoint response body.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// FetchToken requests a new bearer token and stores it together with its
// expiry, replacing whatever was held before.
func (a *Auth) FetchToken(ctx context.Context) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, a.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating token request: %w", err)
	}

	req.SetBasicAuth(a.creds.Key, a.creds.Secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing token request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return &AuthenticationError{Status: resp.StatusCode, Body: string(body)}
	}

	var token tokenResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&token); decodeErr != nil {
		return fmt.Errorf("decoding token response: %w", decodeErr)
	}
	if token.AccessToken == "" {
		return &AuthenticationError{Status: resp.StatusCode, Body: "response carried no access_token"}
	}

	issued := a.now()

	a.mu.Lock()
	a.token = token.AccessToken
	a.expiresAt = issued.Add(tokenLifetime)
	a.mu.Unlock()

	return nil
}

// Expired reports whether no token is held or the held token has reached its
// expiry. It never refreshes; callers decide what to do about an expired token.
func (a *Auth) Expired() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token == "" || !a.now().Before(a.expiresAt)
}

// Bearer returns a usable token value, fetching a fresh one first when the
// held token is missing or expired.
func (a *Auth) Bearer(ctx context.Context) (string, error) {
	if a.Expired() {
		if err := a.FetchToken(ctx); err != nil {
			return "", err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token, nil
}

// ExpiresAt returns the expiry of the held token, or the zero time when no
// token has been fetched yet.
func (a *Auth) ExpiresAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expiresAt
}
