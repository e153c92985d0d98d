package fyyd

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"
)

// authorizationScope is requested during the authorization code flow.
const authorizationScope = "read write"

// Credentials holds an OAuth2 client registration for fyyd. The triple
// is fixed for the lifetime of the client; its presence switches the
// client into OAuth2 mode.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// tokenResponse is the token endpoint reply. It is decoded once,
// applied to the manager state, and discarded.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// TokenManager owns the OAuth2 token lifecycle for a client:
// authorization-URL construction, code exchange, expiry tracking, and
// transparent refresh-before-use.
//
// All token state is guarded by mu. The check-and-maybe-refresh
// sequence in ensureValidToken holds the lock across the refresh call,
// so two near-simultaneous expired-token callers trigger exactly one
// refresh. Expiry is checked lazily at the moment of use; there is no
// background refresh and a failed refresh is not retried.
//
// Token state lives for the process lifetime of the client and is not
// persisted.
type TokenManager struct {
	client       *Client
	creds        Credentials
	oauthBaseURL string

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

// AuthorizationURL returns the browser URL that starts the
// authorization code flow, or "" when the client is not configured for
// it (missing client ID or redirect URI). No network call is made.
func (t *TokenManager) AuthorizationURL() string {
	if t.creds.ClientID == "" || t.creds.RedirectURI == "" {
		return ""
	}

	params := url.Values{}
	params.Set("client_id", t.creds.ClientID)
	params.Set("redirect_uri", t.creds.RedirectURI)
	params.Set("response_type", "code")
	params.Set("scope", authorizationScope)

	return t.oauthBaseURL + "/oauth/authorize?" + params.Encode()
}

// ExchangeCode trades an authorization code (delivered out of band via
// the redirect URI) for an access token and stores the resulting token
// state. The full credentials triple must be configured.
func (t *TokenManager) ExchangeCode(ctx context.Context, code string) error {
	if t.creds.ClientID == "" || t.creds.ClientSecret == "" || t.creds.RedirectURI == "" {
		return ErrNotConfigured
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", t.creds.ClientID)
	form.Set("client_secret", t.creds.ClientSecret)
	form.Set("redirect_uri", t.creds.RedirectURI)

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.requestToken(ctx, form)
}

// refreshAccessToken obtains a new access token using the stored
// refresh token. Token state is left untouched on failure.
// Callers must hold mu.
func (t *TokenManager) refreshAccessToken(ctx context.Context) error {
	if t.refreshToken == "" {
		return ErrNoRefreshToken
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", t.refreshToken)
	form.Set("client_id", t.creds.ClientID)
	form.Set("client_secret", t.creds.ClientSecret)

	return t.requestToken(ctx, form)
}

// requestToken posts form to the token endpoint and atomically
// replaces the token state from the decoded reply. Access token and
// expiry are always set together. Callers must hold mu.
func (t *TokenManager) requestToken(ctx context.Context, form url.Values) error {
	var resp tokenResponse
	if err := t.client.postForm(ctx, t.oauthBaseURL+"/oauth/token", form, &resp); err != nil {
		return fmt.Errorf("token endpoint: %w", err)
	}

	t.accessToken = resp.AccessToken
	t.refreshToken = resp.RefreshToken
	t.expiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)

	return nil
}

// ensureValidToken returns a bearer token to attach to an
// authenticated request, refreshing it first when it has expired.
//
// When no client ID is configured the gate trivially succeeds with an
// empty token and the request proceeds without an Authorization
// header. A configured client that never completed an exchange gets
// ErrNotAuthenticated. Refresh failures propagate; the caller's
// operation fails for this call and may be retried by the caller.
func (t *TokenManager) ensureValidToken(ctx context.Context) (string, error) {
	if t.creds.ClientID == "" {
		return "", nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.expiresAt.IsZero() {
		return "", ErrNotAuthenticated
	}

	if !time.Now().Before(t.expiresAt) {
		if err := t.refreshAccessToken(ctx); err != nil {
			return "", fmt.Errorf("refreshing expired token: %w", err)
		}
	}

	return t.accessToken, nil
}
