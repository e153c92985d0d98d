// Package fyyd is a client for the fyyd.de podcast directory API:
// podcast search, category browsing, episode listings, and optional
// OAuth2-authenticated account access.
//
// Plain directory reads deliberately swallow failures into a nil
// result: the API treats "no data" and "error" the same for read-only
// listing calls. Token lifecycle and account operations surface typed
// errors instead, because those are actionable by the caller. Swallowed
// failures are logged at debug level.
package fyyd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultBaseURL  = "https://api.fyyd.de/0.2"
	defaultOAuthURL = "https://fyyd.de"
)

// Doer abstracts the HTTP transport. *http.Client satisfies it.
// Retries, redirects and TLS are the transport's business.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the fyyd podcast directory API.
type Client struct {
	httpClient Doer
	baseURL    string
	logger     *slog.Logger
	auth       *TokenManager
}

// NewClient creates an unauthenticated API client. If httpClient is
// nil, a default client with a 30s timeout is used. If logger is nil,
// slog.Default() is used.
func NewClient(httpClient Doer, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		logger:     logger,
	}
}

// NewOAuthClient creates an API client configured for OAuth2. The
// credentials triple is fixed for the lifetime of the client; run the
// authorization code flow via OAuth() before calling account endpoints.
func NewOAuthClient(httpClient Doer, logger *slog.Logger, creds Credentials) *Client {
	c := NewClient(httpClient, logger)
	c.auth = &TokenManager{
		client:       c,
		creds:        creds,
		oauthBaseURL: defaultOAuthURL,
	}
	return c
}

// OAuth returns the client's token manager, or nil when the client was
// built without credentials.
func (c *Client) OAuth() *TokenManager {
	return c.auth
}

// get performs a GET against path with the given query parameters and
// decodes the enveloped response payload into result. A non-empty
// token is attached as a bearer Authorization header.
func (c *Client) get(ctx context.Context, path string, params url.Values, token string, result any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidURL, path, err)
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", path, err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	body, err := c.send(req, path)
	if err != nil {
		return err
	}

	if result == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("%w: response from %s: %v", ErrDecode, path, err)
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("%w: data from %s: %v", ErrDecode, path, err)
	}
	return nil
}

// getAuthed performs an authenticated GET. The token manager gate runs
// first, so a request is never sent with a known-expired token.
func (c *Client) getAuthed(ctx context.Context, path string, params url.Values, result any) error {
	if c.auth == nil {
		return fmt.Errorf("%s: %w", path, ErrNotConfigured)
	}
	token, err := c.auth.ensureValidToken(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return c.get(ctx, path, params, token, result)
}

// postForm sends a form-encoded POST to rawURL and decodes the raw
// (non-enveloped) JSON reply into result. Used for token endpoint
// operations, which follow the OAuth2 wire format instead of the API
// envelope.
func (c *Client) postForm(ctx context.Context, rawURL string, form url.Values, result any) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidURL, rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", rawURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.send(req, u.Path)
	if err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("%w: response from %s: %v", ErrDecode, u.Path, err)
		}
	}
	return nil
}

// send executes req and returns the response body, mapping transport
// failures and non-2xx statuses to typed errors.
func (c *Client) send(req *http.Request, endpoint string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: sending request to %s: %v", ErrTransport, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %v", ErrTransport, endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Error replies usually still carry the envelope (or an OAuth2
		// error object). Peek at the message without committing to
		// either shape.
		if msg := firstNonEmpty(
			gjson.GetBytes(body, "msg").Str,
			gjson.GetBytes(body, "error_description").Str,
			gjson.GetBytes(body, "error").Str,
		); msg != "" {
			return nil, fmt.Errorf("%w: %s (%d): %s", ErrAPI, endpoint, resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("%w: %s returned status %d", ErrAPI, endpoint, resp.StatusCode)
	}

	return body, nil
}

// logSwallowed records a failure that a plain directory read converts
// into a nil result.
func (c *Client) logSwallowed(endpoint string, err error) {
	c.logger.Debug("directory request failed",
		slog.String("endpoint", endpoint),
		slog.Any("error", err),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
