package fyyd

import "errors"

// Token lifecycle errors. These are actionable by the caller
// (supply credentials, re-run the authorization code flow).
var (
	ErrNotConfigured    = errors.New("OAuth2 client credentials not configured")
	ErrNoRefreshToken   = errors.New("no refresh token stored")
	ErrNotAuthenticated = errors.New("not authenticated: exchange an authorization code first")
)

// Request errors.
var (
	ErrInvalidURL = errors.New("invalid request URL")
	ErrTransport  = errors.New("transport request failed")
	ErrDecode     = errors.New("decoding API response failed")
	ErrAPI        = errors.New("API request failed")
)
