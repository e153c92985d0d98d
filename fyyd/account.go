package fyyd

import (
	"context"
	"fmt"
)

// Account returns the authenticated user's profile. Unlike the plain
// directory reads, account operations surface typed errors: the token
// gate runs first and ErrNotConfigured / ErrNotAuthenticated tell the
// caller what to fix.
func (c *Client) Account(ctx context.Context) (*Account, error) {
	var a Account
	if err := c.getAuthed(ctx, "/account/info", nil, &a); err != nil {
		return nil, fmt.Errorf("fetching account: %w", err)
	}
	return &a, nil
}

// Curations returns the authenticated user's curations.
func (c *Client) Curations(ctx context.Context) ([]Curation, error) {
	var curations []Curation
	if err := c.getAuthed(ctx, "/account/curations", nil, &curations); err != nil {
		return nil, fmt.Errorf("fetching curations: %w", err)
	}
	return curations, nil
}
