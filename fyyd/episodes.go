package fyyd

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Episode fetches a single episode by its fyyd ID.
// It returns nil when the request or decoding fails.
func (c *Client) Episode(ctx context.Context, id int64) *Episode {
	params := url.Values{}
	params.Set("episode_id", strconv.FormatInt(id, 10))

	var e Episode
	if err := c.get(ctx, "/episode", params, "", &e); err != nil {
		c.logSwallowed("/episode", err)
		return nil
	}
	return &e
}

// SearchEpisodes searches the directory for episodes matching term.
// The term is NFC-normalized before it goes on the wire.
// It returns nil when the request or decoding fails.
func (c *Client) SearchEpisodes(ctx context.Context, term string) []Episode {
	params := url.Values{}
	params.Set("term", norm.NFC.String(term))

	var episodes []Episode
	if err := c.get(ctx, "/search/episode", params, "", &episodes); err != nil {
		c.logSwallowed("/search/episode", err)
		return nil
	}
	return episodes
}
