package fyyd

import (
	"context"
	"net/url"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// Podcast fetches a single podcast by its fyyd ID.
// It returns nil when the request or decoding fails.
func (c *Client) Podcast(ctx context.Context, id int64) *Podcast {
	params := url.Values{}
	params.Set("podcast_id", strconv.FormatInt(id, 10))

	var p Podcast
	if err := c.get(ctx, "/podcast", params, "", &p); err != nil {
		c.logSwallowed("/podcast", err)
		return nil
	}
	return &p
}

// PodcastWithEpisodes fetches a podcast together with one page of its
// episodes. page is zero-based; count caps the page size (the API
// default applies when count <= 0).
// It returns nil when the request or decoding fails.
func (c *Client) PodcastWithEpisodes(ctx context.Context, id int64, page, count int) *Podcast {
	params := url.Values{}
	params.Set("podcast_id", strconv.FormatInt(id, 10))
	params.Set("page", strconv.Itoa(page))
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var p Podcast
	if err := c.get(ctx, "/podcast/episodes", params, "", &p); err != nil {
		c.logSwallowed("/podcast/episodes", err)
		return nil
	}
	return &p
}

// SearchPodcasts searches the directory for podcasts matching term.
// The term is NFC-normalized before it goes on the wire so composed
// and decomposed input find the same results.
// It returns nil when the request or decoding fails.
func (c *Client) SearchPodcasts(ctx context.Context, term string) []Podcast {
	params := url.Values{}
	params.Set("term", norm.NFC.String(term))

	var podcasts []Podcast
	if err := c.get(ctx, "/search/podcast", params, "", &podcasts); err != nil {
		c.logSwallowed("/search/podcast", err)
		return nil
	}
	return podcasts
}

// HotPodcasts returns the directory's currently popular podcasts.
// count caps the list size (the API default applies when count <= 0).
// It returns nil when the request or decoding fails.
func (c *Client) HotPodcasts(ctx context.Context, count int) []Podcast {
	params := url.Values{}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var podcasts []Podcast
	if err := c.get(ctx, "/feature/podcast/hot", params, "", &podcasts); err != nil {
		c.logSwallowed("/feature/podcast/hot", err)
		return nil
	}
	return podcasts
}

// LatestPodcasts returns the most recently added podcasts.
// count caps the list size (the API default applies when count <= 0).
// It returns nil when the request or decoding fails.
func (c *Client) LatestPodcasts(ctx context.Context, count int) []Podcast {
	params := url.Values{}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var podcasts []Podcast
	if err := c.get(ctx, "/feature/podcast/latest", params, "", &podcasts); err != nil {
		c.logSwallowed("/feature/podcast/latest", err)
		return nil
	}
	return podcasts
}
