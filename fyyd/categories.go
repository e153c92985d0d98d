package fyyd

import (
	"context"
	"net/url"
	"strconv"
)

// Categories returns the directory's category tree.
// It returns nil when the request or decoding fails.
func (c *Client) Categories(ctx context.Context) []Category {
	var categories []Category
	if err := c.get(ctx, "/categories", nil, "", &categories); err != nil {
		c.logSwallowed("/categories", err)
		return nil
	}
	return categories
}

// Category fetches a single category with the podcasts filed under it.
// It returns nil when the request or decoding fails.
func (c *Client) Category(ctx context.Context, id int64) *Category {
	params := url.Values{}
	params.Set("category_id", strconv.FormatInt(id, 10))

	var cat Category
	if err := c.get(ctx, "/category", params, "", &cat); err != nil {
		c.logSwallowed("/category", err)
		return nil
	}
	return &cat
}
