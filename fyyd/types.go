package fyyd

import "encoding/json"

// envelope is the common wrapper around every API response body.
// The payload shape behind "data" varies per endpoint.
type envelope struct {
	Status int             `json:"status"`
	Msg    string          `json:"msg"`
	Meta   Meta            `json:"meta"`
	Data   json.RawMessage `json:"data"`
}

// Meta carries paging and API version info alongside the payload.
type Meta struct {
	Paging  Paging  `json:"paging"`
	APIInfo APIInfo `json:"API_INFO"`
}

// APIInfo reports the API version that produced a response.
type APIInfo struct {
	Version float64 `json:"API_VERSION"`
}

// Paging describes the page window of a list response.
type Paging struct {
	Count     int  `json:"count"`
	Page      int  `json:"page"`
	FirstPage int  `json:"first_page"`
	LastPage  int  `json:"last_page"`
	NextPage  *int `json:"next_page"`
	PrevPage  *int `json:"prev_page"`
}

// Podcast represents a single podcast from the directory.
type Podcast struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle"`
	Description  string    `json:"description"`
	Slug         string    `json:"slug"`
	XMLURL       string    `json:"xmlURL"`
	HTMLURL      string    `json:"htmlURL"`
	ImageURL     string    `json:"imgURL"`
	ThumbURL     string    `json:"smallImageURL"`
	Language     string    `json:"language"`
	Generator    string    `json:"generator"`
	EpisodeCount int       `json:"episode_count"`
	Subscribers  int       `json:"subscribers"`
	Categories   []int64   `json:"categories"`
	LastPoll     string    `json:"lastpoll"`
	Episodes     []Episode `json:"episodes,omitempty"`
}

// Episode represents a single episode of a podcast.
type Episode struct {
	ID           int64  `json:"id"`
	PodcastID    int64  `json:"podcast_id"`
	Title        string `json:"title"`
	GUID         string `json:"guid"`
	URL          string `json:"url"`
	EnclosureURL string `json:"enclosure"`
	ImageURL     string `json:"imgURL"`
	PubDate      string `json:"pubdate"`
	Duration     int    `json:"duration"`
	DurationText string `json:"duration_string"`
	Description  string `json:"description"`
	Num          int    `json:"num"`
}

// Category is a directory category. Top-level categories carry their
// subcategories in Children; a single-category lookup carries the
// podcasts filed under it.
type Category struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Children []Category `json:"children,omitempty"`
	Podcasts []Podcast  `json:"podcasts,omitempty"`
}

// Curation is a user-maintained episode collection.
type Curation struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Public       bool   `json:"public"`
	XMLURL       string `json:"xmlURL"`
	HTMLURL      string `json:"url"`
	EpisodeCount int    `json:"episode_count"`
}

// Account is the authenticated user's profile.
type Account struct {
	ID       int64  `json:"id"`
	Nick     string `json:"nick"`
	FullName string `json:"fullname"`
	Bio      string `json:"bio"`
	URL      string `json:"url"`
	ImageURL string `json:"imgURL"`
}
