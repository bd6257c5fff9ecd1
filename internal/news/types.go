package news

import "errors"

// ErrUpstreamUnavailable covers network failures, auth errors and rate
// limiting at the news API. Callers decide whether to retry; the client
// never does.
var ErrUpstreamUnavailable = errors.New("news upstream unavailable")

// Article is one normalized news item. URL is the identity key downstream;
// the upstream may return duplicates and the client does not deduplicate.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Topic       string `json:"topic"`
}

type Config struct {
	APIKey  string
	BaseURL string
	Lang    string
}
