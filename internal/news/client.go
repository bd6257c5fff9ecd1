// Package news fetches articles from the GNews API.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

const defaultBaseURL = "https://gnews.io/api/v4"

// GNews free tier caps results per request.
const maxPerRequest = 10

type Client struct {
	baseURL    string
	apiKey     string
	lang       string
	httpClient *http.Client
}

type gnewsSource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type gnewsArticle struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Content     string      `json:"content"`
	URL         string      `json:"url"`
	PublishedAt string      `json:"publishedAt"`
	Source      gnewsSource `json:"source"`
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	lang := cfg.Lang
	if lang == "" {
		lang = "en"
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		lang:       lang,
		httpClient: http.DefaultClient,
	}
}

// Fetch returns up to max articles for topic, in upstream order, paging
// through the API when max exceeds the per-request cap. Upstream failures
// come back as ErrUpstreamUnavailable; a missing API key is a configuration
// error, not an upstream one.
func (c *Client) Fetch(ctx context.Context, topic string, max int) ([]Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("GNews API key not set")
	}
	if max <= 0 {
		max = maxPerRequest
	}

	var articles []Article
	for page := 1; len(articles) < max; page++ {
		want := max - len(articles)
		if want > maxPerRequest {
			want = maxPerRequest
		}

		batch, err := c.fetchPage(ctx, topic, want, page)
		if err != nil {
			return nil, err
		}
		articles = append(articles, batch...)

		// a short page means upstream has nothing more
		if len(batch) < want {
			break
		}
	}

	return articles, nil
}

func (c *Client) fetchPage(ctx context.Context, topic string, max, page int) ([]Article, error) {
	params := url.Values{}
	params.Set("q", topic)
	params.Set("apikey", c.apiKey)
	params.Set("lang", c.lang)
	params.Set("max", strconv.Itoa(max))
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var parsed gnewsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: bad response: %s", ErrUpstreamUnavailable, err)
	}

	articles := make([]Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if len(articles) >= max {
			break
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Topic:       topic,
		})
	}

	return articles, nil
}
