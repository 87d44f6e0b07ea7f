// Package upstream holds the client for the content API that owns the
// articles. The cache only ever asks it one question: the full current
// article set.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rptrainor/blog-cache-service/pkg/models"
)

// ErrFetch marks transport failures and non-success statuses from upstream.
var ErrFetch = errors.New("upstream fetch failed")

// ErrShape marks a payload that did not decode into an article set.
var ErrShape = errors.New("upstream payload has unexpected shape")

// Client fetches the article set from the upstream content API.
type Client struct {
	url string
	hc  *http.Client
}

// New creates a client for the given endpoint URL. If httpClient is nil, a
// default with a timeout is used.
func New(url string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, hc: httpClient}
}

// FetchArticleSet retrieves the full current article set in one call.
func (c *Client) FetchArticleSet(ctx context.Context) (*models.ArticleSet, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: new request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status=%d", ErrFetch, resp.StatusCode)
	}

	// Decode through a pointer slice so a payload without an "articles" key
	// (or a literal null body) is distinguishable from an intentionally empty
	// set. A missing key is a broken upstream, not an empty blog.
	var envelope struct {
		Articles *[]models.Article `json:"articles"`
	}
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrShape, err)
	}
	if envelope.Articles == nil {
		return nil, fmt.Errorf("%w: missing articles field", ErrShape)
	}

	set := models.ArticleSet{Articles: *envelope.Articles}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShape, err)
	}
	return &set, nil
}
