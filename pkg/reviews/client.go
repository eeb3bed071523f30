// Package reviews provides fetching and caching of public business reviews
// for blending into testimonial listings.
package reviews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the Places details endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// Review is a single public review as served by the review source.
type Review struct {
	Author string    `json:"author"`
	Rating int       `json:"rating"`
	Text   string    `json:"text"`
	Time   time.Time `json:"time"`
}

// Client provides HTTP access to the review source for a single business
// listing (place id).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	placeID    string
}

// NewClient creates an HTTP client for the review source.
func NewClient(baseURL, apiKey, placeID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		placeID:    placeID,
	}
}

// placeDetailsResponse mirrors the details endpoint payload, reduced to the
// fields this service reads.
type placeDetailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Reviews []struct {
			AuthorName string `json:"author_name"`
			Rating     int    `json:"rating"`
			Text       string `json:"text"`
			Time       int64  `json:"time"`
		} `json:"reviews"`
	} `json:"result"`
}

// Fetch downloads the current reviews for the configured place.
func (c *Client) Fetch(ctx context.Context) ([]Review, error) {
	q := url.Values{}
	q.Set("place_id", c.placeID)
	q.Set("fields", "reviews")
	q.Set("key", c.apiKey)
	endpoint := fmt.Sprintf("%s/details/json?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("review source returned HTTP %d", resp.StatusCode)
	}

	var payload placeDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode reviews response: %w", err)
	}
	if payload.Status != "OK" {
		return nil, fmt.Errorf("review source returned status %q", payload.Status)
	}

	result := make([]Review, 0, len(payload.Result.Reviews))
	for _, rv := range payload.Result.Reviews {
		result = append(result, Review{
			Author: rv.AuthorName,
			Rating: rv.Rating,
			Text:   rv.Text,
			Time:   time.Unix(rv.Time, 0).UTC(),
		})
	}
	return result, nil
}
