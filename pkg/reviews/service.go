package reviews

import (
	"context"
	"net/http"
	"time"
)

// DefaultCacheTTL bounds how stale served reviews may be.
const DefaultCacheTTL = 15 * time.Minute

// Service orchestrates review fetching with caching.
type Service struct {
	client *Client
	cache  Cache
}

// NewService creates a review service. A nil cache gets an in-memory one
// with the default TTL.
func NewService(client *Client, cache Cache) *Service {
	if cache == nil {
		cache = NewMemoryCache(DefaultCacheTTL)
	}
	return &Service{client: client, cache: cache}
}

// Fetch returns the listing's current reviews, served from cache when fresh.
func (s *Service) Fetch(ctx context.Context) ([]Review, error) {
	if cached, ok := s.cache.Get(ctx, s.client.placeID); ok {
		return cached, nil
	}

	fetched, err := s.client.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, s.client.placeID, fetched)
	return fetched, nil
}

// OverrideHTTPClientForTest replaces the internal HTTP client. For testing only.
func (s *Service) OverrideHTTPClientForTest(httpClient *http.Client) {
	s.client.httpClient = httpClient
}
