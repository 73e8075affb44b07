// Package catalog proxies product queries to the commerce backend. A
// category query first asks the backend directly; when that fails or
// comes back empty, the service fetches the full catalog and filters it
// locally with category synonyms, so a storefront label like "clothes"
// still finds products tagged "Apparel".
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/urbanthreads/storefront-backend/pkg/logger"
)

// categorySynonyms maps each canonical group member to its group. All
// comparisons are case-insensitive.
var categorySynonyms = map[string][]string{
	"clothes":  {"clothes", "clothing", "apparel"},
	"clothing": {"clothes", "clothing", "apparel"},
	"apparel":  {"clothes", "clothing", "apparel"},
	"socks":    {"socks", "sock"},
	"sock":     {"socks", "sock"},
	"books":    {"books", "book"},
	"book":     {"books", "book"},
	"shoes":    {"shoes", "shoe", "footwear"},
	"shoe":     {"shoes", "shoe", "footwear"},
	"footwear": {"shoes", "shoe", "footwear"},
}

// Fetcher is the slice of the upstream client the service needs.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]Product, error)
	FetchCategory(ctx context.Context, category string) ([]Product, error)
	FetchByID(ctx context.Context, id string) (Product, error)
}

// Service answers storefront product queries.
type Service struct {
	upstream Fetcher
	logg     *logger.Logger
}

// NewService wires the catalog proxy. The upstream fetcher is required.
func NewService(upstream Fetcher, logg *logger.Logger) (*Service, error) {
	if upstream == nil {
		return nil, fmt.Errorf("upstream fetcher required")
	}
	return &Service{upstream: upstream, logg: logg}, nil
}

// List returns products for the optional category filter. A blank
// category returns the whole catalog.
func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return s.upstream.FetchAll(ctx)
	}
	return s.Query(ctx, category)
}

// Query resolves a category in two stages: a direct backend query, then
// a full fetch filtered by synonym when the direct query errors or
// matches nothing.
func (s *Service) Query(ctx context.Context, category string) ([]Product, error) {
	direct, err := s.upstream.FetchCategory(ctx, category)
	if err == nil && len(direct) > 0 {
		return direct, nil
	}
	if err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "category", category), "direct category query failed, falling back to full catalog")
	}

	all, allErr := s.upstream.FetchAll(ctx)
	if allErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, allErr
	}

	matches := filterByCategory(all, category)
	return matches, nil
}

// Get returns a single product by ID.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.upstream.FetchByID(ctx, id)
}

func filterByCategory(products []Product, category string) []Product {
	wanted := synonymsFor(category)
	matches := make([]Product, 0, len(products))
	for _, p := range products {
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(p.Category))]; ok {
			matches = append(matches, p)
		}
	}
	return matches
}

func synonymsFor(category string) map[string]struct{} {
	key := strings.ToLower(strings.TrimSpace(category))
	group, ok := categorySynonyms[key]
	if !ok {
		group = []string{key}
	}
	wanted := make(map[string]struct{}, len(group))
	for _, name := range group {
		wanted[name] = struct{}{}
	}
	return wanted
}
