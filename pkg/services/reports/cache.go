package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/models/domain"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

const (
	DefaultCacheTTL     = 2 * time.Minute
	DefaultCacheCleanup = 5 * time.Minute
)

type cachedService struct {
	next  Service
	cache *cache.Cache
}

// NewCachedService memoizes payloads per report, range token and filters so a
// preview followed by an export of the same report is computed once.
// Failures are not cached.
func NewCachedService(next Service, ttl, cleanup time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if cleanup <= 0 {
		cleanup = DefaultCacheCleanup
	}
	return &cachedService{
		next:  next,
		cache: cache.New(ttl, cleanup),
	}
}

func (c *cachedService) Generate(ctx context.Context, req Request) (domain.Payload, error) {
	key := cacheKey(req)
	if cached, ok := c.cache.Get(key); ok {
		zerolog.Ctx(ctx).Debug().Str("key", key).Msg("report cache hit")
		return cached.(domain.Payload), nil
	}

	payload, err := c.next.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, payload, cache.DefaultExpiration)
	return payload, nil
}

func cacheKey(req Request) string {
	window := req.Range.Token
	if window == "" {
		window = fmt.Sprintf("%d-%d", req.Range.Start.Unix(), req.Range.End.Unix())
	}

	statuses := lo.Map(req.Filters.Statuses, func(s domain.OrderStatus, _ int) string { return string(s) })
	categories := append([]string(nil), req.Filters.CategoryIDs...)
	sort.Strings(statuses)
	sort.Strings(categories)

	return strings.Join([]string{
		req.ReportID.String(),
		window,
		strings.Join(statuses, ","),
		strings.Join(categories, ","),
	}, "|")
}
