package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-paywebhooks/webhooks"
	repositorycache "github.com/goliatone/go-repository-cache/cache"
)

const archivedEventCacheKeyPrefix = "go-paywebhooks::archived_event::v1"

// CachedEventArchive reads archived events through a cache. Archived rows
// never change, so only Get is cached and nothing needs invalidation.
type CachedEventArchive struct {
	base  webhooks.EventArchive
	cache repositorycache.CacheService
}

func NewCachedEventArchive(
	base webhooks.EventArchive,
	cacheService repositorycache.CacheService,
) (*CachedEventArchive, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base event archive is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: event archive cache service is required")
	}
	return &CachedEventArchive{base: base, cache: cacheService}, nil
}

// ArchivedEventCacheKey returns go-paywebhooks::archived_event::v1::<id> with
// the id URL-path escaped.
func ArchivedEventCacheKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("sqlstore: archived event id is required")
	}
	return archivedEventCacheKeyPrefix + "::" + url.PathEscape(id), nil
}

func (c *CachedEventArchive) Append(ctx context.Context, delivery webhooks.Delivery) (webhooks.ArchivedEvent, error) {
	if c == nil || c.base == nil {
		return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: cached event archive is not configured")
	}
	return c.base.Append(ctx, delivery)
}

func (c *CachedEventArchive) Get(ctx context.Context, id string) (webhooks.ArchivedEvent, error) {
	if c == nil || c.base == nil || c.cache == nil {
		return webhooks.ArchivedEvent{}, fmt.Errorf("sqlstore: cached event archive is not configured")
	}
	cacheKey, err := ArchivedEventCacheKey(id)
	if err != nil {
		return webhooks.ArchivedEvent{}, err
	}
	entry, err := repositorycache.GetOrFetch(ctx, c.cache, cacheKey, func(ctx context.Context) (webhooks.ArchivedEvent, error) {
		return c.base.Get(ctx, strings.TrimSpace(id))
	})
	if err != nil {
		return webhooks.ArchivedEvent{}, err
	}
	entry.Body = append([]byte(nil), entry.Body...)
	return entry, nil
}

func (c *CachedEventArchive) ListByBusiness(ctx context.Context, businessID string, limit int) ([]webhooks.ArchivedEvent, error) {
	if c == nil || c.base == nil {
		return nil, fmt.Errorf("sqlstore: cached event archive is not configured")
	}
	return c.base.ListByBusiness(ctx, businessID, limit)
}

// Forget drops a cached entry.
func (c *CachedEventArchive) Forget(ctx context.Context, id string) error {
	if c == nil || c.cache == nil {
		return fmt.Errorf("sqlstore: cached event archive is not configured")
	}
	cacheKey, err := ArchivedEventCacheKey(id)
	if err != nil {
		return err
	}
	return c.cache.Delete(ctx, cacheKey)
}

func (c *CachedEventArchive) HandleEvent(ctx context.Context, delivery webhooks.Delivery) error {
	_, err := c.Append(ctx, delivery)
	return err
}
