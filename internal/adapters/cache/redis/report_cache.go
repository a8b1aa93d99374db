// Package redis drops cached report aggregates after ledger writes.
package redis

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_posting_core/internal/middleware"
)

const (
	defaultPrefix = "reports"
	scanBatchSize = 100
)

// ReportCacheInvalidator deletes report keys laid out as
// {prefix}:{tenantID}:{report key}.
type ReportCacheInvalidator struct {
	client goredis.UniversalClient
	prefix string
}

var _ portssvc.ReportCacheInvalidator = (*ReportCacheInvalidator)(nil)

// NewReportCacheInvalidator wraps an existing client. An empty prefix means "reports".
func NewReportCacheInvalidator(client goredis.UniversalClient, prefix string) *ReportCacheInvalidator {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &ReportCacheInvalidator{client: client, prefix: prefix}
}

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// KeyFor returns the cache key of one report of a tenant.
func (c *ReportCacheInvalidator) KeyFor(tenantID, reportKey string) string {
	return c.prefix + ":" + tenantID + ":" + reportKey
}

// InvalidateReports unlinks every key of the tenant matching pattern.
func (c *ReportCacheInvalidator) InvalidateReports(ctx context.Context, tenantID string, pattern string) error {
	if c == nil || c.client == nil {
		return nil
	}
	if tenantID == "" {
		return fmt.Errorf("tenant id is required")
	}
	if pattern == "" {
		pattern = "*"
	}

	match := c.KeyFor(tenantID, pattern)
	var (
		cursor  uint64
		removed int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Unlink(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("redis unlink: %w", err)
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Report cache invalidated",
		slog.String("tenant_id", tenantID),
		slog.String("pattern", match),
		slog.Int64("removed", removed))
	return nil
}
