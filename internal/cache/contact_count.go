package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	// contactCountKey stores the cached contact catalog size.
	contactCountKey = "agencydesk:contacts:total"
	// contactCountTTL bounds staleness of the cached size.
	contactCountTTL = 5 * time.Minute
)

// ContactCount caches the contact catalog size. The rotation feed needs the
// total on every request, and the value changes rarely, so a short-lived
// Redis entry spares the store a COUNT per page view.
//
// All methods tolerate a nil receiver or nil client, degrading to misses, so
// the cache can be left unconfigured.
type ContactCount struct {
	client *redis.Client
}

// NewContactCount constructs a ContactCount. client may be nil.
func NewContactCount(client *redis.Client) *ContactCount {
	return &ContactCount{client: client}
}

// Get returns the cached total and whether it was present.
func (c *ContactCount) Get(ctx context.Context) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	raw, errGet := c.client.Get(ctx, contactCountKey).Result()
	if errGet != nil {
		if errGet != redis.Nil {
			log.WithError(errGet).Warn("contact count cache read failed")
		}
		return 0, false
	}
	total, errParse := strconv.ParseInt(raw, 10, 64)
	if errParse != nil {
		return 0, false
	}
	return total, true
}

// Set stores the total. Failures are logged and ignored; the cache is
// advisory.
func (c *ContactCount) Set(ctx context.Context, total int64) {
	if c == nil || c.client == nil {
		return
	}
	if errSet := c.client.Set(ctx, contactCountKey, strconv.FormatInt(total, 10), contactCountTTL).Err(); errSet != nil {
		log.WithError(errSet).Warn("contact count cache write failed")
	}
}

// Invalidate drops the cached total, e.g. after catalog imports.
func (c *ContactCount) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if errDel := c.client.Del(ctx, contactCountKey).Err(); errDel != nil {
		log.WithError(errDel).Warn("contact count cache invalidate failed")
	}
}
