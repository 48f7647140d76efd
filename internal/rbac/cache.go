package rbac

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const permCacheTTL = 30 * time.Second

// PermissionCache keeps role permission sets in Redis so that per-request
// authorization checks stay off the database. Cache errors are treated as
// misses: a broken cache never makes a working store look unavailable.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPermissionCache constructs a PermissionCache. A nil client disables
// caching entirely.
func NewPermissionCache(client *redis.Client) *PermissionCache {
	return &PermissionCache{client: client, ttl: permCacheTTL}
}

// Get returns the cached permission set for a role name.
func (c *PermissionCache) Get(ctx context.Context, roleName string) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, c.key(roleName)).Bytes()
	if err != nil {
		return nil, false
	}
	var perms []string
	if err := json.Unmarshal(payload, &perms); err != nil {
		return nil, false
	}
	return perms, true
}

// Set stores the permission set for a role name.
func (c *PermissionCache) Set(ctx context.Context, roleName string, perms []string) {
	if c == nil || c.client == nil {
		return
	}
	payload, err := json.Marshal(perms)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(roleName), payload, c.ttl).Err()
}

// Invalidate drops cached entries after a role mutation.
func (c *PermissionCache) Invalidate(ctx context.Context, roleNames ...string) {
	if c == nil || c.client == nil {
		return
	}
	keys := make([]string, 0, len(roleNames))
	for _, name := range roleNames {
		if name == "" {
			continue
		}
		keys = append(keys, c.key(name))
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}

func (c *PermissionCache) key(roleName string) string {
	return "rbac:perms:" + strings.ToLower(roleName)
}
