package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/procureflow/pr-service/internal/models"
	"go.uber.org/zap"
)

// PermissionCache caches the active data-permission policy per role.
type PermissionCache struct {
	store  Store
	logger *zap.Logger
}

// NewPermissionCache creates a permission cache over the given store. The
// cache is empty until the first Warm; lookups before that miss.
func NewPermissionCache(store Store, logger *zap.Logger) *PermissionCache {
	return &PermissionCache{store: store, logger: logger}
}

func permissionKey(role string) string {
	return fmt.Sprintf("permissions:%s", role)
}

// Warm stores the policy under its role key.
func (c *PermissionCache) Warm(ctx context.Context, policy *models.PermissionPolicy) error {
	data, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}
	if err := c.store.Set(ctx, permissionKey(policy.Role), string(data)); err != nil {
		return err
	}

	c.logger.Info("Permission policy cached", zap.String("role", policy.Role))
	return nil
}

// Refresh overwrites the cached policy for its role. Safe to call
// repeatedly to hot-swap policy without a restart; the old value is
// replaced wholesale, not merged.
func (c *PermissionCache) Refresh(ctx context.Context, policy *models.PermissionPolicy) error {
	return c.Warm(ctx, policy)
}

// Lookup returns the cached policy for role. A role that was never warmed,
// or an unavailable store, reports models.ErrCacheMiss: serving unfiltered
// data without a policy would be an authorization failure, so there is no
// fall-back.
func (c *PermissionCache) Lookup(ctx context.Context, role string) (*models.PermissionPolicy, error) {
	value, err := c.store.Get(ctx, permissionKey(role))
	if err != nil {
		if errors.Is(err, models.ErrCacheMiss) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: store unavailable for role %q: %v", models.ErrCacheMiss, role, err)
	}

	var policy models.PermissionPolicy
	if err := json.Unmarshal([]byte(value), &policy); err != nil {
		return nil, fmt.Errorf("failed to decode cached policy for role %q: %w", role, err)
	}
	return &policy, nil
}
