// Package redis implements the profile document cache. The cache is an
// optimization for the client's first paint; every error path degrades to a
// database read.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/repository"
)

type profileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) repository.ProfileCache {
	return &profileCache{client: client, ttl: ttl}
}

func cacheKey(userID int) string {
	return fmt.Sprintf("profile:doc:%d", userID)
}

func (c *profileCache) GetDocument(ctx context.Context, userID int) (*domain.ProfileDocument, error) {
	data, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var doc domain.ProfileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		// A corrupt entry behaves like a miss.
		_ = c.client.Del(ctx, cacheKey(userID)).Err()
		return nil, nil
	}
	return &doc, nil
}

func (c *profileCache) SetDocument(ctx context.Context, doc *domain.ProfileDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(doc.User.ID), data, c.ttl).Err()
}

func (c *profileCache) Invalidate(ctx context.Context, userID int) error {
	return c.client.Del(ctx, cacheKey(userID)).Err()
}
