package store

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis"
	"github.com/rahe01/StayVista/domain"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TokenRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewTokenRedisCache(client *redis.Client, tracer trace.Tracer) domain.TokenCache {
	return &TokenRedisCache{
		client: client,
		tracer: tracer,
	}
}

func (cache *TokenRedisCache) Deny(ctx context.Context, tokenID string, ttl time.Duration) error {
	_, span := cache.tracer.Start(ctx, "TokenCache.Deny")
	defer span.End()

	result := cache.client.Set(tokenID, "revoked", ttl)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting denylist entry")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}

	return nil
}

func (cache *TokenRedisCache) IsDenied(ctx context.Context, tokenID string) (bool, error) {
	_, span := cache.tracer.Start(ctx, "TokenCache.IsDenied")
	defer span.End()

	err := cache.client.Get(tokenID).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		span.SetStatus(codes.Error, "Error reading denylist entry")
		log.Println(err)
		return false, err
	}
	return true, nil
}
