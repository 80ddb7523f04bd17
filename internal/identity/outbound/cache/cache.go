package cache

import (
	"context"
	"errors"
	"time"

	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"
)

const revokedTokenPrefix = "identity:revoked_token:"

type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	ctx, span := c.ins.Tracer("identity.outbound.cache").Start(ctx, "RevokeToken")
	defer span.End()

	if err := c.client.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (c *Cache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, span := c.ins.Tracer("identity.outbound.cache").Start(ctx, "IsTokenRevoked")
	defer span.End()

	if err := c.client.Get(ctx, revokedTokenPrefix+jti).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	return true, nil
}
