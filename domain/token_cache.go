package domain

import (
	"context"
	"time"
)

// TokenCache is the server-side denylist for revoked session tokens, keyed
// by token id. Entries expire together with the token itself.
type TokenCache interface {
	Deny(ctx context.Context, tokenID string, ttl time.Duration) error
	IsDenied(ctx context.Context, tokenID string) (bool, error)
}
