package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MatchesCacheKey is stable per (profile, limit, min_score). Writers
// invalidate with the "matches:<profile>:*" pattern.
func MatchesCacheKey(profileID uuid.UUID, params FindMatchesParams) string {
	return fmt.Sprintf("matches:%s:%d:%d", profileID, params.Limit, params.MinScore)
}
