package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	oauthStateTTL = 10 * time.Minute

	// An issuance mark outlives the daily run by a comfortable margin.
	issuanceGuardTTL = 48 * time.Hour
)

// StateStore keeps short-lived coordination state in Redis: OAuth state
// nonces for the consent flow and issuance marks that stop the daily
// scheduler from double-billing a schedule for the same due date.
type StateStore struct {
	redis *redis.Client
}

func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{redis: client}
}

// SaveOAuthState stores a consent-flow state nonce.
func (s *StateStore) SaveOAuthState(ctx context.Context, state string) error {
	return s.redis.Set(ctx, oauthStateKey(state), "1", oauthStateTTL).Err()
}

// ConsumeOAuthState checks a returned state nonce and deletes it, so each
// state is accepted at most once.
func (s *StateStore) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	deleted, err := s.redis.Del(ctx, oauthStateKey(state)).Result()
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// MarkIssued records that an invoice was issued for a schedule and due date.
// Returns false when the mark already exists.
func (s *StateStore) MarkIssued(ctx context.Context, scheduleID string, dueDate time.Time) (bool, error) {
	key := fmt.Sprintf("invoice-run:%s:%s", scheduleID, dueDate.Format("2006-01-02"))
	return s.redis.SetNX(ctx, key, "1", issuanceGuardTTL).Result()
}

func oauthStateKey(state string) string {
	return "xero:oauth-state:" + state
}
