package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"transfer/internal/domain"
)

const draftKeyPrefix = "booking:draft:"

// DraftStore persists in-progress booking drafts in Redis so a booking
// session survives process restarts. One draft per session; the caller
// serializes operations on a draft.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore creates a new DraftStore with the given session TTL.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

// Save stores the draft and refreshes its TTL.
func (s *DraftStore) Save(ctx context.Context, draft *domain.ReservationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, draftKeyPrefix+draft.ID, data, s.ttl).Err()
}

// Get retrieves a draft by ID. Returns nil if the draft does not exist or
// the session has expired.
func (s *DraftStore) Get(ctx context.Context, id string) (*domain.ReservationDraft, error) {
	data, err := s.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var draft domain.ReservationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, err
	}

	return &draft, nil
}

// Delete removes a draft. Called once the draft is frozen into a reservation.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, draftKeyPrefix+id).Err()
}
