package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonflow/config"
	"salonflow/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "booking:session:"

// SessionStore keeps live booking sessions in redis, JSON-encoded with a
// sliding TTL. Every mutation is load, transform, save — there is exactly
// one writer per session.
type SessionStore struct {
	cache *redis.Client
	ttl   time.Duration
}

// NewSessionStore wraps the given redis client.
func NewSessionStore(cache *redis.Client) *SessionStore {
	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SessionStore{cache: cache, ttl: ttl}
}

// Create initializes an empty session at step 1 and persists it.
func (s *SessionStore) Create(ctx context.Context) (*models.BookingSession, error) {
	session := &models.BookingSession{
		SessionID:        uuid.New().String(),
		SelectedServices: []models.Service{},
		CurrentStep:      models.StepServices,
		MaxStepReached:   models.StepServices,
	}
	if err := s.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get loads a session by ID.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, NewSessionError("booking not initialized")
	}
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, NewSessionError("booking session not found or expired")
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse booking session: %w", err)
	}
	return &session, nil
}

// Save persists the session and refreshes its TTL.
func (s *SessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+session.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// Delete discards a session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
