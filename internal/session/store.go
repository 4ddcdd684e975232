package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "donor:session:" // donor:session:{session_id}

var (
	ErrNotFound = errors.New("session not found")
	// ErrExpired reports a session ended because it sat idle past the
	// configured threshold.
	ErrExpired = errors.New("session expired")
)

// Session is the server-side record behind the opaque cookie ID.
type Session struct {
	ID           string    `json:"id"`
	UserID       uint      `json:"user_id"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store keeps sessions in Redis. IdleTimeout governs forced logout on
// inactivity; MaxAge is an absolute TTL backstop on the key itself.
type Store struct {
	client      *redis.Client
	idleTimeout time.Duration
	maxAge      time.Duration
}

func NewStore(client *redis.Client, idleTimeout, maxAge time.Duration) *Store {
	return &Store{
		client:      client,
		idleTimeout: idleTimeout,
		maxAge:      maxAge,
	}
}

func (s *Store) Create(ctx context.Context, userID uint, role string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:           uuid.New().String(),
		UserID:       userID,
		Role:         role,
		CreatedAt:    now,
		LastActivity: now,
	}
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Touch loads a session, enforces the idle threshold, and stamps the
// current time as last activity. A session idle past the threshold is
// destroyed and reported as ErrExpired; two sessions racing on the
// stamp are unguarded, last write wins.
func (s *Store) Touch(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if time.Since(sess.LastActivity) > s.idleTimeout {
		_ = s.Destroy(ctx, id)
		return nil, ErrExpired
	}

	sess.LastActivity = time.Now()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

func (s *Store) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *Store) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, s.maxAge).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) key(id string) string {
	return sessionKeyPrefix + id
}
