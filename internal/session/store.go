package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ryeonng/class-jpa-blog-v2/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store manages browser sessions backed by the sessions table.
// One row per live session; logout deletes the row so invalidation
// takes effect across the whole session, not a single key.
type Store struct {
	DB  *gorm.DB
	TTL time.Duration // 0 means sessions never expire
}

func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{DB: db, TTL: ttl}
}

// TTLFromHours converts the config value to a duration; <= 0 disables expiry.
func TTLFromHours(hours int) time.Duration {
	if hours <= 0 {
		return 0
	}
	return time.Duration(hours) * time.Hour
}

// Start creates a session for the given user and returns it.
func (s *Store) Start(userID uint) (*models.Session, error) {
	sess := models.Session{
		ID:     uuid.NewString(),
		UserID: userID,
	}
	if err := s.DB.Create(&sess).Error; err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &sess, nil
}

// Load resolves a session id to its user. Returns (nil, nil) when the
// session is absent or expired; the user row is fetched fresh on every
// call, so profile updates are visible on the next request.
func (s *Store) Load(id string) (*models.User, error) {
	if id == "" {
		return nil, nil
	}

	var sess models.Session
	if err := s.DB.Preload("User").First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if s.TTL > 0 && time.Since(sess.CreatedAt) > s.TTL {
		_ = s.Invalidate(sess.ID)
		return nil, nil
	}

	return &sess.User, nil
}

// Invalidate deletes the session row. Deleting an unknown id is a no-op.
func (s *Store) Invalidate(id string) error {
	if id == "" {
		return nil
	}
	if err := s.DB.Delete(&models.Session{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
