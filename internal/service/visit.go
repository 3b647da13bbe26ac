package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
)

// VisitService counts each (profile, visitor) pair at most once. The
// database unique index is the source of truth; Redis only short-
// circuits repeat visitors, so an evicted Redis key can never cause a
// double count.
type VisitService struct {
	db    *gorm.DB
	redis *redis.Client
}

// Ensure VisitService implements IVisitService
var _ IVisitService = (*VisitService)(nil)

// NewVisitService creates a new VisitService instance. redisClient may
// be nil; dedup then runs on the database alone.
func NewVisitService(db *gorm.DB, redisClient *redis.Client) *VisitService {
	return &VisitService{db: db, redis: redisClient}
}

const visitSeenTTL = 30 * 24 * time.Hour

func visitKey(profileID uuid.UUID) string {
	return "visits:seen:" + profileID.String()
}

// RecordVisit increments the profile's view counter exactly once per
// (profile, visitor) pair and persists the visit record. An empty
// visitor ID skips counting without error: the caller mints a client
// token for next time.
func (s *VisitService) RecordVisit(ctx context.Context, profileID uuid.UUID, visitorID string) (bool, error) {
	if visitorID == "" {
		return false, nil
	}

	if s.redis != nil {
		seen, err := s.redis.SIsMember(ctx, visitKey(profileID), visitorID).Result()
		if err == nil && seen {
			return false, nil
		}
		if err != nil {
			log.Printf("[VisitService] redis lookup failed, falling back to db: %v", err)
		}
	}

	counted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		visit := models.Visit{ProfileID: profileID, VisitorID: visitorID}
		res := tx.Where("profile_id = ? AND visitor_id = ?", profileID, visitorID).
			FirstOrCreate(&visit)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// already recorded for this pair
			return nil
		}
		counted = true
		return tx.Model(&models.Profile{}).
			Where("id = ?", profileID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}

	if s.redis != nil {
		pipe := s.redis.Pipeline()
		pipe.SAdd(ctx, visitKey(profileID), visitorID)
		pipe.Expire(ctx, visitKey(profileID), visitSeenTTL)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("[VisitService] redis cache update failed: %v", err)
		}
	}

	return counted, nil
}
