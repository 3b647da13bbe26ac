package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

var (
	ErrBadgeNotFound      = errors.New("badge not found")
	ErrBadgeAlreadyExists = errors.New("badge already exists")
)

// BadgeService manages the badge catalog and profile awards. Awards
// have their own lifecycle, but a catalog delete cascades: the badge
// disappears from every profile holding it in the same transaction.
type BadgeService struct {
	db *gorm.DB
}

// Ensure BadgeService implements IBadgeService
var _ IBadgeService = (*BadgeService)(nil)

// NewBadgeService creates a new BadgeService instance.
func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db}
}

// CreateBadge adds a catalog badge.
func (s *BadgeService) CreateBadge(ctx context.Context, req *types.CreateBadgeRequest) (*models.Badge, error) {
	var existing models.Badge
	if err := s.db.WithContext(ctx).Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return nil, ErrBadgeAlreadyExists
	}
	badge := &models.Badge{Name: req.Name, IconURL: req.IconURL}
	if err := s.db.WithContext(ctx).Create(badge).Error; err != nil {
		return nil, fmt.Errorf("failed to create badge: %w", err)
	}
	return badge, nil
}

// ListBadges returns the full catalog.
func (s *BadgeService) ListBadges(ctx context.Context) ([]*models.Badge, error) {
	var badges []models.Badge
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&badges).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Badge, len(badges))
	for i := range badges {
		result[i] = &badges[i]
	}
	return result, nil
}

// DeleteBadge removes a catalog badge and every award of it.
func (s *BadgeService) DeleteBadge(ctx context.Context, badgeID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Badge{}, "id = ?", badgeID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBadgeNotFound
		}
		return tx.Where("badge_id = ?", badgeID).Delete(&models.ProfileBadge{}).Error
	})
}

// AwardBadge attaches a catalog badge to a profile. Awarding the same
// badge twice is a no-op.
func (s *BadgeService) AwardBadge(ctx context.Context, profileID, badgeID uuid.UUID) error {
	var badge models.Badge
	if err := s.db.WithContext(ctx).First(&badge, "id = ?", badgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBadgeNotFound
		}
		return err
	}
	award := models.ProfileBadge{ProfileID: profileID, BadgeID: badgeID}
	return s.db.WithContext(ctx).
		Where("profile_id = ? AND badge_id = ?", profileID, badgeID).
		FirstOrCreate(&award).Error
}

// RevokeBadge removes one profile's award of a badge; the catalog
// entry is untouched.
func (s *BadgeService) RevokeBadge(ctx context.Context, profileID, badgeID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("profile_id = ? AND badge_id = ?", profileID, badgeID).
		Delete(&models.ProfileBadge{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBadgeNotFound
	}
	return nil
}
