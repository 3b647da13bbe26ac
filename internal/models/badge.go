package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Badge is a catalog entry. Awards reference it; deleting a catalog
// badge removes it from every profile holding it.
type Badge struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	IconURL   string    `gorm:"size:500;not null" json:"icon_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ProfileBadge records a badge awarded to a profile.
type ProfileBadge struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_profile_badge,unique" json:"profile_id"`
	BadgeID   uuid.UUID `gorm:"type:varchar(36);not null;index:idx_profile_badge,unique" json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
}

func (pb *ProfileBadge) BeforeCreate(tx *gorm.DB) error {
	if pb.ID == uuid.Nil {
		pb.ID = uuid.New()
	}
	if pb.AwardedAt.IsZero() {
		pb.AwardedAt = time.Now()
	}
	return nil
}
