package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Visit records that a visitor client has been counted for a profile.
// The unique index over (profile_id, visitor_id) is what makes view
// counting at-most-once per pair; inserts racing on the same pair
// collide there and only one wins.
type Visit struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:varchar(36);not null;index:idx_profile_visitor,unique" json:"profile_id"`
	VisitorID string    `gorm:"size:100;not null;index:idx_profile_visitor,unique" json:"visitor_id"`
	VisitedAt time.Time `json:"visited_at"`
}

func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now()
	}
	return nil
}
