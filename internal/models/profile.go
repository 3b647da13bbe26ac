package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile is the public page owned by one user account. The layout
// tree is stored wholesale as a JSON document; it is decoded and
// validated at the type layer, never interpreted by the database.
type Profile struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username    string         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	DisplayName string         `gorm:"size:100" json:"display_name"`
	AvatarURL   string         `gorm:"size:500" json:"avatar_url"`
	Bio         string         `gorm:"type:text" json:"bio"`
	Location    string         `gorm:"size:100" json:"location"`
	Theme       string         `gorm:"size:50;default:'default'" json:"theme"`
	BannerURL   string         `gorm:"size:500" json:"banner_url"`
	BannerVideo string         `gorm:"size:500" json:"banner_video"`
	ViewCount   int            `gorm:"not null;default:0" json:"view_count"`
	XP          int            `gorm:"not null;default:0" json:"xp"`
	Level       int            `gorm:"not null;default:1" json:"level"`
	LoginStreak int            `gorm:"not null;default:0" json:"login_streak"`
	LayoutJSON  string         `gorm:"type:text" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Link is one entry of a profile's link list. Position defines display
// order; ties fall back to creation order.
type Link struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	URL       string         `gorm:"size:1000" json:"url"`
	Icon      string         `gorm:"size:500" json:"icon"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Link) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Widget is an embeddable content block referenced by layout sections.
type Widget struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	ProfileID uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"profile_id"`
	Type      string         `gorm:"size:30;not null" json:"type"`
	Title     string         `gorm:"size:200" json:"title"`
	URL       string         `gorm:"size:1000" json:"url"`
	Content   string         `gorm:"type:text" json:"content"`
	Position  int            `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (w *Widget) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
