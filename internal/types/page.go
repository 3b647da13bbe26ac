package types

import (
	"time"

	"github.com/google/uuid"
)

// WidgetType identifies an embeddable content block variant.
type WidgetType string

const (
	WidgetYouTube   WidgetType = "youtube"
	WidgetSpotify   WidgetType = "spotify"
	WidgetTwitter   WidgetType = "twitter"
	WidgetCustom    WidgetType = "custom"
	WidgetForm      WidgetType = "form"
	WidgetEcommerce WidgetType = "ecommerce"
	WidgetAPI       WidgetType = "api"
	WidgetCalendar  WidgetType = "calendar"
)

// PageLink is one entry of a profile's link list, in display order.
type PageLink struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url"`
	Icon     string    `json:"icon,omitempty"`
	Position int       `json:"position"`
}

// PageWidget is an embeddable content block referenced by layout
// sections via its ID.
type PageWidget struct {
	ID       uuid.UUID  `json:"id"`
	Type     WidgetType `json:"type"`
	Title    string     `json:"title,omitempty"`
	URL      string     `json:"url,omitempty"`
	Content  string     `json:"content,omitempty"`
	Position int        `json:"position"`
}

// PageBadge is a badge awarded to a profile.
type PageBadge struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IconURL   string    `json:"icon_url"`
	AwardedAt time.Time `json:"awarded_at"`
}

// PageStats carries the profile's gamification counters.
type PageStats struct {
	XP          int `json:"xp"`
	Level       int `json:"level"`
	LoginStreak int `json:"login_streak"`
	ViewCount   int `json:"view_count"`
}

// ProfilePage is the full aggregate the renderer consumes: identity
// fields, resolved collections and the decoded layout tree.
type ProfilePage struct {
	ProfileID   uuid.UUID       `json:"profile_id"`
	Username    string          `json:"username"`
	DisplayName string          `json:"display_name"`
	AvatarURL   string          `json:"avatar_url,omitempty"`
	Bio         string          `json:"bio,omitempty"`
	Location    string          `json:"location,omitempty"`
	Theme       string          `json:"theme,omitempty"`
	BannerURL   string          `json:"banner_url,omitempty"`
	BannerVideo string          `json:"banner_video,omitempty"`
	Stats       PageStats       `json:"stats"`
	Links       []PageLink      `json:"links"`
	Widgets     []PageWidget    `json:"widgets"`
	Badges      []PageBadge     `json:"badges"`
	Layout      []LayoutSection `json:"layout"`
}

// Banner resolves the mutually exclusive banner options by priority:
// video beats image beats themed gradient.
func (p *ProfilePage) Banner() (kind, value string) {
	switch {
	case p.BannerVideo != "":
		return "video", p.BannerVideo
	case p.BannerURL != "":
		return "image", p.BannerURL
	default:
		return "theme", p.Theme
	}
}

// Widget looks up a widget by its string ID. The second return is false
// for a dangling reference; callers render nothing in that case.
func (p *ProfilePage) Widget(id string) (*PageWidget, bool) {
	if id == "" {
		return nil, false
	}
	for i := range p.Widgets {
		if p.Widgets[i].ID.String() == id {
			return &p.Widgets[i], true
		}
	}
	return nil, false
}
