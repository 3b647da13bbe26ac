package types

import "encoding/json"

// UpdateProfileRequest represents the request body for updating the
// owner-editable profile fields. Pointer fields distinguish "leave
// unchanged" from "set to empty".
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
	Location    *string `json:"location,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Theme       *string `json:"theme,omitempty"`
	BannerURL   *string `json:"banner_url,omitempty"`
	BannerVideo *string `json:"banner_video,omitempty"`
}

// UpsertLinkRequest represents the request body for creating or
// updating a profile link.
type UpsertLinkRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Position int    `json:"position"`
}

// UpsertWidgetRequest represents the request body for creating or
// updating a profile widget.
type UpsertWidgetRequest struct {
	Type     WidgetType `json:"type" binding:"required"`
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	Content  string     `json:"content"`
	Position int        `json:"position"`
}

// ReplaceLayoutRequest carries a wholesale layout replacement. The
// sections document is validated before storage.
type ReplaceLayoutRequest struct {
	Sections json.RawMessage `json:"sections" binding:"required"`
}

// CreateBadgeRequest represents the admin request body for creating a
// catalog badge.
type CreateBadgeRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	IconURL string `json:"icon_url" binding:"required"`
}

// CheckoutRequest represents the request body for starting a checkout
// from an ecommerce section.
type CheckoutRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}
