package render

import "github.com/linkgrove/linkgrove-v2/backend/internal/types"

// NodeKind identifies one kind of rendered output node.
type NodeKind string

const (
	NodeBio      NodeKind = "bio"
	NodeLinkList NodeKind = "links"
	NodeLink     NodeKind = "link"
	NodeEmbed    NodeKind = "embed"
	NodeHTML     NodeKind = "html"
	NodeSandbox  NodeKind = "sandbox"
	NodeSpacer   NodeKind = "spacer"
	NodeForm     NodeKind = "form"
	NodeField    NodeKind = "field"
	NodeCheckout NodeKind = "checkout"
	NodeGroup    NodeKind = "group"
	NodeAPIData  NodeKind = "api"
	NodeCalendar NodeKind = "calendar"
	NodePageRef  NodeKind = "page"
)

// Node is one element of the rendered page tree the frontend consumes.
// Only the fields relevant to a node's kind are populated.
type Node struct {
	Kind      NodeKind          `json:"kind"`
	SectionID string            `json:"section_id,omitempty"`
	Title     string            `json:"title,omitempty"`
	Text      string            `json:"text,omitempty"`
	URL       string            `json:"url,omitempty"`
	Icon      string            `json:"icon,omitempty"`
	HTML      string            `json:"html,omitempty"`
	Provider  string            `json:"provider,omitempty"`
	Height    int               `json:"height,omitempty"`
	Variant   string            `json:"variant,omitempty"`
	Styling   map[string]string `json:"styling,omitempty"`
	Bio       *BioData          `json:"bio,omitempty"`
	Children  []*Node           `json:"children,omitempty"`
}

// BioData carries everything the bio section displays: identity,
// avatar (with initial-letter fallback), gamification stats and badges.
type BioData struct {
	DisplayName     string            `json:"display_name"`
	Location        string            `json:"location,omitempty"`
	BioText         string            `json:"bio_text,omitempty"`
	AvatarURL       string            `json:"avatar_url,omitempty"`
	AvatarFallback  string            `json:"avatar_fallback"`
	Level           int               `json:"level"`
	LoginStreak     int               `json:"login_streak"`
	ProgressPercent int               `json:"progress_percent"`
	ViewCount       int               `json:"view_count"`
	Badges          []types.PageBadge `json:"badges,omitempty"`
}

// FormField is one field descriptor of a form section's JSON content.
type FormField struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder"`
}
