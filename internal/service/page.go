package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/render"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

var ErrProfileNotFound = errors.New("profile not found")

// RenderedPage is what the public page endpoint returns: the profile
// aggregate alongside its rendered node tree.
type RenderedPage struct {
	Page  *types.ProfilePage `json:"page"`
	Nodes []*render.Node     `json:"nodes"`
}

// PageService is the profile data provider: it loads the full profile
// aggregate, records the visit as a side effect and renders the layout
// tree.
type PageService struct {
	db       *gorm.DB
	renderer *render.Renderer
	visits   IVisitService
	sandbox  ISandboxService
}

// Ensure PageService implements IPageService
var _ IPageService = (*PageService)(nil)

// NewPageService creates a new PageService instance.
func NewPageService(db *gorm.DB, renderer *render.Renderer, visits IVisitService, sandbox ISandboxService) *PageService {
	return &PageService{db: db, renderer: renderer, visits: visits, sandbox: sandbox}
}

// GetPage resolves a username to its rendered public page. The visit
// side effect never fails the render: a dedup error is logged and the
// page is served anyway.
func (s *PageService) GetPage(ctx context.Context, username, visitorID string) (*RenderedPage, error) {
	page, err := s.loadAggregate(ctx, username)
	if err != nil {
		return nil, err
	}

	if s.visits != nil {
		counted, err := s.visits.RecordVisit(ctx, page.ProfileID, visitorID)
		if err != nil {
			log.Printf("[PageService] visit recording failed for %s: %v", username, err)
		} else if counted {
			page.Stats.ViewCount++
		}
	}

	if s.sandbox != nil {
		// Drop sandbox documents from the previous render of this
		// profile before the new walk stores fresh ones.
		if err := s.sandbox.Teardown(ctx, page.ProfileID.String()); err != nil {
			log.Printf("[PageService] sandbox teardown failed for %s: %v", username, err)
		}
	}

	nodes := s.renderer.RenderTree(ctx, page.Layout, page)
	return &RenderedPage{Page: page, Nodes: nodes}, nil
}

func (s *PageService) loadAggregate(ctx context.Context, username string) (*types.ProfilePage, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var links []models.Link
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("position asc, created_at asc").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}

	var widgets []models.Widget
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("position asc, created_at asc").
		Find(&widgets).Error; err != nil {
		return nil, fmt.Errorf("failed to load widgets: %w", err)
	}

	var awards []models.ProfileBadge
	if err := s.db.WithContext(ctx).
		Where("profile_id = ?", profile.ID).
		Order("awarded_at asc").
		Find(&awards).Error; err != nil {
		return nil, fmt.Errorf("failed to load badge awards: %w", err)
	}

	badges := make([]types.PageBadge, 0, len(awards))
	for _, award := range awards {
		var badge models.Badge
		if err := s.db.WithContext(ctx).First(&badge, "id = ?", award.BadgeID).Error; err != nil {
			// catalog entry gone mid-delete; skip the award
			continue
		}
		badges = append(badges, types.PageBadge{
			ID:        badge.ID,
			Name:      badge.Name,
			IconURL:   badge.IconURL,
			AwardedAt: award.AwardedAt,
		})
	}

	layout, err := types.DecodeLayout([]byte(profile.LayoutJSON))
	if err != nil {
		// A corrupt stored layout degrades to an empty page body
		// rather than a failed render.
		log.Printf("[PageService] profile %s has invalid layout, rendering empty: %v", username, err)
		layout = nil
	}

	page := &types.ProfilePage{
		ProfileID:   profile.ID,
		Username:    profile.Username,
		DisplayName: profile.DisplayName,
		AvatarURL:   profile.AvatarURL,
		Bio:         profile.Bio,
		Location:    profile.Location,
		Theme:       profile.Theme,
		BannerURL:   profile.BannerURL,
		BannerVideo: profile.BannerVideo,
		Stats: types.PageStats{
			XP:          profile.XP,
			Level:       profile.Level,
			LoginStreak: profile.LoginStreak,
			ViewCount:   profile.ViewCount,
		},
		Links:   make([]types.PageLink, 0, len(links)),
		Widgets: make([]types.PageWidget, 0, len(widgets)),
		Badges:  badges,
		Layout:  layout,
	}
	for _, l := range links {
		page.Links = append(page.Links, types.PageLink{
			ID: l.ID, Title: l.Title, URL: l.URL, Icon: l.Icon, Position: l.Position,
		})
	}
	for _, w := range widgets {
		page.Widgets = append(page.Widgets, types.PageWidget{
			ID: w.ID, Type: types.WidgetType(w.Type), Title: w.Title,
			URL: w.URL, Content: w.Content, Position: w.Position,
		})
	}
	return page, nil
}
