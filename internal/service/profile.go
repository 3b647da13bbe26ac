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
	ErrLinkNotFound   = errors.New("link not found")
	ErrWidgetNotFound = errors.New("widget not found")
	ErrBlockedContent = errors.New("content contains a prohibited word")
)

// Moderator screens user-supplied text against the platform word list.
type Moderator interface {
	Allowed(text string) bool
}

// ProfileService handles the owner-side profile mutations: fields,
// links, widgets and wholesale layout replacement.
type ProfileService struct {
	db        *gorm.DB
	moderator Moderator
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance. moderator
// may be nil to disable word screening.
func NewProfileService(db *gorm.DB, moderator Moderator) *ProfileService {
	return &ProfileService{db: db, moderator: moderator}
}

// GetByUserID retrieves the profile owned by a user account.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUsername retrieves a profile by its public username.
func (s *ProfileService) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the owner-editable fields that are present in
// the request.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if !s.allowed(*req.DisplayName) {
			return nil, ErrBlockedContent
		}
		profile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		if !s.allowed(*req.Bio) {
			return nil, ErrBlockedContent
		}
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.Theme != nil {
		profile.Theme = *req.Theme
	}
	if req.BannerURL != nil {
		profile.BannerURL = *req.BannerURL
	}
	if req.BannerVideo != nil {
		profile.BannerVideo = *req.BannerVideo
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// ReplaceLayout validates and stores a wholesale layout replacement.
func (s *ProfileService) ReplaceLayout(ctx context.Context, userID uuid.UUID, raw []byte) error {
	sections, err := types.DecodeLayout(raw)
	if err != nil {
		return err
	}
	encoded, err := types.EncodeLayout(sections)
	if err != nil {
		return err
	}

	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(profile).
		UpdateColumn("layout_json", string(encoded)).Error
}

// CreateLink adds a link to the owner's profile.
func (s *ProfileService) CreateLink(ctx context.Context, userID uuid.UUID, req *types.UpsertLinkRequest) (*models.Link, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.allowed(req.Title) {
		return nil, ErrBlockedContent
	}
	link := &models.Link{
		ProfileID: profile.ID,
		Title:     req.Title,
		URL:       req.URL,
		Icon:      req.Icon,
		Position:  req.Position,
	}
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

// UpdateLink updates a link owned by the user.
func (s *ProfileService) UpdateLink(ctx context.Context, userID, linkID uuid.UUID, req *types.UpsertLinkRequest) (*models.Link, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !s.allowed(req.Title) {
		return nil, ErrBlockedContent
	}
	var link models.Link
	if err := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", linkID, profile.ID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	link.Title = req.Title
	link.URL = req.URL
	link.Icon = req.Icon
	link.Position = req.Position
	if err := s.db.WithContext(ctx).Save(&link).Error; err != nil {
		return nil, fmt.Errorf("failed to update link: %w", err)
	}
	return &link, nil
}

// DeleteLink removes a link owned by the user.
func (s *ProfileService) DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", linkID, profile.ID).
		Delete(&models.Link{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// CreateWidget adds a widget to the owner's profile.
func (s *ProfileService) CreateWidget(ctx context.Context, userID uuid.UUID, req *types.UpsertWidgetRequest) (*models.Widget, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	widget := &models.Widget{
		ProfileID: profile.ID,
		Type:      string(req.Type),
		Title:     req.Title,
		URL:       req.URL,
		Content:   req.Content,
		Position:  req.Position,
	}
	if err := s.db.WithContext(ctx).Create(widget).Error; err != nil {
		return nil, fmt.Errorf("failed to create widget: %w", err)
	}
	return widget, nil
}

// UpdateWidget updates a widget owned by the user.
func (s *ProfileService) UpdateWidget(ctx context.Context, userID, widgetID uuid.UUID, req *types.UpsertWidgetRequest) (*models.Widget, error) {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	var widget models.Widget
	if err := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", widgetID, profile.ID).
		First(&widget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWidgetNotFound
		}
		return nil, err
	}
	widget.Type = string(req.Type)
	widget.Title = req.Title
	widget.URL = req.URL
	widget.Content = req.Content
	widget.Position = req.Position
	if err := s.db.WithContext(ctx).Save(&widget).Error; err != nil {
		return nil, fmt.Errorf("failed to update widget: %w", err)
	}
	return &widget, nil
}

// DeleteWidget removes a widget owned by the user. Layout sections
// referencing it become dangling and render as nothing.
func (s *ProfileService) DeleteWidget(ctx context.Context, userID, widgetID uuid.UUID) error {
	profile, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", widgetID, profile.ID).
		Delete(&models.Widget{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrWidgetNotFound
	}
	return nil
}

func (s *ProfileService) allowed(text string) bool {
	if s.moderator == nil {
		return true
	}
	return s.moderator.Allowed(text)
}
