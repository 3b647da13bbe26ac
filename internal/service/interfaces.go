package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/render"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, username string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for owner-side profile mutations
type IProfileService interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.Profile, error)
	ReplaceLayout(ctx context.Context, userID uuid.UUID, raw []byte) error
	CreateLink(ctx context.Context, userID uuid.UUID, req *types.UpsertLinkRequest) (*models.Link, error)
	UpdateLink(ctx context.Context, userID, linkID uuid.UUID, req *types.UpsertLinkRequest) (*models.Link, error)
	DeleteLink(ctx context.Context, userID, linkID uuid.UUID) error
	CreateWidget(ctx context.Context, userID uuid.UUID, req *types.UpsertWidgetRequest) (*models.Widget, error)
	UpdateWidget(ctx context.Context, userID, widgetID uuid.UUID, req *types.UpsertWidgetRequest) (*models.Widget, error)
	DeleteWidget(ctx context.Context, userID, widgetID uuid.UUID) error
}

// IPageService is the profile data provider the public renderer
// consumes: it assembles the aggregate, records the visit and renders.
type IPageService interface {
	GetPage(ctx context.Context, username, visitorID string) (*RenderedPage, error)
}

// IVisitService decides whether a page view counts.
type IVisitService interface {
	RecordVisit(ctx context.Context, profileID uuid.UUID, visitorID string) (bool, error)
}

// IBadgeService manages the badge catalog and awards.
type IBadgeService interface {
	CreateBadge(ctx context.Context, req *types.CreateBadgeRequest) (*models.Badge, error)
	ListBadges(ctx context.Context) ([]*models.Badge, error)
	DeleteBadge(ctx context.Context, badgeID uuid.UUID) error
	AwardBadge(ctx context.Context, profileID, badgeID uuid.UUID) error
	RevokeBadge(ctx context.Context, profileID, badgeID uuid.UUID) error
}

// IShareService produces shareable QR codes for profile URLs.
type IShareService interface {
	GenerateShareCode(ctx context.Context, profileURL string) ([]byte, error)
	UploadShareCode(ctx context.Context, username string, code []byte) (string, error)
}

// ISandboxService stores and serves isolated script documents.
type ISandboxService interface {
	render.SandboxStore
	Get(ctx context.Context, docID string) (string, error)
	Teardown(ctx context.Context, profileID string) error
}

// ICheckoutService is the payment collaborator boundary. The ecommerce
// section only ever calls this; provider details stay behind it.
type ICheckoutService interface {
	CreateCheckout(ctx context.Context, profileID uuid.UUID, optionID string) (string, error)
}

// IEmailService delivers transactional mail through an external
// provider.
type IEmailService interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}
