package service

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"
)

var ErrCheckoutNotConfigured = errors.New("checkout is not configured")

// CheckoutService is the default payment collaborator: it builds a
// redirect into the external checkout flow. Payment details, webhooks
// and fulfillment all live on the provider's side of that URL.
type CheckoutService struct {
	baseURL string
}

// Ensure CheckoutService implements ICheckoutService
var _ ICheckoutService = (*CheckoutService)(nil)

// NewCheckoutService creates a new CheckoutService instance. baseURL
// points at the external checkout entry point.
func NewCheckoutService(baseURL string) *CheckoutService {
	return &CheckoutService{baseURL: baseURL}
}

// CreateCheckout returns the redirect target for a checkout of the
// given option on behalf of a profile.
func (s *CheckoutService) CreateCheckout(ctx context.Context, profileID uuid.UUID, optionID string) (string, error) {
	if s.baseURL == "" {
		return "", ErrCheckoutNotConfigured
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("profile", profileID.String())
	q.Set("option", optionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
