package service

import (
	"context"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutBuildsRedirect(t *testing.T) {
	svc := NewCheckoutService("https://pay.example.com/start")
	profileID := uuid.New()

	redirect, err := svc.CreateCheckout(context.Background(), profileID, "badge-gold")
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "pay.example.com", u.Host)
	assert.Equal(t, profileID.String(), u.Query().Get("profile"))
	assert.Equal(t, "badge-gold", u.Query().Get("option"))
}

func TestCreateCheckoutUnconfigured(t *testing.T) {
	svc := NewCheckoutService("")
	_, err := svc.CreateCheckout(context.Background(), uuid.New(), "badge-gold")
	assert.ErrorIs(t, err, ErrCheckoutNotConfigured)
}
