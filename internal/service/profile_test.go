package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkgrove/linkgrove-v2/backend/internal/testhelpers"
	"github.com/linkgrove/linkgrove-v2/backend/internal/types"
)

type denyModerator struct{ blocked string }

func (m denyModerator) Allowed(text string) bool { return text != m.blocked }

func TestUpdateProfileFields(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewProfileService(db, nil)

	bio := "first programmer"
	location := "London"
	updated, err := svc.UpdateProfile(context.Background(), profile.UserID, &types.UpdateProfileRequest{
		Bio:      &bio,
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "first programmer", updated.Bio)
	assert.Equal(t, "London", updated.Location)
	// untouched fields keep their values
	assert.Equal(t, "ada", updated.DisplayName)
}

func TestUpdateProfileBlockedWord(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewProfileService(db, denyModerator{blocked: "spam"})

	bio := "spam"
	_, err := svc.UpdateProfile(context.Background(), profile.UserID, &types.UpdateProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrBlockedContent)
}

func TestReplaceLayoutValidates(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewProfileService(db, nil)
	ctx := context.Background()

	err := svc.ReplaceLayout(ctx, profile.UserID, []byte(`[{"id":"s1","type":"bio"}]`))
	require.NoError(t, err)

	stored, err := svc.GetByUserID(ctx, profile.UserID)
	require.NoError(t, err)
	sections, err := types.DecodeLayout([]byte(stored.LayoutJSON))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, types.SectionBio, sections[0].Type)

	assert.Error(t, svc.ReplaceLayout(ctx, profile.UserID, []byte(`not json`)))
}

func TestLinkCRUD(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewProfileService(db, nil)
	ctx := context.Background()

	link, err := svc.CreateLink(ctx, profile.UserID, &types.UpsertLinkRequest{Title: "Blog", URL: "https://example.com"})
	require.NoError(t, err)

	link2, err := svc.UpdateLink(ctx, profile.UserID, link.ID, &types.UpsertLinkRequest{Title: "New Blog", URL: "https://example.org", Position: 2})
	require.NoError(t, err)
	assert.Equal(t, "New Blog", link2.Title)
	assert.Equal(t, 2, link2.Position)

	require.NoError(t, svc.DeleteLink(ctx, profile.UserID, link.ID))
	assert.ErrorIs(t, svc.DeleteLink(ctx, profile.UserID, link.ID), ErrLinkNotFound)
}

func TestWidgetCRUD(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewProfileService(db, nil)
	ctx := context.Background()

	widget, err := svc.CreateWidget(ctx, profile.UserID, &types.UpsertWidgetRequest{
		Type: types.WidgetYouTube,
		URL:  "https://youtu.be/dQw4w9WgXcQ",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateWidget(ctx, profile.UserID, widget.ID, &types.UpsertWidgetRequest{
		Type:    types.WidgetCustom,
		Content: "<p>hello</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, string(types.WidgetCustom), updated.Type)

	require.NoError(t, svc.DeleteWidget(ctx, profile.UserID, widget.ID))
	assert.ErrorIs(t, svc.DeleteWidget(ctx, profile.UserID, widget.ID), ErrWidgetNotFound)
}

func TestLinkOwnershipEnforced(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	owner := testhelpers.SeedProfile(t, db, "ada")
	other := testhelpers.SeedProfile(t, db, "grace")
	svc := NewProfileService(db, nil)
	ctx := context.Background()

	link, err := svc.CreateLink(ctx, owner.UserID, &types.UpsertLinkRequest{Title: "Blog"})
	require.NoError(t, err)

	_, err = svc.UpdateLink(ctx, other.UserID, link.ID, &types.UpsertLinkRequest{Title: "Hijacked"})
	assert.ErrorIs(t, err, ErrLinkNotFound)
}
