package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/linkgrove/linkgrove-v2/backend/internal/models"
	"github.com/linkgrove/linkgrove-v2/backend/internal/testhelpers"
)

func TestRecordVisitCountsOncePerPair(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewVisitService(db, nil)
	ctx := context.Background()

	counted, err := svc.RecordVisit(ctx, profile.ID, "client-1")
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = svc.RecordVisit(ctx, profile.ID, "client-1")
	require.NoError(t, err)
	assert.False(t, counted)

	var got models.Profile
	require.NoError(t, db.First(&got, "id = ?", profile.ID).Error)
	assert.Equal(t, 1, got.ViewCount)
}

func TestRecordVisitDistinctVisitors(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewVisitService(db, nil)
	ctx := context.Background()

	for _, client := range []string{"client-1", "client-2"} {
		counted, err := svc.RecordVisit(ctx, profile.ID, client)
		require.NoError(t, err)
		assert.True(t, counted)
	}

	var got models.Profile
	require.NoError(t, db.First(&got, "id = ?", profile.ID).Error)
	assert.Equal(t, 2, got.ViewCount)

	var visits int64
	require.NoError(t, db.Model(&models.Visit{}).Count(&visits).Error)
	assert.EqualValues(t, 2, visits)
}

// A visitor racing itself past the existence check loses on the unique
// index; the translated duplicate-key error is what RecordVisit folds
// into a clean uncounted result.
func TestDuplicateVisitInsertTranslated(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")

	require.NoError(t, db.Create(&models.Visit{ProfileID: profile.ID, VisitorID: "client-1"}).Error)
	err := db.Create(&models.Visit{ProfileID: profile.ID, VisitorID: "client-1"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestRecordVisitEmptyVisitorSkipsCounting(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	profile := testhelpers.SeedProfile(t, db, "ada")
	svc := NewVisitService(db, nil)

	counted, err := svc.RecordVisit(context.Background(), profile.ID, "")
	require.NoError(t, err)
	assert.False(t, counted)

	var got models.Profile
	require.NoError(t, db.First(&got, "id = ?", profile.ID).Error)
	assert.Equal(t, 0, got.ViewCount)
}
