package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkgrove/linkgrove-v2/backend/internal/testhelpers"
)

func TestSandboxPutGetRoundTrip(t *testing.T) {
	svc := NewSandboxService(testhelpers.SetupTestRedis(t))
	ctx := context.Background()

	docID, err := svc.Put(ctx, "profile-1", "section-1", 0, "console.log('hi')")
	require.NoError(t, err)
	require.NotEmpty(t, docID)

	script, err := svc.Get(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "console.log('hi')", script)
}

func TestSandboxGetUnknownDoc(t *testing.T) {
	svc := NewSandboxService(testhelpers.SetupTestRedis(t))

	_, err := svc.Get(context.Background(), "no-such-doc")
	assert.ErrorIs(t, err, ErrSandboxDocNotFound)
}

func TestSandboxEachScriptKeepsOwnDocument(t *testing.T) {
	svc := NewSandboxService(testhelpers.SetupTestRedis(t))
	ctx := context.Background()

	first, err := svc.Put(ctx, "profile-1", "section-1", 0, "first()")
	require.NoError(t, err)
	second, err := svc.Put(ctx, "profile-1", "section-1", 1, "second()")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	got, err := svc.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "first()", got)
	got, err = svc.Get(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "second()", got)
}

func TestSandboxRerenderReplacesInPlace(t *testing.T) {
	svc := NewSandboxService(testhelpers.SetupTestRedis(t))
	ctx := context.Background()

	docID, err := svc.Put(ctx, "profile-1", "section-1", 0, "old()")
	require.NoError(t, err)
	again, err := svc.Put(ctx, "profile-1", "section-1", 0, "new()")
	require.NoError(t, err)
	assert.Equal(t, docID, again)

	script, err := svc.Get(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, "new()", script)
}

func TestSandboxTeardownRemovesAllProfileDocs(t *testing.T) {
	svc := NewSandboxService(testhelpers.SetupTestRedis(t))
	ctx := context.Background()

	a, err := svc.Put(ctx, "profile-1", "section-1", 0, "a()")
	require.NoError(t, err)
	b, err := svc.Put(ctx, "profile-1", "section-2", 0, "b()")
	require.NoError(t, err)
	other, err := svc.Put(ctx, "profile-2", "section-1", 0, "c()")
	require.NoError(t, err)

	require.NoError(t, svc.Teardown(ctx, "profile-1"))

	_, err = svc.Get(ctx, a)
	assert.ErrorIs(t, err, ErrSandboxDocNotFound)
	_, err = svc.Get(ctx, b)
	assert.ErrorIs(t, err, ErrSandboxDocNotFound)

	// other profiles untouched
	script, err := svc.Get(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, "c()", script)
}

func TestSandboxTeardownEmptyProfileIsNoop(t *testing.T) {
	svc := NewSandboxService(testhelpers.SetupTestRedis(t))
	assert.NoError(t, svc.Teardown(context.Background(), "never-rendered"))
}
