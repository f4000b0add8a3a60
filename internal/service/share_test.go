package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SkyVault/config"
	"SkyVault/internal/errs"
	"SkyVault/model"
)

func seedFile(t *testing.T, catalog *fakeCatalog, ownerID string, encrypted bool) *model.File {
	t.Helper()
	file := &model.File{
		OwnerID:     ownerID,
		Name:        "shared.txt",
		StoragePath: BuildStoragePath(ownerID, "shared.txt"),
		Size:        9,
		MimeType:    "text/plain",
		IsEncrypted: encrypted,
	}
	require.NoError(t, catalog.InsertFile(context.Background(), file))
	return file
}

func TestIssueShare_RejectsEncryptedFiles(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", true)

	for _, ttl := range []time.Duration{time.Minute, time.Hour, 30 * 24 * time.Hour} {
		_, err := IssueShare(ctx, "owner-1", file.ID, ttl)
		assert.ErrorIs(t, err, errs.ErrValidation)
	}
}

func TestIssueShare_MintsIndependentTokens(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", false)

	first, err := IssueShare(ctx, "owner-1", file.ID, time.Hour)
	require.NoError(t, err)
	second, err := IssueShare(ctx, "owner-1", file.ID, time.Hour)
	require.NoError(t, err)

	// issue is not idempotent: both links are live at once
	assert.NotEqual(t, first.Token, second.Token)
	for _, token := range []string{first.Token, second.Token} {
		resolved, err := ResolveShare(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, file.ID, resolved.ID)
	}
}

func TestIssueShare_DefaultTTL(t *testing.T) {
	catalog, _ := useFakes(t)
	prev := config.AppConfig.ShareDefaultTTL
	config.AppConfig.ShareDefaultTTL = 24 * time.Hour
	t.Cleanup(func() { config.AppConfig.ShareDefaultTTL = prev })

	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", false)

	share, err := IssueShare(ctx, "owner-1", file.ID, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), share.ExpiresAt, time.Minute)
}

func TestIssueShare_OwnershipAndExistence(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-2", false)

	_, err := IssueShare(ctx, "owner-1", file.ID, time.Hour)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = IssueShare(ctx, "owner-1", "no-such-file", time.Hour)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = IssueShare(ctx, "", file.ID, time.Hour)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestResolveShare_ExpiryIsRecheckedEveryCall(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", false)

	share, err := IssueShare(ctx, "owner-1", file.ID, 80*time.Millisecond)
	require.NoError(t, err)

	// before expiresAt the link grants access
	resolved, err := ResolveShare(ctx, share.Token)
	require.NoError(t, err)
	assert.Equal(t, file.ID, resolved.ID)

	// after expiresAt the very next resolution stops granting access
	time.Sleep(120 * time.Millisecond)
	_, err = ResolveShare(ctx, share.Token)
	assert.ErrorIs(t, err, errs.ErrExpired)
}

func TestResolveShare_AtExpiryInstantFails(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", false)

	share := &model.ShareLink{
		Token:     "expired-now",
		FileID:    file.ID,
		OwnerID:   "owner-1",
		ExpiresAt: time.Now(),
	}
	require.NoError(t, catalog.InsertShare(ctx, share))

	// now >= expiresAt fails; the boundary itself is not valid
	_, err := ResolveShare(ctx, share.Token)
	assert.ErrorIs(t, err, errs.ErrExpired)
}

func TestResolveShare_UnknownToken(t *testing.T) {
	useFakes(t)

	_, err := ResolveShare(context.Background(), "never-issued")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestResolveShare_FileDeletedUnderneath(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", false)

	share, err := IssueShare(ctx, "owner-1", file.ID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteFileByID(ctx, file.ID))

	_, err = ResolveShare(ctx, share.Token)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRevokeShare(t *testing.T) {
	catalog, _ := useFakes(t)
	ctx := context.Background()
	file := seedFile(t, catalog, "owner-1", false)

	share, err := IssueShare(ctx, "owner-1", file.ID, time.Hour)
	require.NoError(t, err)

	// someone else's revoke looks like a missing token
	err = RevokeShare(ctx, "owner-2", share.Token)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	require.NoError(t, RevokeShare(ctx, "owner-1", share.Token))

	_, err = ResolveShare(ctx, share.Token)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = RevokeShare(ctx, "owner-1", share.Token)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
