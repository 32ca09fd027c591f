package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/domain/tenant"
	"github.com/svml/uriage-bot/internal/infrastructure/storage"
	"github.com/svml/uriage-bot/internal/repository"
)

func TestSettingsService_SetApprovalRoles(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	repo := repository.NewSettingsRepository(storage.NewMemoryStore(), logger)
	svc := NewSettingsService(repo, logger)

	updated, err := svc.SetApprovalRoles(ctx, "guild-1", []string{"r1", "r2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, updated.ApprovalRoleIDs)

	got, err := svc.Get(ctx, "guild-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, got.ApprovalRoleIDs)
}

func TestSettingsService_SetApprovalRoles_PreservesOtherFields(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	repo := repository.NewSettingsRepository(storage.NewMemoryStore(), logger)
	svc := NewSettingsService(repo, logger)

	require.NoError(t, repo.Save(ctx, "guild-1", &tenant.Settings{
		ApprovalRoleIDs: []string{"old"},
		Timezone:        "Asia/Tokyo",
	}))

	updated, err := svc.SetApprovalRoles(ctx, "guild-1", nil)
	require.NoError(t, err)
	assert.Empty(t, updated.ApprovalRoleIDs)
	assert.Equal(t, "Asia/Tokyo", updated.Timezone)
}
