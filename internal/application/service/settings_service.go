package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/domain/tenant"
	"github.com/svml/uriage-bot/internal/repository"
)

// SettingsService manages tenant approval configuration
type SettingsService struct {
	settings *repository.SettingsRepository
	logger   *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settings *repository.SettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{settings: settings, logger: logger}
}

// Get returns the tenant's settings, empty when never configured
func (s *SettingsService) Get(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	return s.settings.Load(ctx, tenantID)
}

// SetApprovalRoles replaces the tenant's approver role set, preserving the
// other settings fields. An empty set restores the administrators-only
// policy.
func (s *SettingsService) SetApprovalRoles(ctx context.Context, tenantID string, roleIDs []string) (*tenant.Settings, error) {
	settings, err := s.settings.Load(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	settings.ApprovalRoleIDs = roleIDs
	if err := s.settings.Save(ctx, tenantID, settings); err != nil {
		return nil, err
	}

	s.logger.Info("Approval roles updated",
		zap.String("tenant_id", tenantID),
		zap.Int("role_count", len(roleIDs)))
	return settings, nil
}
