package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/port"
	"github.com/svml/uriage-bot/internal/domain/tenant"
)

// SettingsRepository persists tenant configuration documents
type SettingsRepository struct {
	store  port.BlobStore
	logger *zap.Logger
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(store port.BlobStore, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{store: store, logger: logger}
}

// Load retrieves a tenant's settings. A missing document yields empty
// settings, not an error.
func (r *SettingsRepository) Load(ctx context.Context, tenantID string) (*tenant.Settings, error) {
	key := SettingsKey(tenantID)
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, port.ErrObjectNotFound) {
		return &tenant.Settings{}, nil
	}
	if err != nil {
		r.logger.Error("Failed to read settings",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("read settings %s: %w", key, err)
	}

	var settings tenant.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", key, err)
	}
	return &settings, nil
}

// Save writes a tenant's settings document
func (r *SettingsRepository) Save(ctx context.Context, tenantID string, settings *tenant.Settings) error {
	key := SettingsKey(tenantID)
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := r.store.Put(ctx, key, data); err != nil {
		r.logger.Error("Failed to write settings",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("write settings %s: %w", key, err)
	}
	return nil
}
