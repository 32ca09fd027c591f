// Package repository maps report and settings documents onto blob store keys.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/port"
	"github.com/svml/uriage-bot/internal/domain/report"
)

// ReportRepository persists report documents in the blob store
type ReportRepository struct {
	store  port.BlobStore
	logger *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(store port.BlobStore, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{store: store, logger: logger}
}

// Load retrieves the live report for a tenant and date. Absence is a valid
// result and returns (nil, nil).
func (r *ReportRepository) Load(ctx context.Context, tenantID, date string) (*report.Report, error) {
	key := LiveKey(tenantID, date)
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, port.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to read report",
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("read report %s: %w", key, err)
	}
	rep, err := report.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode report %s: %w", key, err)
	}
	return rep, nil
}

// Save writes the report to its live key. When the key already holds a
// submitted report, that document is first copied verbatim to a backup key
// derived from its own submission timestamp.
func (r *ReportRepository) Save(ctx context.Context, rep *report.Report) error {
	key := LiveKey(rep.TenantID, rep.Date)

	existing, err := r.store.Get(ctx, key)
	if err != nil && !errors.Is(err, port.ErrObjectNotFound) {
		r.logger.Error("Failed to check existing report before save",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("read report %s: %w", key, err)
	}
	if err == nil {
		prior, decodeErr := report.Decode(existing)
		if decodeErr == nil && !prior.SubmittedAt.IsZero() {
			backupKey := BackupKey(rep.TenantID, rep.Date, prior.SubmittedAt)
			if putErr := r.store.Put(ctx, backupKey, existing); putErr != nil {
				r.logger.Error("Failed to back up superseded report",
					zap.String("key", key),
					zap.String("backup_key", backupKey),
					zap.Error(putErr))
				return fmt.Errorf("back up report %s: %w", key, putErr)
			}
			r.logger.Info("Backed up superseded report",
				zap.String("backup_key", backupKey))
		}
	}

	return r.put(ctx, key, rep)
}

// Update rewrites the live document in place without taking a revision
// backup. Used for bookkeeping writes such as attaching the rendered
// message reference after a save already backed up the prior revision.
func (r *ReportRepository) Update(ctx context.Context, rep *report.Report) error {
	return r.put(ctx, LiveKey(rep.TenantID, rep.Date), rep)
}

// Relocate moves a report whose date changed during an edit. The new key is
// written (with backup semantics for whatever it overwrites) before the old
// key is deleted, so a crash mid-operation leaves the report recoverable at
// the old key rather than lost. A same-date relocation is a plain save.
func (r *ReportRepository) Relocate(ctx context.Context, oldDate string, rep *report.Report) error {
	if oldDate == rep.Date {
		return r.Save(ctx, rep)
	}

	if err := r.Save(ctx, rep); err != nil {
		return err
	}

	oldKey := LiveKey(rep.TenantID, oldDate)
	if err := r.store.Delete(ctx, oldKey); err != nil {
		r.logger.Error("Failed to delete relocated report",
			zap.String("old_key", oldKey),
			zap.Error(err))
		return fmt.Errorf("delete report %s: %w", oldKey, err)
	}
	r.logger.Info("Relocated report",
		zap.String("old_key", oldKey),
		zap.String("new_key", LiveKey(rep.TenantID, rep.Date)))
	return nil
}

// ListMonth loads every report of a tenant within a month, skipping
// documents that fail to decode.
func (r *ReportRepository) ListMonth(ctx context.Context, tenantID string, year int, month time.Month) ([]*report.Report, error) {
	prefix := MonthPrefix(tenantID, year, month)
	keys, err := r.store.List(ctx, prefix)
	if err != nil {
		r.logger.Error("Failed to list reports",
			zap.String("prefix", prefix),
			zap.Error(err))
		return nil, fmt.Errorf("list reports %s: %w", prefix, err)
	}

	reports := make([]*report.Report, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if errors.Is(err, port.ErrObjectNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", key, err)
		}
		rep, err := report.Decode(data)
		if err != nil {
			r.logger.Warn("Skipping undecodable report document",
				zap.String("key", key),
				zap.Error(err))
			continue
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *ReportRepository) put(ctx context.Context, key string, rep *report.Report) error {
	data, err := rep.Encode()
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, key, data); err != nil {
		r.logger.Error("Failed to write report",
			zap.String("key", key),
			zap.Error(err))
		return fmt.Errorf("write report %s: %w", key, err)
	}
	r.logger.Debug("Report written", zap.String("key", key))
	return nil
}
