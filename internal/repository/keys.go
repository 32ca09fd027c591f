package repository

import (
	"fmt"
	"time"
)

// Storage key layout. These formats address existing bucket data and must
// not change.
//
//	live report:  data/{tenantId}/uriagehoukoku_{YYYY-MM-DD}.json
//	backup:       logs/{tenantId}/uriagehoukoku_{YYYY-MM-DD}_{YYYYMMDDHHMMSS}.json
//	settings:     data/{tenantId}/{tenantId}.json

// LiveKey returns the authoritative key for a tenant's report on a date
func LiveKey(tenantID, date string) string {
	return fmt.Sprintf("data/%s/uriagehoukoku_%s.json", tenantID, date)
}

// BackupKey returns the audit key for a superseded revision. The timestamp
// is the overwritten document's own submission time, so backups stay
// content-addressed by revision rather than by backup wall clock.
func BackupKey(tenantID, date string, submittedAt time.Time) string {
	return fmt.Sprintf("logs/%s/uriagehoukoku_%s_%s.json", tenantID, date, submittedAt.Format("20060102150405"))
}

// SettingsKey returns the key of the tenant configuration document
func SettingsKey(tenantID string) string {
	return fmt.Sprintf("data/%s/%s.json", tenantID, tenantID)
}

// MonthPrefix returns the key prefix covering a tenant's reports in a month
func MonthPrefix(tenantID string, year int, month time.Month) string {
	return fmt.Sprintf("data/%s/uriagehoukoku_%04d-%02d", tenantID, year, int(month))
}
