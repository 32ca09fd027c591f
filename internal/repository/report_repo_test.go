package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/domain/report"
	"github.com/svml/uriage-bot/internal/infrastructure/storage"
)

func newTestReport(date string, submittedAt time.Time) *report.Report {
	return &report.Report{
		TenantID:             "guild-1",
		Date:                 date,
		SubmitterID:          "u1",
		SubmitterDisplayName: "Tanaka",
		TotalAmount:          300000,
		CashAmount:           120000,
		CardAmount:           150000,
		ExpenseAmount:        40000,
		Remainder:            140000,
		SubmittedAt:          submittedAt,
	}
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "data/guild-1/uriagehoukoku_2025-07-07.json", LiveKey("guild-1", "2025-07-07"))
	assert.Equal(t, "data/guild-1/guild-1.json", SettingsKey("guild-1"))
	assert.Equal(t, "data/guild-1/uriagehoukoku_2025-07", MonthPrefix("guild-1", 2025, time.July))

	at := time.Date(2025, 7, 7, 21, 30, 45, 0, time.UTC)
	assert.Equal(t,
		"logs/guild-1/uriagehoukoku_2025-07-07_20250707213045.json",
		BackupKey("guild-1", "2025-07-07", at))
}

func TestReportRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewReportRepository(store, zap.NewNop())

	rep := newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 30, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, rep))

	loaded, err := repo.Load(ctx, "guild-1", "2025-07-07")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rep.Remainder, loaded.Remainder)
	assert.Equal(t, rep.SubmitterID, loaded.SubmitterID)

	// A first save takes no backup.
	assert.Equal(t, 1, store.Len())
}

func TestReportRepository_Load_Absent(t *testing.T) {
	repo := NewReportRepository(storage.NewMemoryStore(), zap.NewNop())

	loaded, err := repo.Load(context.Background(), "guild-1", "2025-07-07")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestReportRepository_Save_BacksUpExisting(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewReportRepository(store, zap.NewNop())

	first := newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 30, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, first))

	second := newTestReport("2025-07-07", time.Date(2025, 7, 7, 22, 15, 0, 0, time.UTC))
	second.TotalAmount = 310000
	require.NoError(t, repo.Save(ctx, second))

	// Exactly one backup, keyed by the overwritten document's own
	// submission time.
	backupKey := BackupKey("guild-1", "2025-07-07", first.SubmittedAt)
	data, err := store.Get(ctx, backupKey)
	require.NoError(t, err)

	backedUp, err := report.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, int64(300000), backedUp.TotalAmount)
	assert.Equal(t, 2, store.Len()) // live document plus one backup

	live, err := repo.Load(ctx, "guild-1", "2025-07-07")
	require.NoError(t, err)
	assert.Equal(t, int64(310000), live.TotalAmount)
}

func TestReportRepository_Update_TakesNoBackup(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewReportRepository(store, zap.NewNop())

	rep := newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 30, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, rep))

	rep.MessageRef = "msg-123"
	require.NoError(t, repo.Update(ctx, rep))

	assert.Equal(t, 1, store.Len())

	loaded, err := repo.Load(ctx, "guild-1", "2025-07-07")
	require.NoError(t, err)
	assert.Equal(t, "msg-123", loaded.MessageRef)
}

func TestReportRepository_Relocate(t *testing.T) {
	ctx := context.Background()

	t.Run("date change writes new key then deletes old", func(t *testing.T) {
		store := storage.NewMemoryStore()
		repo := NewReportRepository(store, zap.NewNop())

		original := newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 30, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, original))

		moved := newTestReport("2025-07-08", time.Date(2025, 7, 8, 9, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Relocate(ctx, "2025-07-07", moved))

		old, err := repo.Load(ctx, "guild-1", "2025-07-07")
		require.NoError(t, err)
		assert.Nil(t, old)

		relocated, err := repo.Load(ctx, "guild-1", "2025-07-08")
		require.NoError(t, err)
		require.NotNil(t, relocated)
		assert.Equal(t, "2025-07-08", relocated.Date)
	})

	t.Run("same date is a plain save with backup", func(t *testing.T) {
		store := storage.NewMemoryStore()
		repo := NewReportRepository(store, zap.NewNop())

		original := newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 30, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, original))

		edited := newTestReport("2025-07-07", time.Date(2025, 7, 7, 23, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Relocate(ctx, "2025-07-07", edited))

		live, err := repo.Load(ctx, "guild-1", "2025-07-07")
		require.NoError(t, err)
		require.NotNil(t, live)
		assert.Equal(t, 2, store.Len()) // live + backup of the original
	})

	t.Run("relocating onto an occupied date backs up the occupant", func(t *testing.T) {
		store := storage.NewMemoryStore()
		repo := NewReportRepository(store, zap.NewNop())

		occupant := newTestReport("2025-07-08", time.Date(2025, 7, 8, 20, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, occupant))
		moving := newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Save(ctx, moving))

		moved := newTestReport("2025-07-08", time.Date(2025, 7, 8, 22, 0, 0, 0, time.UTC))
		require.NoError(t, repo.Relocate(ctx, "2025-07-07", moved))

		backupKey := BackupKey("guild-1", "2025-07-08", occupant.SubmittedAt)
		_, err := store.Get(ctx, backupKey)
		assert.NoError(t, err)
	})
}

func TestReportRepository_ListMonth(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewReportRepository(store, zap.NewNop())

	require.NoError(t, repo.Save(ctx, newTestReport("2025-07-07", time.Date(2025, 7, 7, 21, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, newTestReport("2025-07-15", time.Date(2025, 7, 15, 21, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Save(ctx, newTestReport("2025-08-01", time.Date(2025, 8, 1, 21, 0, 0, 0, time.UTC))))

	// An undecodable document under the prefix is skipped, not fatal.
	require.NoError(t, store.Put(ctx, LiveKey("guild-1", "2025-07-20"), []byte("corrupt")))

	reports, err := repo.ListMonth(ctx, "guild-1", 2025, time.July)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "2025-07-07", reports[0].Date)
	assert.Equal(t, "2025-07-15", reports[1].Date)
}
