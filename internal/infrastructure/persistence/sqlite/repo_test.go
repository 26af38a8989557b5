package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/persistence/sqlite"
	"github.com/briwestervelt/formal/internal/logging"
)

func testCtx() context.Context {
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "console"})
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "formal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return ctx, db
}

func TestSettingsRepository_LoadDefaultsOnEmptyDatabase(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	settings, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, entity.ColorBlack, settings.Color(entity.SlotBackground))
	assert.Equal(t, entity.ColorLightGray, settings.Color(entity.SlotTick))
	assert.True(t, settings.BluetoothVibes)
	assert.True(t, settings.UpdatedAt.IsZero())
}

func TestSettingsRepository_SaveAndLoad(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewSettingsRepository(db)

	settings := entity.DefaultWatchfaceSettings()
	settings.Apply(entity.SettingsUpdate{
		entity.KeyBackgroundColor: 0x1E90FF,
		entity.KeyBluetoothVibes:  0,
	})
	require.NoError(t, repo.Save(ctx, settings))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.Color(0x1E90FF), loaded.Color(entity.SlotBackground))
	assert.Equal(t, entity.ColorWhite, loaded.Color(entity.SlotHour))
	assert.False(t, loaded.BluetoothVibes)
	assert.False(t, loaded.UpdatedAt.IsZero())

	// a second save overwrites rather than duplicating rows
	loaded.Apply(entity.SettingsUpdate{entity.KeyBackgroundColor: 0})
	require.NoError(t, repo.Save(ctx, loaded))
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ColorBlack, again.Color(entity.SlotBackground))
}

func TestDeliveryRepository_RecordAndRecent(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewDeliveryRepository(db)

	vibes := true
	msg := entity.NewAppMessage()
	msg.SetColor(entity.SlotDot, 255)
	msg.BluetoothVibes = &vibes

	base := time.Now().Add(-time.Minute)
	require.NoError(t, repo.Record(ctx, &entity.Delivery{
		TransactionID: "tx-old", Message: msg, Size: 20, Status: entity.DeliveryAcked, CreatedAt: base,
	}))
	require.NoError(t, repo.Record(ctx, &entity.Delivery{
		TransactionID: "tx-new", Message: msg, Size: 20, Status: entity.DeliveryNacked,
		Reason: "device disconnected", CreatedAt: base.Add(time.Second),
	}))

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "tx-new", recent[0].TransactionID)
	assert.Equal(t, entity.DeliveryNacked, recent[0].Status)
	assert.Equal(t, "device disconnected", recent[0].Reason)
	c, ok := recent[1].Message.Color(entity.SlotDot)
	assert.True(t, ok)
	assert.Equal(t, entity.Color(255), c)

	limited, err := repo.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSchemaVersion(t *testing.T) {
	ctx, db := openTestDB(t)

	v, err := sqlite.SchemaVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}
