package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/domain/repository"
	"github.com/briwestervelt/formal/internal/logging"
)

type settingsRepo struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SQLite-backed settings repository.
// Each message key is one row, mirroring the watch's per-key storage.
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Load(ctx context.Context) (*entity.WatchfaceSettings, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT message_key, value, updated_at FROM watchface_settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	settings := entity.DefaultWatchfaceSettings()
	stored := make(entity.SettingsUpdate)
	var newest int64
	for rows.Next() {
		var key, updatedAt int64
		var value int32
		if err := rows.Scan(&key, &value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		stored[entity.MessageKey(key)] = value
		if updatedAt > newest {
			newest = updatedAt
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	settings.Apply(stored)
	settings.UpdatedAt = time.Time{}
	if newest > 0 {
		settings.UpdatedAt = time.UnixMilli(newest)
	}
	return settings, nil
}

func (r *settingsRepo) Save(ctx context.Context, settings *entity.WatchfaceSettings) error {
	log := logging.FromContext(ctx)

	updatedAt := settings.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin settings tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO watchface_settings (message_key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(message_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare settings upsert: %w", err)
	}
	defer stmt.Close()

	for key, value := range settings.Values() {
		if _, err := stmt.ExecContext(ctx, int64(key), value, updatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("save key %d: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit settings: %w", err)
	}

	log.Debug().Msg("watchface settings saved")
	return nil
}
