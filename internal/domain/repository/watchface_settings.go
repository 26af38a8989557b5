package repository

import (
	"context"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// SettingsRepository persists the watchface settings held by the device.
type SettingsRepository interface {
	// Load returns the stored settings, with defaults for keys never written.
	Load(ctx context.Context) (*entity.WatchfaceSettings, error)

	// Save writes every key of the given settings.
	Save(ctx context.Context, settings *entity.WatchfaceSettings) error
}
