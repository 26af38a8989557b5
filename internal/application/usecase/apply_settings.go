package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/domain/repository"
	"github.com/briwestervelt/formal/internal/logging"
)

// ApplySettingsUseCase is the watch-side inbox handler: it merges received
// keys into the stored settings.
type ApplySettingsUseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewApplySettingsUseCase creates a new settings use case.
func NewApplySettingsUseCase(settingsRepo repository.SettingsRepository) *ApplySettingsUseCase {
	return &ApplySettingsUseCase{settingsRepo: settingsRepo}
}

// ApplySettingsOutput contains the settings after the update.
type ApplySettingsOutput struct {
	Settings *entity.WatchfaceSettings
	Changed  []entity.MessageKey
}

// Execute applies update. Keys absent from update keep their stored value.
func (uc *ApplySettingsUseCase) Execute(ctx context.Context, update entity.SettingsUpdate) (*ApplySettingsOutput, error) {
	log := logging.FromContext(ctx)

	settings, err := uc.settingsRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	changed := settings.Apply(update)
	sort.Slice(changed, func(i, j int) bool { return changed[i] < changed[j] })

	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	log.Debug().
		Int("received", len(update)).
		Int("changed", len(changed)).
		Msg("watchface settings applied")

	return &ApplySettingsOutput{Settings: settings, Changed: changed}, nil
}

// Current returns the stored settings.
func (uc *ApplySettingsUseCase) Current(ctx context.Context) (*entity.WatchfaceSettings, error) {
	return uc.settingsRepo.Load(ctx)
}
