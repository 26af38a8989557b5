// Package cli provides CLI commands using Bubble Tea TUI.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/briwestervelt/formal/internal/application/usecase"
	"github.com/briwestervelt/formal/internal/cli/styles"
	"github.com/briwestervelt/formal/internal/domain/build"
	"github.com/briwestervelt/formal/internal/domain/repository"
	"github.com/briwestervelt/formal/internal/infrastructure/config"
	"github.com/briwestervelt/formal/internal/infrastructure/persistence/sqlite"
	"github.com/briwestervelt/formal/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	db         *sql.DB
	Settings   repository.SettingsRepository
	Deliveries repository.DeliveryRepository

	// Use cases
	ApplySettingsUC  *usecase.ApplySettingsUseCase
	ListDeliveriesUC *usecase.ListDeliveriesUseCase
	ConfigSchemaUC   *usecase.GetConfigSchemaUseCase

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	mgr, cfg := loadConfig()
	theme := styles.NewTheme(cfg)

	logger, logCleanup, logErr := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(cfg.Logging.Level), Format: cfg.Logging.Format, TimeFormat: "15:04:05"},
		logging.FileConfig{
			Enabled:       cfg.Logging.EnableFileLog,
			Dir:           cfg.Logging.LogDir,
			MaxSizeMB:     cfg.Logging.MaxSizeMB,
			MaxBackups:    cfg.Logging.MaxBackups,
			MaxAgeDays:    cfg.Logging.MaxAgeDays,
			Compress:      cfg.Logging.Compress,
			WriteToStderr: true,
		},
	)
	if logErr != nil {
		logger.Warn().Err(logErr).Msg("file logging disabled")
	}
	ctx := logging.WithContext(context.Background(), logger)

	dbFile := cfg.Database.Path
	if dbFile == "" {
		var err error
		if dbFile, err = config.GetDatabaseFile(); err != nil {
			logCleanup()
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
	}
	db, err := sqlite.NewConnection(ctx, dbFile)
	if err != nil {
		logCleanup()
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug().Str("db_path", dbFile).Msg("database connected")

	settingsRepo := sqlite.NewSettingsRepository(db)
	deliveryRepo := sqlite.NewDeliveryRepository(db)

	return &App{
		Config:           cfg,
		ConfigManager:    mgr,
		Theme:            theme,
		db:               db,
		Settings:         settingsRepo,
		Deliveries:       deliveryRepo,
		ApplySettingsUC:  usecase.NewApplySettingsUseCase(settingsRepo),
		ListDeliveriesUC: usecase.NewListDeliveriesUseCase(deliveryRepo),
		ConfigSchemaUC:   usecase.NewGetConfigSchemaUseCase(config.NewSchemaProvider()),
		ctx:              ctx,
		logCleanup:       logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	if a.db != nil {
		return sqlite.Close(a.db)
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations, falling back to
// the defaults when the file cannot be used.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using default configuration\n", err)
		return nil, config.DefaultConfig()
	}
	if err := mgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; using default configuration\n", err)
		return nil, config.DefaultConfig()
	}
	return mgr, mgr.Get()
}
