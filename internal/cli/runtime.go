package cli

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/briwestervelt/formal/internal/application/port"
	"github.com/briwestervelt/formal/internal/application/usecase"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/config"
	"github.com/briwestervelt/formal/internal/infrastructure/device"
	"github.com/briwestervelt/formal/internal/infrastructure/host"
	"github.com/briwestervelt/formal/internal/infrastructure/httpapi"
	"github.com/briwestervelt/formal/internal/infrastructure/metrics"
	"github.com/briwestervelt/formal/internal/infrastructure/opener"
	"github.com/briwestervelt/formal/internal/logging"
)

// Runtime wires the companion relay to the emulated phone host and watch.
type Runtime struct {
	Bus      *host.Bus
	Inbox    *device.Inbox
	Relay    *usecase.RelayConfigurationUseCase
	Opener   port.URLOpener
	Registry *prometheus.Registry
}

// NewRuntime builds a runtime from the app configuration. The relay is
// registered on the bus; the bus is not started.
func (a *App) NewRuntime() *Runtime {
	cfg := a.Config

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	m := metrics.MustNewMetrics(registry)

	inbox := device.NewInbox(a.ApplySettingsUC, cfg.Device.InboxSize)
	inbox.SetConnected(cfg.Device.Connected)
	inbox.OnApplied(settingsAppliedHook(a.ctx, m))

	urlOpener := a.newOpener(cfg)
	bus := host.NewBus(host.Config{
		EventQueueSize:    cfg.Host.EventQueueSize,
		OutboundQueueSize: cfg.Host.OutboundQueueSize,
		DeliveryTimeout:   cfg.Host.DeliveryTimeout(),
	}, inbox, urlOpener,
		host.WithDeliveryRepository(a.Deliveries),
		host.WithMetrics(m),
	)

	relay := usecase.NewRelayConfigurationUseCase(bus)
	relay.Register()

	return &Runtime{
		Bus:      bus,
		Inbox:    inbox,
		Relay:    relay,
		Opener:   urlOpener,
		Registry: registry,
	}
}

// settingsAppliedHook counts and logs every settings update the watch applies.
func settingsAppliedHook(ctx context.Context, m *metrics.Metrics) func(*entity.WatchfaceSettings) {
	log := logging.FromContext(ctx)
	return func(s *entity.WatchfaceSettings) {
		m.SettingsApplied()
		log.Debug().
			Int("colors", len(s.Colors)).
			Bool("bluetooth_vibes", s.BluetoothVibes).
			Msg("settings applied on device")
	}
}

func (a *App) newOpener(cfg *config.Config) port.URLOpener {
	if cfg.Host.OpenBrowser {
		b := opener.NewBrowser()
		if b.Available() {
			return b
		}
		logging.FromContext(a.ctx).Warn().Msg("no url launcher found, configuration page will only be logged")
	}
	return opener.NewLogOnly()
}

// Handler returns the HTTP API for the runtime.
func (a *App) Handler(ctx context.Context, rt *Runtime) http.Handler {
	deps := httpapi.Deps{
		Emitter:    rt.Bus,
		Settings:   a.ApplySettingsUC,
		Deliveries: a.ListDeliveriesUC,
	}
	if a.Config.Metrics.Enabled {
		deps.Gatherer = rt.Registry
		deps.MetricsPath = a.Config.Metrics.Path
	}
	return httpapi.NewRouter(ctx, deps)
}

// ApplyDeviceConfig updates the emulated watch after a config reload.
func (rt *Runtime) ApplyDeviceConfig(ctx context.Context, cfg *config.Config) {
	rt.Inbox.SetConnected(cfg.Device.Connected)
	rt.Inbox.SetSize(cfg.Device.InboxSize)
	logging.FromContext(ctx).Info().
		Bool("connected", cfg.Device.Connected).
		Int("inbox_size", cfg.Device.InboxSize).
		Msg("device configuration reloaded")
}

// Lifecycle emits the three host events in the order a real session
// produces them, with response as the webviewclosed payload.
func (rt *Runtime) Lifecycle(ctx context.Context, response string) error {
	events := []entity.Event{
		{Name: entity.EventReady},
		{Name: entity.EventShowConfiguration},
		{Name: entity.EventWebviewClosed, Response: response},
	}
	for _, evt := range events {
		if err := rt.Bus.Emit(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}
