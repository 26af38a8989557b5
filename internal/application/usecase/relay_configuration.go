package usecase

import (
	"context"
	"fmt"

	"github.com/briwestervelt/formal/internal/application/port"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/logging"
)

// RelayConfigurationUseCase is the phone-side companion of the watchface.
// It opens the configuration page and forwards the chosen settings to the
// watch.
type RelayConfigurationUseCase struct {
	host port.HostRuntime
}

// NewRelayConfigurationUseCase creates the relay bound to a host runtime.
func NewRelayConfigurationUseCase(host port.HostRuntime) *RelayConfigurationUseCase {
	return &RelayConfigurationUseCase{host: host}
}

// Register subscribes the relay to the three lifecycle events.
func (uc *RelayConfigurationUseCase) Register() {
	uc.host.On(entity.EventReady, uc.OnReady)
	uc.host.On(entity.EventShowConfiguration, uc.OnShowConfiguration)
	uc.host.On(entity.EventWebviewClosed, uc.OnWebviewClosed)
}

// OnReady logs that the companion script is running.
func (uc *RelayConfigurationUseCase) OnReady(ctx context.Context, _ entity.Event) error {
	logging.FromContext(ctx).Info().Msg("companion script ready")
	return nil
}

// OnShowConfiguration opens the configuration page.
func (uc *RelayConfigurationUseCase) OnShowConfiguration(ctx context.Context, _ entity.Event) error {
	logging.FromContext(ctx).Info().
		Str("url", entity.ConfigurationURL).
		Msg("opening configuration page")

	uc.host.OpenURL(ctx, entity.ConfigurationURL)
	return nil
}

// OnWebviewClosed decodes the page response and, when it carries a
// background color, sends the new settings to the watch.
func (uc *RelayConfigurationUseCase) OnWebviewClosed(ctx context.Context, evt entity.Event) error {
	log := logging.FromContext(ctx)

	payload, err := DecodeConfigurationPayload(evt.Response)
	if err != nil {
		return fmt.Errorf("webviewclosed: %w", err)
	}
	log.Debug().RawJSON("config", []byte(payload.Raw)).Msg("configuration returned")

	if !payload.BackgroundSet {
		log.Debug().Msg("no background color in configuration, nothing sent")
		return nil
	}

	msg := BuildAppMessage(ctx, payload)
	uc.host.SendAppMessage(ctx, msg,
		func() {
			logging.FromContext(ctx).Info().Int("fields", msg.Len()).Msg("configuration delivered to watch")
		},
		func() {
			logging.FromContext(ctx).Warn().Int("fields", msg.Len()).Msg("configuration delivery failed")
		},
	)
	return nil
}

// BuildAppMessage converts the page payload to the outbound message.
// Colors that are absent or not valid hex are left out so the watch keeps
// its stored value; bluetoothVibes is copied as is.
func BuildAppMessage(ctx context.Context, payload *entity.ConfigurationPayload) entity.AppMessage {
	log := logging.FromContext(ctx)
	msg := entity.NewAppMessage()

	for _, slot := range entity.ColorSlots() {
		raw, ok := payload.ColorValue(slot)
		if !ok {
			continue
		}
		c, err := entity.ParseHexColor(raw)
		if err != nil {
			log.Warn().Err(err).Str("field", slot.Field()).Msg("skipping color")
			continue
		}
		msg.SetColor(slot, c)
	}
	if payload.BluetoothVibes != nil {
		v := *payload.BluetoothVibes
		msg.BluetoothVibes = &v
	}
	return msg
}
