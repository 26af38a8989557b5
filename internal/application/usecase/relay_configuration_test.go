package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/briwestervelt/formal/internal/application/port/mocks"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/logging"
)

const scenarioAPayload = `{"backgroundColor":"1E90FF","tickColor":"000000","hourColor":"FF0000","minuteColor":"00FF00","dotColor":"0000FF","dateColor":"FFFFFF","bluetoothVibes":true}`

func capturingContext(buf *bytes.Buffer) context.Context {
	logger := logging.New(logging.Config{Level: zerolog.InfoLevel, Format: "json", Output: buf})
	return logging.WithContext(context.Background(), logger)
}

func logLines(buf *bytes.Buffer) []string {
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func webviewClosed(payload string) entity.Event {
	return entity.Event{Name: entity.EventWebviewClosed, Response: entity.EncodeResponse(payload)}
}

func TestRegister_SubscribesToLifecycleEvents(t *testing.T) {
	host := portmocks.NewMockHostRuntime(t)
	host.EXPECT().On(entity.EventReady, mock.Anything).Return().Once()
	host.EXPECT().On(entity.EventShowConfiguration, mock.Anything).Return().Once()
	host.EXPECT().On(entity.EventWebviewClosed, mock.Anything).Return().Once()

	NewRelayConfigurationUseCase(host).Register()
}

func TestOnReady_LogsOnceWithoutOutboundRequests(t *testing.T) {
	var buf bytes.Buffer
	host := portmocks.NewMockHostRuntime(t)
	uc := NewRelayConfigurationUseCase(host)

	err := uc.OnReady(capturingContext(&buf), entity.Event{Name: entity.EventReady})

	require.NoError(t, err)
	assert.Len(t, logLines(&buf), 1)
	host.AssertNotCalled(t, "OpenURL", mock.Anything, mock.Anything)
	host.AssertNotCalled(t, "SendAppMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnShowConfiguration_OpensFixedURL(t *testing.T) {
	var buf bytes.Buffer
	host := portmocks.NewMockHostRuntime(t)
	host.EXPECT().OpenURL(mock.Anything, "http://briwestervelt.github.io/formal_config").Return().Once()
	uc := NewRelayConfigurationUseCase(host)

	err := uc.OnShowConfiguration(capturingContext(&buf), entity.Event{Name: entity.EventShowConfiguration})

	require.NoError(t, err)
	lines := logLines(&buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], entity.ConfigurationURL)
	host.AssertNotCalled(t, "SendAppMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnWebviewClosed_FullPayloadSendsConvertedMessage(t *testing.T) {
	host := portmocks.NewMockHostRuntime(t)
	var sent []entity.AppMessage
	host.EXPECT().SendAppMessage(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, msg entity.AppMessage, _ func(), _ func()) {
			sent = append(sent, msg)
		}).
		Return().Once()
	uc := NewRelayConfigurationUseCase(host)

	err := uc.OnWebviewClosed(context.Background(), webviewClosed(scenarioAPayload))

	require.NoError(t, err)
	require.Len(t, sent, 1)
	data, err := json.Marshal(sent[0])
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"backgroundColor":2003199,"tickColor":0,"hourColor":16711680,"minuteColor":65280,"dotColor":255,"dateColor":16777215,"bluetoothVibes":true}`,
		string(data))
}

func TestOnWebviewClosed_NoBackgroundColorSendsNothing(t *testing.T) {
	payloads := map[string]string{
		"absent":       `{"tickColor":"000000"}`,
		"empty string": `{"backgroundColor":"","tickColor":"000000"}`,
		"null":         `{"backgroundColor":null}`,
		"false":        `{"backgroundColor":false}`,
		"zero":         `{"backgroundColor":0}`,
		"empty object": `{}`,
	}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			host := portmocks.NewMockHostRuntime(t)
			uc := NewRelayConfigurationUseCase(host)

			err := uc.OnWebviewClosed(context.Background(), webviewClosed(payload))

			require.NoError(t, err)
			host.AssertNotCalled(t, "SendAppMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestOnWebviewClosed_OmitsMissingAndInvalidColors(t *testing.T) {
	host := portmocks.NewMockHostRuntime(t)
	var sent entity.AppMessage
	host.EXPECT().SendAppMessage(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, msg entity.AppMessage, _ func(), _ func()) { sent = msg }).
		Return().Once()
	uc := NewRelayConfigurationUseCase(host)

	err := uc.OnWebviewClosed(context.Background(), webviewClosed(`{"backgroundColor":"FF0000","hourColor":"nothex","dotColor":12}`))

	require.NoError(t, err)
	c, ok := sent.Color(entity.SlotBackground)
	assert.True(t, ok)
	assert.Equal(t, entity.Color(16711680), c)
	for _, slot := range []entity.ColorSlot{entity.SlotTick, entity.SlotHour, entity.SlotMinute, entity.SlotDot, entity.SlotDate} {
		_, ok := sent.Color(slot)
		assert.False(t, ok, slot.Field())
	}
	assert.Nil(t, sent.BluetoothVibes)
}

func TestOnWebviewClosed_ForwardsBluetoothVibesUnchanged(t *testing.T) {
	for _, vibes := range []bool{true, false} {
		host := portmocks.NewMockHostRuntime(t)
		var sent entity.AppMessage
		host.EXPECT().SendAppMessage(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(_ context.Context, msg entity.AppMessage, _ func(), _ func()) { sent = msg }).
			Return().Once()
		uc := NewRelayConfigurationUseCase(host)

		payload, err := json.Marshal(map[string]any{"backgroundColor": "000000", "bluetoothVibes": vibes})
		require.NoError(t, err)
		require.NoError(t, uc.OnWebviewClosed(context.Background(), webviewClosed(string(payload))))

		require.NotNil(t, sent.BluetoothVibes)
		assert.Equal(t, vibes, *sent.BluetoothVibes)
	}
}

func TestOnWebviewClosed_CallbacksLogOutcome(t *testing.T) {
	var buf bytes.Buffer
	ctx := capturingContext(&buf)
	host := portmocks.NewMockHostRuntime(t)
	var onSuccess, onFailure func()
	host.EXPECT().SendAppMessage(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(_ context.Context, _ entity.AppMessage, success func(), failure func()) {
			onSuccess, onFailure = success, failure
		}).
		Return().Once()
	uc := NewRelayConfigurationUseCase(host)

	require.NoError(t, uc.OnWebviewClosed(ctx, webviewClosed(scenarioAPayload)))
	require.NotNil(t, onSuccess)
	require.NotNil(t, onFailure)
	buf.Reset()

	onSuccess()
	lines := logLines(&buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "delivered")

	buf.Reset()
	onFailure()
	lines = logLines(&buf)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "failed")
}

func TestOnWebviewClosed_MalformedPayloadIsReturned(t *testing.T) {
	host := portmocks.NewMockHostRuntime(t)
	uc := NewRelayConfigurationUseCase(host)

	err := uc.OnWebviewClosed(context.Background(), entity.Event{Name: entity.EventWebviewClosed, Response: "%7Bnot json"})

	require.ErrorIs(t, err, entity.ErrMalformedPayload)
	host.AssertNotCalled(t, "SendAppMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnWebviewClosed_EmptyOrCancelledResponseIsMalformed(t *testing.T) {
	host := portmocks.NewMockHostRuntime(t)
	uc := NewRelayConfigurationUseCase(host)

	for _, response := range []string{"", "   ", "CANCELLED"} {
		err := uc.OnWebviewClosed(context.Background(), entity.Event{Name: entity.EventWebviewClosed, Response: response})
		require.ErrorIs(t, err, entity.ErrMalformedPayload, "response %q", response)
	}
	host.AssertNotCalled(t, "SendAppMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
