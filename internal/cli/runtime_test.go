package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/briwestervelt/formal/internal/application/usecase"
	"github.com/briwestervelt/formal/internal/domain/entity"
	repomocks "github.com/briwestervelt/formal/internal/domain/repository/mocks"
	"github.com/briwestervelt/formal/internal/infrastructure/appmessage"
	"github.com/briwestervelt/formal/internal/infrastructure/device"
	"github.com/briwestervelt/formal/internal/infrastructure/metrics"
)

const appliedMetric = "formal_device_settings_applied_total"

func appliedCount(n string) string {
	return `
# HELP formal_device_settings_applied_total Settings applied by the device inbox.
# TYPE formal_device_settings_applied_total counter
formal_device_settings_applied_total ` + n + "\n"
}

func TestSettingsAppliedHook_CountsAppliedDeliveries(t *testing.T) {
	ctx := context.Background()
	repo := repomocks.NewMockSettingsRepository(t)
	repo.EXPECT().Load(mock.Anything).Return(entity.DefaultWatchfaceSettings(), nil).Once()
	repo.EXPECT().Save(mock.Anything, mock.Anything).Return(nil).Once()

	reg := prometheus.NewRegistry()
	inbox := device.NewInbox(usecase.NewApplySettingsUseCase(repo), device.DefaultInboxSize)
	inbox.OnApplied(settingsAppliedHook(ctx, metrics.MustNewMetrics(reg)))

	msg := entity.NewAppMessage()
	msg.SetColor(entity.SlotTick, 0x0000FF)
	data, err := appmessage.EncodeMessage(msg)
	require.NoError(t, err)
	require.NoError(t, inbox.Deliver(ctx, "tx-1", data))

	// A rejected delivery never reaches the hook.
	inbox.SetConnected(false)
	require.Error(t, inbox.Deliver(ctx, "tx-2", data))

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(appliedCount("1")), appliedMetric))
}

func TestSettingsAppliedHook_NilMetrics(t *testing.T) {
	hook := settingsAppliedHook(context.Background(), nil)
	require.NotPanics(t, func() { hook(entity.DefaultWatchfaceSettings()) })
}
