// Package device emulates the watch side of the AppMessage link.
package device

import (
	"context"
	"fmt"
	"sync"

	"github.com/briwestervelt/formal/internal/application/usecase"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/infrastructure/appmessage"
	"github.com/briwestervelt/formal/internal/logging"
)

// DefaultInboxSize matches the inbox the watchface opens at startup.
const DefaultInboxSize = 128

// Inbox receives encoded AppMessages and applies them to the stored
// watchface settings. It implements port.AppMessageTransport.
type Inbox struct {
	applyUC *usecase.ApplySettingsUseCase

	mu        sync.RWMutex
	connected bool
	size      int
	listeners []func(*entity.WatchfaceSettings)
}

// NewInbox creates a connected inbox of the given size.
func NewInbox(applyUC *usecase.ApplySettingsUseCase, size int) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{applyUC: applyUC, connected: true, size: size}
}

// SetConnected toggles the simulated Bluetooth link.
func (in *Inbox) SetConnected(connected bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.connected = connected
}

// Connected reports the simulated link state.
func (in *Inbox) Connected() bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.connected
}

// SetSize changes the inbox capacity in bytes.
func (in *Inbox) SetSize(size int) {
	if size <= 0 {
		size = DefaultInboxSize
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	in.size = size
}

// OnApplied registers fn to run after every successfully applied message.
func (in *Inbox) OnApplied(fn func(*entity.WatchfaceSettings)) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.listeners = append(in.listeners, fn)
}

// Deliver decodes payload and applies it. A nil return acknowledges the
// message.
func (in *Inbox) Deliver(ctx context.Context, transactionID string, payload []byte) error {
	ctx = logging.WithTransaction(ctx, transactionID)
	log := logging.FromContext(ctx)

	in.mu.RLock()
	connected, size := in.connected, in.size
	listeners := append([]func(*entity.WatchfaceSettings){}, in.listeners...)
	in.mu.RUnlock()

	if !connected {
		return entity.ErrDeviceDisconnected
	}
	if len(payload) > size {
		return fmt.Errorf("%w: %d > %d bytes", entity.ErrInboxOverflow, len(payload), size)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tuples, err := appmessage.Decode(payload)
	if err != nil {
		return err
	}
	update, err := appmessage.ToSettingsUpdate(tuples)
	if err != nil {
		return err
	}

	out, err := in.applyUC.Execute(ctx, update)
	if err != nil {
		return err
	}
	log.Info().
		Int("bytes", len(payload)).
		Int("changed", len(out.Changed)).
		Msg("inbox message applied")

	for _, fn := range listeners {
		fn(out.Settings)
	}
	return nil
}
