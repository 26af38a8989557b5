// Package host emulates the phone-side runtime that runs the companion
// script: an event bus, an outbound AppMessage queue and URL opening.
package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/briwestervelt/formal/internal/application/port"
	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/domain/repository"
	"github.com/briwestervelt/formal/internal/infrastructure/appmessage"
	"github.com/briwestervelt/formal/internal/infrastructure/metrics"
	"github.com/briwestervelt/formal/internal/logging"
)

const (
	DefaultEventQueueSize    = 64
	DefaultOutboundQueueSize = 16
	DefaultDeliveryTimeout   = 5 * time.Second
)

// Config sizes the bus queues.
type Config struct {
	EventQueueSize    int
	OutboundQueueSize int
	DeliveryTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.EventQueueSize <= 0 {
		c.EventQueueSize = DefaultEventQueueSize
	}
	if c.OutboundQueueSize <= 0 {
		c.OutboundQueueSize = DefaultOutboundQueueSize
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = DefaultDeliveryTimeout
	}
	return c
}

// ErrorHandler receives errors returned by event handlers.
type ErrorHandler func(ctx context.Context, evt entity.Event, err error)

// Option configures optional Bus collaborators.
type Option func(*Bus)

// WithDeliveryRepository records every delivery attempt in repo.
func WithDeliveryRepository(repo repository.DeliveryRepository) Option {
	return func(b *Bus) { b.deliveries = repo }
}

// WithMetrics counts events and deliveries in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Bus) { b.metrics = m }
}

// WithErrorHandler replaces the default error handler, which logs at error
// level.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Bus) {
		if h != nil {
			b.onError = h
		}
	}
}

// task is one unit of work on the dispatch loop: an event or a callback.
type task struct {
	ctx      context.Context
	event    entity.Event
	callback func()
}

type jobKind int

const (
	jobSend jobKind = iota
	jobOpen
)

type job struct {
	kind      jobKind
	ctx       context.Context
	msg       entity.AppMessage
	url       string
	onSuccess func()
	onFailure func()
}

// Bus is an in-process port.HostRuntime. Events and completion callbacks
// run one at a time on a single dispatch goroutine; deliveries and URL
// opens run on a separate outbound worker.
type Bus struct {
	cfg        Config
	transport  port.AppMessageTransport
	opener     port.URLOpener
	deliveries repository.DeliveryRepository
	metrics    *metrics.Metrics
	onError    ErrorHandler

	handlersMu sync.RWMutex
	handlers   map[entity.EventName][]port.EventHandler

	events  chan task
	outbox  chan job
	pending inflight

	closeMu   sync.RWMutex
	closed    bool
	quit      chan struct{}
	closeOnce sync.Once
}

var _ port.HostRuntime = (*Bus)(nil)

// NewBus creates a bus that delivers through transport and opens URLs with
// opener.
func NewBus(cfg Config, transport port.AppMessageTransport, opener port.URLOpener, opts ...Option) *Bus {
	cfg = cfg.withDefaults()
	b := &Bus{
		cfg:       cfg,
		transport: transport,
		opener:    opener,
		onError:   logHandlerError,
		handlers:  make(map[entity.EventName][]port.EventHandler),
		events:    make(chan task, cfg.EventQueueSize),
		outbox:    make(chan job, cfg.OutboundQueueSize),
		quit:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func logHandlerError(ctx context.Context, evt entity.Event, err error) {
	logging.FromContext(ctx).Error().
		Err(err).
		Str("event", string(evt.Name)).
		Msg("event handler failed")
}

// On registers handler for the named event. Handlers for the same event run
// in registration order.
func (b *Bus) On(name entity.EventName, handler port.EventHandler) {
	if handler == nil {
		return
	}
	b.handlersMu.Lock()
	defer b.handlersMu.Unlock()
	b.handlers[name] = append(b.handlers[name], handler)
}

// Run processes events until ctx ends or Shutdown completes.
func (b *Bus) Run(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "host")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.dispatchLoop(gctx) })
	g.Go(func() error { return b.outboundLoop(gctx) })
	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Emit queues evt for dispatch. It blocks while the event queue is full,
// until ctx is done. The queued event keeps the values of ctx but not its
// cancellation.
func (b *Bus) Emit(ctx context.Context, evt entity.Event) error {
	b.closeMu.RLock()
	if b.closed {
		b.closeMu.RUnlock()
		return entity.ErrBusClosed
	}
	b.pending.add()
	b.closeMu.RUnlock()

	select {
	case b.events <- task{ctx: context.WithoutCancel(ctx), event: evt}:
		return nil
	case <-ctx.Done():
		b.pending.done()
		return ctx.Err()
	case <-b.quit:
		b.pending.done()
		return entity.ErrBusClosed
	}
}

// Drain blocks until every queued event, delivery and callback has run.
func (b *Bus) Drain(ctx context.Context) error {
	return b.pending.wait(ctx)
}

// Pending reports the amount of queued or running work.
func (b *Bus) Pending() int {
	return b.pending.count()
}

// Shutdown rejects new events, waits for in-flight work and stops Run.
func (b *Bus) Shutdown(ctx context.Context) error {
	b.closeMu.Lock()
	b.closed = true
	b.closeMu.Unlock()

	err := b.pending.wait(ctx)
	b.closeOnce.Do(func() { close(b.quit) })
	return err
}

// OpenURL queues url for the opener.
func (b *Bus) OpenURL(ctx context.Context, url string) {
	b.pending.add()
	select {
	case b.outbox <- job{kind: jobOpen, ctx: ctx, url: url}:
	default:
		b.pending.done()
		b.metrics.URLOpen("dropped")
		logging.FromContext(ctx).Warn().Err(entity.ErrOutboxFull).Str("url", url).Msg("open url dropped")
	}
}

// SendAppMessage queues msg for delivery. When the outbox is full the
// failure callback is scheduled right away.
func (b *Bus) SendAppMessage(ctx context.Context, msg entity.AppMessage, onSuccess, onFailure func()) {
	b.pending.add()
	select {
	case b.outbox <- job{kind: jobSend, ctx: ctx, msg: msg, onSuccess: onSuccess, onFailure: onFailure}:
	default:
		logging.FromContext(ctx).Warn().Err(entity.ErrOutboxFull).Msg("app message rejected")
		b.metrics.Delivery(string(entity.DeliveryNacked), 0)
		b.schedule(ctx, onFailure)
		b.pending.done()
	}
}

// schedule queues fn as its own dispatch-loop task. It never blocks the
// caller, which may be the dispatch loop itself.
func (b *Bus) schedule(ctx context.Context, fn func()) {
	if fn == nil {
		return
	}
	b.pending.add()
	t := task{ctx: ctx, callback: fn}
	select {
	case b.events <- t:
		return
	default:
	}
	go func() {
		select {
		case b.events <- t:
		case <-b.quit:
			b.pending.done()
		}
	}()
}

func (b *Bus) dispatchLoop(ctx context.Context) error {
	for {
		select {
		case t := <-b.events:
			b.dispatch(ctx, t)
			b.pending.done()
		case <-b.quit:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Bus) dispatch(runCtx context.Context, t task) {
	ctx := t.ctx
	if ctx == nil || ctx.Err() != nil {
		ctx = runCtx
	}

	if t.callback != nil {
		b.safely(ctx, entity.Event{}, func() error {
			t.callback()
			return nil
		})
		return
	}

	name := string(t.event.Name)
	ctx = logging.WithEvent(ctx, name)
	b.metrics.Event(name)

	b.handlersMu.RLock()
	handlers := append([]port.EventHandler(nil), b.handlers[t.event.Name]...)
	b.handlersMu.RUnlock()

	if len(handlers) == 0 {
		logging.FromContext(ctx).Debug().Msg("no handler registered")
		return
	}
	for _, h := range handlers {
		b.safely(ctx, t.event, func() error { return h(ctx, t.event) })
	}
}

// safely runs fn, turning errors and panics into error handler calls.
func (b *Bus) safely(ctx context.Context, evt entity.Event, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			b.metrics.HandlerError(string(evt.Name))
			b.onError(ctx, evt, fmt.Errorf("handler panic: %v", r))
		}
	}()
	if err := fn(); err != nil {
		b.metrics.HandlerError(string(evt.Name))
		b.onError(ctx, evt, err)
	}
}

func (b *Bus) outboundLoop(ctx context.Context) error {
	for {
		select {
		case j := <-b.outbox:
			b.process(ctx, j)
			b.pending.done()
		case <-b.quit:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Bus) process(runCtx context.Context, j job) {
	ctx := j.ctx
	if ctx == nil || ctx.Err() != nil {
		ctx = runCtx
	}
	switch j.kind {
	case jobOpen:
		b.open(ctx, j.url)
	case jobSend:
		b.send(ctx, j)
	}
}

func (b *Bus) open(ctx context.Context, url string) {
	log := logging.FromContext(ctx)
	if b.opener == nil {
		log.Warn().Str("url", url).Msg("no url opener configured")
		b.metrics.URLOpen("failed")
		return
	}
	if err := b.opener.Open(ctx, url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("open url failed")
		b.metrics.URLOpen("failed")
		return
	}
	b.metrics.URLOpen("ok")
}

func (b *Bus) send(ctx context.Context, j job) {
	txID := uuid.NewString()
	ctx = logging.WithTransaction(ctx, txID)
	log := logging.FromContext(ctx)

	delivery := &entity.Delivery{
		TransactionID: txID,
		Message:       j.msg,
		CreatedAt:     time.Now(),
	}

	err := b.deliver(ctx, txID, j.msg, delivery)
	if err != nil {
		delivery.Status = entity.DeliveryNacked
		delivery.Reason = err.Error()
		log.Debug().Err(err).Msg("app message nacked")
	} else {
		delivery.Status = entity.DeliveryAcked
		log.Debug().Int("bytes", delivery.Size).Msg("app message acked")
	}
	b.metrics.Delivery(string(delivery.Status), delivery.Size)

	if b.deliveries != nil {
		if recErr := b.deliveries.Record(ctx, delivery); recErr != nil {
			log.Warn().Err(recErr).Msg("failed to record delivery")
		}
	}

	if err != nil {
		b.schedule(ctx, j.onFailure)
		return
	}
	b.schedule(ctx, j.onSuccess)
}

func (b *Bus) deliver(ctx context.Context, txID string, msg entity.AppMessage, d *entity.Delivery) error {
	payload, err := appmessage.EncodeMessage(msg)
	if err != nil {
		return err
	}
	d.Size = len(payload)
	if b.transport == nil {
		return entity.ErrDeviceDisconnected
	}

	dctx, cancel := context.WithTimeout(ctx, b.cfg.DeliveryTimeout)
	defer cancel()
	return b.transport.Deliver(dctx, txID, payload)
}
