package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithEvent creates a child logger with an event field
func WithEvent(ctx context.Context, event string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("event", event).Logger()
	return WithContext(ctx, childLogger)
}

// WithTransaction creates a child logger with a transaction_id field
func WithTransaction(ctx context.Context, transactionID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("transaction_id", transactionID).Logger()
	return WithContext(ctx, childLogger)
}
