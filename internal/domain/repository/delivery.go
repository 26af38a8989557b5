package repository

import (
	"context"

	"github.com/briwestervelt/formal/internal/domain/entity"
)

// DeliveryRepository keeps a log of outbound AppMessage attempts.
type DeliveryRepository interface {
	// Record stores the outcome of one delivery.
	Record(ctx context.Context, delivery *entity.Delivery) error

	// Recent returns up to limit deliveries, newest first.
	Recent(ctx context.Context, limit int) ([]*entity.Delivery, error)
}
