package usecase

import (
	"context"
	"fmt"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/domain/repository"
)

const defaultDeliveryLimit = 50

// ListDeliveriesUseCase reads the delivery log.
type ListDeliveriesUseCase struct {
	deliveryRepo repository.DeliveryRepository
}

// NewListDeliveriesUseCase creates a new delivery log reader.
func NewListDeliveriesUseCase(deliveryRepo repository.DeliveryRepository) *ListDeliveriesUseCase {
	return &ListDeliveriesUseCase{deliveryRepo: deliveryRepo}
}

// Execute returns the most recent deliveries, newest first.
// A non-positive limit uses the default.
func (uc *ListDeliveriesUseCase) Execute(ctx context.Context, limit int) ([]*entity.Delivery, error) {
	if limit <= 0 {
		limit = defaultDeliveryLimit
	}
	deliveries, err := uc.deliveryRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return deliveries, nil
}
