package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/domain/repository"
	"github.com/briwestervelt/formal/internal/logging"
)

type deliveryRepo struct {
	db *sql.DB
}

// NewDeliveryRepository creates a new SQLite-backed delivery log.
func NewDeliveryRepository(db *sql.DB) repository.DeliveryRepository {
	return &deliveryRepo{db: db}
}

func (r *deliveryRepo) Record(ctx context.Context, d *entity.Delivery) error {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("transaction_id", d.TransactionID).
		Str("status", string(d.Status)).
		Msg("recording delivery")

	msg, err := json.Marshal(d.Message)
	if err != nil {
		return fmt.Errorf("encode delivery message: %w", err)
	}
	createdAt := d.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO deliveries (transaction_id, message, size, status, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.TransactionID, string(msg), d.Size, string(d.Status), d.Reason, createdAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

func (r *deliveryRepo) Recent(ctx context.Context, limit int) ([]*entity.Delivery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT transaction_id, message, size, status, reason, created_at
		FROM deliveries
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var out []*entity.Delivery
	for rows.Next() {
		var (
			d         entity.Delivery
			msg       string
			status    string
			createdAt int64
		)
		if err := rows.Scan(&d.TransactionID, &msg, &d.Size, &status, &d.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		if err := json.Unmarshal([]byte(msg), &d.Message); err != nil {
			return nil, fmt.Errorf("decode delivery %s: %w", d.TransactionID, err)
		}
		d.Status = entity.DeliveryStatus(status)
		d.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, &d)
	}
	return out, rows.Err()
}
