// Package refundoutbox persists the queue of refunds owed to customers.
// Rows are enqueued inside the transaction that commits the triggering
// status change, then drained asynchronously by the refund retry job.
package refundoutbox

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PendingRefundDTO is the database row for one queued refund.
// CompletedAt is nil while the refund is still pending.
type PendingRefundDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	ItemID      uuid.UUID `gorm:"type:uuid"`
	CustomerID  uuid.UUID `gorm:"type:uuid"`
	AmountCents int64
	Reason      string
	Attempts    int
	EnqueuedAt  time.Time
	CompletedAt *time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "pending_refunds".
func (PendingRefundDTO) TableName() string {
	return "pending_refunds"
}

// GormRefundOutbox implements ports.RefundOutbox using GORM.
type GormRefundOutbox struct {
	db *gorm.DB
}

// NewGormRefundOutbox creates a new GORM refund outbox.
func NewGormRefundOutbox(db *gorm.DB) *GormRefundOutbox {
	return &GormRefundOutbox{db: db}
}

// Enqueue records a refund as due.
func (r *GormRefundOutbox) Enqueue(ctx context.Context, refund ports.PendingRefund) error {
	dto := PendingRefundDTO{
		ID:          refund.ID.Bytes(),
		OrderID:     refund.OrderID.Bytes(),
		ItemID:      refund.ItemID.Bytes(),
		CustomerID:  refund.CustomerID.Bytes(),
		AmountCents: refund.AmountCents,
		Reason:      refund.Reason,
		Attempts:    refund.Attempts,
		EnqueuedAt:  refund.EnqueuedAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending returns up to limit uncompleted refunds, oldest first.
func (r *GormRefundOutbox) GetPending(ctx context.Context, limit int) ([]ports.PendingRefund, error) {
	var dtos []PendingRefundDTO
	err := r.db.WithContext(ctx).
		Where("completed_at IS NULL").
		Order("enqueued_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	refunds := make([]ports.PendingRefund, 0, len(dtos))
	for _, dto := range dtos {
		refund, convErr := toPort(dto)
		if convErr != nil {
			return nil, convErr
		}
		refunds = append(refunds, refund)
	}
	return refunds, nil
}

// MarkCompleted stamps the refund as delivered.
func (r *GormRefundOutbox) MarkCompleted(ctx context.Context, id kernel.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&PendingRefundDTO{}).
		Where("id = ?", id.Bytes()).
		Update("completed_at", &now).Error
}

// MarkFailed increments the attempt counter for a later retry.
func (r *GormRefundOutbox) MarkFailed(ctx context.Context, id kernel.UUID) error {
	return r.db.WithContext(ctx).Model(&PendingRefundDTO{}).
		Where("id = ?", id.Bytes()).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

func toPort(dto PendingRefundDTO) (ports.PendingRefund, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.PendingRefund{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return ports.PendingRefund{}, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return ports.PendingRefund{}, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return ports.PendingRefund{}, err
	}

	return ports.PendingRefund{
		ID:          id,
		OrderID:     orderID,
		ItemID:      itemID,
		CustomerID:  customerID,
		AmountCents: dto.AmountCents,
		Reason:      dto.Reason,
		Attempts:    dto.Attempts,
		EnqueuedAt:  dto.EnqueuedAt,
	}, nil
}
