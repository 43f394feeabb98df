// Package walletrepo implements the refund collaborator against the customer
// wallet table: accepted returns and (where configured) cancellations credit
// the paid amount back to the customer's wallet balance.
package walletrepo

import (
	"context"
	"time"

	"orderflow/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletDTO is the database row for one customer wallet.
type WalletDTO struct {
	CustomerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	BalanceCents int64
	UpdatedAt    time.Time
}

// TableName overrides GORM's default naming to use "wallets".
func (WalletDTO) TableName() string {
	return "wallets"
}

// GormWalletRefundService implements ports.RefundService by crediting the
// customer wallet. The upsert creates the wallet on first refund.
type GormWalletRefundService struct {
	db *gorm.DB
}

// NewGormWalletRefundService creates a wallet-backed refund service.
func NewGormWalletRefundService(db *gorm.DB) *GormWalletRefundService {
	return &GormWalletRefundService{db: db}
}

// Refund credits the refund amount to the customer's wallet balance.
func (s *GormWalletRefundService) Refund(ctx context.Context, refund ports.PendingRefund) error {
	now := time.Now().UTC()
	dto := WalletDTO{
		CustomerID:   refund.CustomerID.Bytes(),
		BalanceCents: refund.AmountCents,
		UpdatedAt:    now,
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"balance_cents": gorm.Expr("wallets.balance_cents + ?", refund.AmountCents),
			"updated_at":    now,
		}),
	}).Create(&dto).Error
}
