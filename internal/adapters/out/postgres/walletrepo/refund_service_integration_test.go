package walletrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/walletrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type WalletRefundServiceIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	service   *walletrepo.GormWalletRefundService
}

func (suite *WalletRefundServiceIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&walletrepo.WalletDTO{}))
}

func (suite *WalletRefundServiceIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE wallets").Error)
	suite.service = walletrepo.NewGormWalletRefundService(suite.db)
}

func (suite *WalletRefundServiceIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *WalletRefundServiceIntegrationTestSuite) TestRefund_CreatesWalletOnFirstRefund() {
	customerID := kernel.NewUUID()

	err := suite.service.Refund(context.Background(), suite.refundFor(customerID, 1500))
	suite.Require().NoError(err)

	suite.Equal(int64(1500), suite.balanceOf(customerID))
}

func (suite *WalletRefundServiceIntegrationTestSuite) TestRefund_AccumulatesBalance() {
	customerID := kernel.NewUUID()
	ctx := context.Background()

	suite.Require().NoError(suite.service.Refund(ctx, suite.refundFor(customerID, 1500)))
	suite.Require().NoError(suite.service.Refund(ctx, suite.refundFor(customerID, 499)))

	suite.Equal(int64(1999), suite.balanceOf(customerID))
}

func (suite *WalletRefundServiceIntegrationTestSuite) TestRefund_KeepsCustomersSeparate() {
	ctx := context.Background()
	first := kernel.NewUUID()
	second := kernel.NewUUID()

	suite.Require().NoError(suite.service.Refund(ctx, suite.refundFor(first, 1000)))
	suite.Require().NoError(suite.service.Refund(ctx, suite.refundFor(second, 250)))

	suite.Equal(int64(1000), suite.balanceOf(first))
	suite.Equal(int64(250), suite.balanceOf(second))
}

func (suite *WalletRefundServiceIntegrationTestSuite) refundFor(
	customerID kernel.UUID, amountCents int64,
) ports.PendingRefund {
	return ports.PendingRefund{
		ID:          kernel.NewUUID(),
		OrderID:     kernel.NewUUID(),
		ItemID:      kernel.NewUUID(),
		CustomerID:  customerID,
		AmountCents: amountCents,
		Reason:      "accepted return",
		EnqueuedAt:  time.Now().UTC(),
	}
}

func (suite *WalletRefundServiceIntegrationTestSuite) balanceOf(customerID kernel.UUID) int64 {
	var wallet walletrepo.WalletDTO
	err := suite.db.First(&wallet, "customer_id = ?", customerID.Bytes()).Error
	suite.Require().NoError(err)
	return wallet.BalanceCents
}

func TestWalletRefundServiceIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(WalletRefundServiceIntegrationTestSuite))
}
