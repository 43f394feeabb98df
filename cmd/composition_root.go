package cmd

import (
	"log/slog"

	"orderflow/internal/adapters/out/audit"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/refundoutbox"
	"orderflow/internal/adapters/out/postgres/walletrepo"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateItemStatusCommandHandler() commands.UpdateItemStatusCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateItemStatusCommandHandler(
		f,
		audit.NewSlogSink(c.logger),
		order.RefundPolicy{RefundOnCancel: c.configs.RefundOnCancel},
	)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.configs.PageSize)
}

func (c *CompositionRoot) CreatePendingReturnsCountQueryHandler() queries.PendingReturnsCountQueryHandler {
	return queries.NewPendingReturnsCountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRefundOutbox() ports.RefundOutbox {
	return refundoutbox.NewGormRefundOutbox(c.gormDB)
}

func (c *CompositionRoot) CreateRefundService() ports.RefundService {
	return walletrepo.NewGormWalletRefundService(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRefundOutbox(),
		c.CreateRefundService(),
		c.configs.RefundBatchSize,
		c.configs.RefundMaxAttempts,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
