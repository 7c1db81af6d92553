package cmd

import (
	"log/slog"

	"tokenorders/internal/adapters/in/http"
	"tokenorders/internal/adapters/out/postgres"
	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/application/usecases/queries"
	"tokenorders/internal/jobs"
	"tokenorders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		configs: configs,
		gormDB:  gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, postgres.Timeouts{
			Lock:      configs.LockTimeout,
			Statement: configs.StatementTimeout,
		}),
		metrics: metrics.New(),
		logger:  logger,
	}
}

func (c *CompositionRoot) handlerOptions() []commands.Option {
	return []commands.Option{
		commands.WithTimeout(c.configs.TxTimeout),
		commands.WithObserver(c.metrics),
	}
}

func (c *CompositionRoot) CreateOpenAccountCommandHandler() commands.OpenAccountCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenAccountCommandHandler(f, c.handlerOptions()...)
}

func (c *CompositionRoot) CreateGrantTokensCommandHandler() commands.GrantTokensCommandHandler {
	var f commands.AccountUoWFactory = FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGrantTokensCommandHandler(f, c.handlerOptions()...)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.handlerOptions()...)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.handlerOptions()...)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.handlerOptions()...)
}

func (c *CompositionRoot) CreateGetAccountQueryHandler() queries.GetAccountQueryHandler {
	return queries.NewGetAccountQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAccountBalanceQueryHandler() queries.GetAccountBalanceQueryHandler {
	return queries.NewGetAccountBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListAccountOrdersQueryHandler() queries.ListAccountOrdersQueryHandler {
	return queries.NewListAccountOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnreconciledOrdersQueryHandler() queries.GetUnreconciledOrdersQueryHandler {
	return queries.NewGetUnreconciledOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the echo router.
func (c *CompositionRoot) CreateHTTPServer() (*echo.Echo, error) {
	server := http.NewServer(http.Handlers{
		OpenAccount:       c.CreateOpenAccountCommandHandler(),
		GrantTokens:       c.CreateGrantTokensCommandHandler(),
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		TransitionOrder:   c.CreateTransitionOrderCommandHandler(),
		CompleteOrder:     c.CreateCompleteOrderCommandHandler(),
		GetAccount:        c.CreateGetAccountQueryHandler(),
		GetAccountBalance: c.CreateGetAccountBalanceQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		ListAccountOrders: c.CreateListAccountOrdersQueryHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
	}, c.logger)
	return http.NewRouter(server, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewReconciliationJob(
			c.CreateGetUnreconciledOrdersQueryHandler(),
			c.metrics,
			c.configs.ReconciliationSchedule,
			c.configs.ReconciliationTimeout,
			c.logger,
		),
	)
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
