package http

import (
	"context"
	"log/slog"
	"net/http"

	"tokenorders/internal/core/application/usecases/commands"
	"tokenorders/internal/core/application/usecases/queries"
	"tokenorders/internal/core/domain/model/account"
	"tokenorders/internal/core/domain/model/kernel"
	"tokenorders/internal/core/domain/model/order"
	"tokenorders/internal/generated/servers"
	"tokenorders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type (
	OpenAccountHandler interface {
		Handle(ctx context.Context, cmd commands.OpenAccountCommand) (*account.Account, error)
	}
	GrantTokensHandler interface {
		Handle(ctx context.Context, cmd commands.GrantTokensCommand) (int64, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error)
	}
	TransitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	CompleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteOrderCommand) (commands.CompleteOrderResult, error)
	}
	GetAccountHandler interface {
		Handle(ctx context.Context, query queries.GetAccountQuery) (queries.GetAccountQueryResponse, error)
	}
	GetAccountBalanceHandler interface {
		Handle(ctx context.Context, query queries.GetAccountBalanceQuery) (int64, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	ListAccountOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListAccountOrdersQuery) ([]queries.OrderView, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
	}
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	OpenAccount     OpenAccountHandler
	GrantTokens     GrantTokensHandler
	CreateOrder     CreateOrderHandler
	TransitionOrder TransitionOrderHandler
	CompleteOrder   CompleteOrderHandler

	GetAccount        GetAccountHandler
	GetAccountBalance GetAccountBalanceHandler
	GetOrder          GetOrderHandler
	ListAccountOrders ListAccountOrdersHandler
	ListOrders        ListOrdersHandler
}

// Server implements servers.ServerInterface on top of the command and query handlers.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http_server"),
	}
}

// OpenAccount handles POST /api/v1/accounts. The ID is generated unless the
// caller supplies one.
func (s *Server) OpenAccount(ctx echo.Context) error {
	var body servers.NewAccount
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id := kernel.NewUUID()
	if body.Id != nil {
		var err error
		if id, err = toKernelUUID("id", *body.Id); err != nil {
			return s.fail(ctx, err)
		}
	}

	cmd, err := commands.NewOpenAccountCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	acc, err := s.handlers.OpenAccount.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	m := acc.Metrics()
	return ctx.JSON(http.StatusCreated, servers.Account{
		Id:                      acc.ID().Bytes(),
		Balance:                 acc.Balance(),
		LifetimeTokensEarned:    m.TokensEarned(),
		LifetimeOrdersCompleted: m.OrdersCompleted(),
		LifetimeAmountSpent:     money(m.AmountSpent()),
		CreatedAt:               acc.CreatedAt(),
	})
}

// GetAccount handles GET /api/v1/accounts/{accountId}.
func (s *Server) GetAccount(ctx echo.Context, accountID servers.AccountId) error {
	id, err := toKernelUUID("accountId", accountID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetAccountQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetAccount.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, accountResponse(view))
}

// GetAccountBalance handles GET /api/v1/accounts/{accountId}/balance.
func (s *Server) GetAccountBalance(ctx echo.Context, accountID servers.AccountId) error {
	id, err := toKernelUUID("accountId", accountID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetAccountBalanceQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	balance, err := s.handlers.GetAccountBalance.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Balance{AccountId: accountID, Balance: balance})
}

// GrantTokens handles POST /api/v1/accounts/{accountId}/grants.
func (s *Server) GrantTokens(ctx echo.Context, accountID servers.AccountId) error {
	var body servers.NewGrant
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := toKernelUUID("accountId", accountID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewGrantTokensCommand(id, body.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}

	balance, err := s.handlers.GrantTokens.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Balance{AccountId: accountID, Balance: balance})
}

// ListAccountOrders handles GET /api/v1/accounts/{accountId}/orders.
func (s *Server) ListAccountOrders(
	ctx echo.Context,
	accountID servers.AccountId,
	params servers.ListAccountOrdersParams,
) error {
	id, err := toKernelUUID("accountId", accountID)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, limit, offset := listFilter(params.Status, params.Limit, params.Offset)
	query, err := queries.NewListAccountOrdersQuery(id, status, limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}
	views, err := s.handlers.ListAccountOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderViewsResponse(views))
}

// ListOrders handles GET /api/v1/orders, the operator view across accounts.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	status, limit, offset := listFilter(params.Status, params.Limit, params.Offset)
	query, err := queries.NewListOrdersQuery(status, limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}
	views, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderViewsResponse(views))
}

// CreateOrder handles POST /api/v1/accounts/{accountId}/orders. A replayed
// idempotent request answers 200 instead of 201.
func (s *Server) CreateOrder(ctx echo.Context, accountID servers.AccountId, params servers.CreateOrderParams) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := toKernelUUID("accountId", accountID)
	if err != nil {
		return s.fail(ctx, err)
	}
	amount, err := parseMoney("amount", body.Amount)
	if err != nil {
		return s.fail(ctx, err)
	}
	items, err := lineItemInputs(body.Items)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		id,
		amount,
		items,
		body.TokensSpent,
		order.Details{
			DeliveryAddress:     deref(body.DeliveryAddress),
			Notes:               deref(body.Notes),
			SpecialInstructions: deref(body.SpecialInstructions),
		},
		deref(params.IdempotencyKey),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	return ctx.JSON(status, servers.CreatedOrder{
		Order:    orderResponse(res.Order),
		Balance:  res.Balance,
		Replayed: res.Replayed,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderViewResponse(view))
}

// TransitionOrder handles POST /api/v1/orders/{orderId}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.NewTransition
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewTransitionOrderCommand(id, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.handlers.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderResponse(o))
}

// CompleteOrder handles POST /api/v1/orders/{orderId}/complete.
func (s *Server) CompleteOrder(ctx echo.Context, orderID servers.OrderId) error {
	var body servers.NewCompletion
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	id, err := toKernelUUID("orderId", orderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewCompleteOrderCommand(id, body.TokensToAward)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.handlers.CompleteOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.CompletedOrder{Order: orderResponse(res.Order), Balance: res.Balance})
}

func (s *Server) fail(ctx echo.Context, err error) error {
	if statusFor(err) >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"route", ctx.Path(),
			"retryable", errs.IsRetryable(err),
			"error", err,
		)
	}
	return problem(ctx, err)
}

func toKernelUUID(paramName string, id openapi_types.UUID) (kernel.UUID, error) {
	u, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return u, nil
}

func parseMoney(paramName, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return d, nil
}
