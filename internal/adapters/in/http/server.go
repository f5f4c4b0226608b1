package http

import (
	"errors"
	"net/http"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/application/usecases/queries"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/generated/servers"
	"waterdelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Actor identity headers. Authentication happens upstream (gateway or
// reverse proxy); these headers carry the already-authenticated identity.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderFirmID    = "X-Firm-Id"
	HeaderClientID  = "X-Client-Id"
	HeaderDriverID  = "X-Driver-Id"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler   commands.CreateOrderCommandHandler
	assignDriverHandler  commands.AssignDriverCommandHandler
	advanceStageHandler  commands.AdvanceStageCommandHandler
	cancelOrderHandler   commands.CancelOrderCommandHandler
	returnToQueueHandler commands.ReturnToQueueCommandHandler

	// Query handlers
	getOrderStatusHandler queries.GetOrderStatusQueryHandler
	getOrderDriverHandler queries.GetOrderDriverQueryHandler
	listOrdersHandler     queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignDriverHandler commands.AssignDriverCommandHandler,
	advanceStageHandler commands.AdvanceStageCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	returnToQueueHandler commands.ReturnToQueueCommandHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getOrderDriverHandler queries.GetOrderDriverQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		assignDriverHandler:   assignDriverHandler,
		advanceStageHandler:   advanceStageHandler,
		cancelOrderHandler:    cancelOrderHandler,
		returnToQueueHandler:  returnToQueueHandler,
		getOrderStatusHandler: getOrderStatusHandler,
		getOrderDriverHandler: getOrderDriverHandler,
		listOrdersHandler:     listOrdersHandler,
	}
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder servers.NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	firmID, err := kernel.UUIDFromBytes(newOrder.FirmId[:])
	if err != nil {
		return badRequest(ctx, "Invalid firm id: "+err.Error())
	}
	clientID, err := kernel.UUIDFromBytes(newOrder.ClientId[:])
	if err != nil {
		return badRequest(ctx, "Invalid client id: "+err.Error())
	}
	geo, err := kernel.NewGeoPoint(newOrder.Latitude, newOrder.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	items := make([]order.Item, 0, len(newOrder.Items))
	for _, it := range newOrder.Items {
		productID, pErr := kernel.UUIDFromBytes(it.ProductId[:])
		if pErr != nil {
			return badRequest(ctx, "Invalid product id: "+pErr.Error())
		}
		unitPrice, pErr := decimal.NewFromString(it.UnitPrice)
		if pErr != nil {
			return badRequest(ctx, "Invalid unit price: "+pErr.Error())
		}
		item, pErr := order.NewItem(productID, it.Name, it.Quantity, unitPrice)
		if pErr != nil {
			return errorResponse(ctx, pErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		firmID,
		clientID,
		newOrder.ClientName,
		newOrder.Address,
		geo,
		items,
		newOrder.EstimatedDeliveryAt,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := toOrderResponse(created)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, response)
}

// ListOrders handles GET /api/v1/orders - the operator's order board.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	firmID, err := kernel.UUIDFromBytes(params.FirmId[:])
	if err != nil {
		return badRequest(ctx, "Invalid firm id: "+err.Error())
	}

	status := order.Unknown
	if params.Stage != nil {
		status, err = order.StatusForStage(order.Stage(*params.Stage))
		if err != nil {
			return errorResponse(ctx, err)
		}
	}

	query, err := queries.NewListOrdersQuery(firmID, status)
	if err != nil {
		return errorResponse(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]servers.Order, len(rows))
	for i, row := range rows {
		response[i] = servers.Order{
			Id:                  row.ID.Bytes(),
			FirmId:              firmID.Bytes(),
			ClientId:            row.ClientID.Bytes(),
			OrderNumber:         row.OrderNumber,
			ClientName:          row.ClientName,
			Address:             row.Address,
			Total:               row.Total.String(),
			Stage:               servers.Stage(row.Stage),
			Driver:              toDriverResponse(row.Driver),
			CreatedAt:           row.CreatedAt,
			EstimatedDeliveryAt: row.EstimatedDeliveryAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderStatus handles GET /api/v1/orders/{orderId}/status - the tracking
// screen's poll target.
func (s *Server) GetOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderStatus{
		OrderId:             status.OrderID.Bytes(),
		Stage:               servers.Stage(status.Stage),
		EstimatedDeliveryAt: status.EstimatedDeliveryAt,
	})
}

// GetOrderDriver handles GET /api/v1/orders/{orderId}/driver.
func (s *Server) GetOrderDriver(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderDriverQuery(orderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	driver, err := s.getOrderDriverHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderDriver{
		OrderId: driver.OrderID.Bytes(),
		Driver:  toDriverResponse(driver.Driver),
	})
}

// AssignDriver handles POST /api/v1/orders/{orderId}/assign - the dispatcher
// attaching or swapping a driver.
func (s *Server) AssignDriver(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req servers.AssignDriverRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromBytes(req.DriverId[:])
	if err != nil {
		return badRequest(ctx, "Invalid driver id: "+err.Error())
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, actor, driverID, req.DriverName)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.assignDriverHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := toOrderResponse(updated)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AdvanceOrder handles POST /api/v1/orders/{orderId}/advance - forward
// lifecycle movement (driver starts the run, delivery confirmed).
func (s *Server) AdvanceOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req servers.AdvanceRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	next, err := order.StatusForStage(order.Stage(req.Stage))
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAdvanceStageCommand(orderID, actor, next)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.advanceStageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := toOrderResponse(updated)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var req servers.CancelRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, actor, req.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := toOrderResponse(updated)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReturnOrderToQueue handles POST /api/v1/orders/{orderId}/return-to-queue -
// the dispatcher pulling an order back from its driver.
func (s *Server) ReturnOrderToQueue(ctx echo.Context, orderId openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewReturnToQueueCommand(orderID, actor)
	if err != nil {
		return errorResponse(ctx, err)
	}

	updated, err := s.returnToQueueHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response, err := toOrderResponse(updated)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, response)
}

// actorFromRequest builds the acting party from the identity headers. The
// id header is role-dependent: operators act on behalf of their firm,
// customers and drivers on behalf of themselves.
func actorFromRequest(ctx echo.Context) (commands.Actor, error) {
	role := commands.Role(ctx.Request().Header.Get(HeaderActorRole))

	var idHeader string
	switch role {
	case commands.RoleOperator:
		idHeader = HeaderFirmID
	case commands.RoleCustomer:
		idHeader = HeaderClientID
	case commands.RoleDriver:
		idHeader = HeaderDriverID
	default:
		return commands.Actor{}, errs.NewValueIsInvalidError(HeaderActorRole + " header")
	}

	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(idHeader))
	if err != nil {
		return commands.Actor{}, errs.NewValueIsInvalidErrorWithCause(idHeader+" header", err)
	}

	return commands.NewActor(role, id)
}

// errorResponse maps the application error taxonomy onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrUnauthorized):
		return ctx.JSON(http.StatusForbidden, servers.Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// toOrderResponse projects the aggregate into its wire representation.
func toOrderResponse(o *order.Order) (servers.Order, error) {
	stage, err := order.StageForStatus(o.Status())
	if err != nil {
		return servers.Order{}, err
	}

	response := servers.Order{
		Id:                  o.ID().Bytes(),
		FirmId:              o.FirmID().Bytes(),
		ClientId:            o.ClientID().Bytes(),
		OrderNumber:         o.OrderNumber(),
		ClientName:          o.ClientName(),
		Address:             o.Address(),
		Total:               o.Total().String(),
		Stage:               servers.Stage(stage),
		CreatedAt:           o.CreatedAt(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
	}

	if driver := o.Driver(); driver != nil {
		response.Driver = &servers.Driver{
			Id:   driver.ID().Bytes(),
			Name: driver.Name(),
		}
	}
	if reason := o.CancelReason(); reason != "" {
		response.CancelReason = &reason
	}

	return response, nil
}

func toDriverResponse(driver *queries.DriverSummary) *servers.Driver {
	if driver == nil {
		return nil
	}
	return &servers.Driver{
		Id:   driver.ID.Bytes(),
		Name: driver.Name,
	}
}
