package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/kitchencloud/backend/internal/application/ordering"
	"github.com/kitchencloud/backend/internal/domain/shared"
	"github.com/kitchencloud/backend/internal/infrastructure/auth"
	"github.com/kitchencloud/backend/internal/interfaces/http/middleware"
)

// maxIdempotencyKeyLength bounds the Idempotency-Key header
const maxIdempotencyKeyLength = 128

// OrderPlacer places carts as orders
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req appordering.PlaceOrderRequest) (*appordering.OrderResponse, error)
}

// OrderLedger reads orders and applies post-placement mutations
type OrderLedger interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*appordering.OrderResponse, error)
	ListOrders(ctx context.Context, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error)
	ListAccountOrders(ctx context.Context, accountID uuid.UUID, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error)
	ListRestaurantOrders(ctx context.Context, restaurantID uuid.UUID, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error)
	ListCourierOrders(ctx context.Context, courierID uuid.UUID, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error)
	ListAvailableForDelivery(ctx context.Context, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error)
	AssignCourier(ctx context.Context, orderID, courierID uuid.UUID) (*appordering.OrderResponse, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*appordering.OrderResponse, error)
}

// OrderHandler handles order placement and the order ledger endpoints
type OrderHandler struct {
	BaseHandler
	placer OrderPlacer
	ledger OrderLedger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(placer OrderPlacer, ledger OrderLedger) *OrderHandler {
	return &OrderHandler{placer: placer, ledger: ledger}
}

// PlaceOrder godoc
//
//	@Summary		Place an order
//	@Description	Validates the cart, applies an optional coupon and points, and persists the order atomically.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			Idempotency-Key	header		string				false	"Replay protection key"
//	@Param			request			body		PlaceOrderRequest	true	"Cart"
//	@Success		201				{object}	dto.Response
//	@Failure		400,404,409,422	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	claims, userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}

	accountID := userID
	if req.AccountID != "" {
		requested := uuid.MustParse(req.AccountID)
		if requested != userID && !claims.HasRole(auth.RoleAdmin) {
			h.Forbidden(c, "cannot place an order for another account")
			return
		}
		accountID = requested
	} else if claims.HasRole(auth.RoleAdmin) {
		h.BadRequest(c, "account_id is required")
		return
	}

	key := strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLength {
		h.BadRequest(c, "Idempotency-Key is too long")
		return
	}

	order, err := h.placer.PlaceOrder(c.Request.Context(), req.toCommand(accountID, key))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, order)
}

// GetOrder godoc
//
//	@Summary	Get an order with its items
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	dto.Response
//	@Failure	404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	claims, userID, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.ledger.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	// Customers see only their own orders; the response matches a missing order.
	if claims.HasRole(auth.RoleCustomer) && order.AccountID != userID {
		h.HandleDomainError(c, shared.NewNotFoundError("order", id))
		return
	}
	h.Success(c, order)
}

// ListOrders lists every order for admins, optionally filtered by ?status=
func (h *OrderHandler) ListOrders(c *gin.Context) {
	h.list(c, h.ledger.ListOrders)
}

// ListAvailable lists ready orders without a courier
func (h *OrderHandler) ListAvailable(c *gin.Context) {
	h.list(c, h.ledger.ListAvailableForDelivery)
}

// ListDeliveries lists the orders assigned to the calling courier
func (h *OrderHandler) ListDeliveries(c *gin.Context) {
	_, userID, ok := h.caller(c)
	if !ok {
		return
	}
	h.list(c, func(ctx context.Context, f appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
		return h.ledger.ListCourierOrders(ctx, userID, f)
	})
}

// ListAccountOrders lists an account's orders; customers may only list their own
func (h *OrderHandler) ListAccountOrders(c *gin.Context) {
	claims, userID, ok := h.caller(c)
	if !ok {
		return
	}
	accountID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if !claims.HasRole(auth.RoleAdmin) && accountID != userID {
		h.Forbidden(c, "cannot list another account's orders")
		return
	}
	h.list(c, func(ctx context.Context, f appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
		return h.ledger.ListAccountOrders(ctx, accountID, f)
	})
}

// ListRestaurantOrders lists the orders a restaurant received
func (h *OrderHandler) ListRestaurantOrders(c *gin.Context) {
	restaurantID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	h.list(c, func(ctx context.Context, f appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error) {
		return h.ledger.ListRestaurantOrders(ctx, restaurantID, f)
	})
}

// AssignCourier godoc
//
//	@Summary	Take a ready order for delivery
//	@Tags		orders
//	@Produce	json
//	@Param		id	path		string	true	"Order ID"
//	@Success	200	{object}	dto.Response
//	@Failure	404,422	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/orders/{id}/assign [put]
func (h *OrderHandler) AssignCourier(c *gin.Context) {
	_, courierID, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	order, err := h.ledger.AssignCourier(c.Request.Context(), id, courierID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus moves an order forward in its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	order, err := h.ledger.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, order)
}

type listFunc func(ctx context.Context, filter appordering.OrderListFilter) ([]appordering.OrderResponse, int64, error)

func (h *OrderHandler) list(c *gin.Context, fn listFunc) {
	page, ok := h.page(c)
	if !ok {
		return
	}

	orders, total, err := fn(c.Request.Context(), appordering.OrderListFilter{
		Page:     page.Page,
		PageSize: page.PageSize,
		OrderBy:  page.OrderBy,
		OrderDir: page.OrderDir,
		Status:   page.Status,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, page.Page, page.PageSize)
}
