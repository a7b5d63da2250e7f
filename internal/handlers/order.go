package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	authmw "github.com/Skotchmaster/electro_shop/internal/middleware/auth"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/transport"
	"github.com/Skotchmaster/electro_shop/internal/util"
)

type OrderHandler struct {
	Svc   *service.OrderService
	Users *service.AuthService
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.order")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "create_order", err)
	}
	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_order", "invalid body", err)
	}
	user, err := h.Users.Me(ctx, userID)
	if err != nil {
		return fail(l, "create_order", err)
	}

	order, err := h.Svc.PlaceOrder(ctx, service.PlaceOrderInput{
		Source:       models.SourceCheckout,
		UserID:       &userID,
		CustomerName: user.Name,
		Items:        req.Items,
		Payment:      req.Payment,
		Shipping:     req.ShippingAddress,
	})
	if err != nil {
		return fail(l, "create_order", err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.my.orders")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "get_my_orders", err)
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListForUser(ctx, userID, offset, limit)
	if err != nil {
		return fail(l, "get_my_orders", err)
	}
	return c.JSON(http.StatusOK, util.Page[models.Order]{Data: orders, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.order")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "get_order", err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_order", "invalid order id", err)
	}

	order, err := h.Svc.Get(ctx, id, userID, authmw.IsAdmin(c))
	if err != nil {
		return fail(l, "get_order", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cancel.order")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "cancel_order", err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "cancel_order", "invalid order id", err)
	}

	order, err := h.Svc.Cancel(ctx, id, userID)
	if err != nil {
		return fail(l, "cancel_order", err)
	}
	l.Info("cancel_order_success", "order_id", id)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.orders")

	f := repo.OrderFilter{
		Status: models.OrderStatus(c.QueryParam("status")),
		Source: models.OrderSource(c.QueryParam("source")),
		Query:  c.QueryParam("q"),
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.ListAll(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "list_orders", err)
	}
	return c.JSON(http.StatusOK, util.Page[models.Order]{Data: orders, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.order.status")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "update_order_status", "invalid order id", err)
	}
	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_order_status", "invalid body", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_order_status", err)
	}
	l.Info("update_order_status_success", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, order)
}
