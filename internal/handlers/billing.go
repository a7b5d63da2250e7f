package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/transport"
	"github.com/Skotchmaster/electro_shop/internal/util"
)

type BillingHandler struct {
	Svc *service.BillingService
}

func (h *BillingHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.checkout")

	var req transport.BillRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "billing_checkout", "invalid body", err)
	}
	order, err := h.Svc.Checkout(ctx, req)
	if err != nil {
		return fail(l, "billing_checkout", err)
	}

	l.Info("billing_checkout_success", "order_id", order.ID, "total", order.TotalAmount)
	return c.JSON(http.StatusCreated, order)
}

func (h *BillingHandler) History(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.history")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, orders, err := h.Svc.History(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return fail(l, "billing_history", err)
	}
	return c.JSON(http.StatusOK, util.Page[models.Order]{Data: orders, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *BillingHandler) UnbilledRepairs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.repairs")

	jobs, err := h.Svc.UnbilledRepairs(ctx)
	if err != nil {
		return fail(l, "billing_repairs", err)
	}
	return c.JSON(http.StatusOK, jobs)
}

type DashboardHandler struct {
	Svc *service.DashboardService
}

func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard")

	stats, err := h.Svc.Stats(ctx)
	if err != nil {
		return fail(l, "dashboard", err)
	}
	return c.JSON(http.StatusOK, stats)
}
