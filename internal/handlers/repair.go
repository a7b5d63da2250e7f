package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type RepairHandler struct {
	Svc *service.RepairService
}

func (h *RepairHandler) ListRepairs(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "list.repairs")

	f := repo.RepairFilter{
		Query:  c.QueryParam("q"),
		Status: models.RepairStatus(c.QueryParam("status")),
	}
	if v := c.QueryParam("unbilled"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(l, "list_repairs", "unbilled must be a boolean", err)
		}
		f.Unbilled = b
	}

	jobs, err := h.Svc.List(ctx, f)
	if err != nil {
		return fail(l, "list_repairs", err)
	}
	return c.JSON(http.StatusOK, jobs)
}

func (h *RepairHandler) GetRepair(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.repair")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_repair", "invalid repair id", err)
	}
	job, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_repair", err)
	}
	return c.JSON(http.StatusOK, job)
}

func (h *RepairHandler) CreateRepair(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.repair")

	var req transport.CreateRepairRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_repair", "invalid body", err)
	}
	job, err := h.Svc.Add(ctx, req)
	if err != nil {
		return fail(l, "create_repair", err)
	}

	l.Info("create_repair_success", "repair_id", job.ID)
	return c.JSON(http.StatusCreated, job)
}

func (h *RepairHandler) PatchRepair(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.repair")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "patch_repair", "invalid repair id", err)
	}
	var req transport.PatchRepairRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_repair", "invalid body", err)
	}

	job, err := h.Svc.Update(ctx, id, req)
	if err != nil {
		return fail(l, "patch_repair", err)
	}
	l.Info("patch_repair_success", "repair_id", id, "status", job.Status)
	return c.JSON(http.StatusOK, job)
}

func (h *RepairHandler) DeleteRepair(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.repair")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "delete_repair", "invalid repair id", err)
	}
	if err := h.Svc.Delete(ctx, id); err != nil {
		return fail(l, "delete_repair", err)
	}

	l.Info("delete_repair_success", "repair_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *RepairHandler) MarkBilled(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "bill.repair")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "mark_billed", "invalid repair id", err)
	}
	job, err := h.Svc.MarkBilled(ctx, id)
	if err != nil {
		return fail(l, "mark_billed", err)
	}
	return c.JSON(http.StatusOK, job)
}
