package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	authmw "github.com/Skotchmaster/electro_shop/internal/middleware/auth"
	"github.com/Skotchmaster/electro_shop/internal/models"
	"github.com/Skotchmaster/electro_shop/internal/repo"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/transport"
	"github.com/Skotchmaster/electro_shop/internal/util"
)

type ProductHandler struct {
	Svc    *service.CatalogService
	Social *service.SocialService
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.products")

	f := repo.ProductFilter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}
	if v := c.QueryParam("out_of_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(l, "get_products", "out_of_stock must be a boolean", err)
		}
		f.OutOfStock = b
	}
	if v := c.QueryParam("max_stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(l, "get_products", "max_stock must be an integer", err)
		}
		f.MaxStock = &n
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "get_products", err)
	}
	return c.JSON(http.StatusOK, util.Page[models.Product]{Data: items, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_product", "invalid product id", err)
	}
	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return fail(l, "get_product", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.products")

	q := c.QueryParam("q")
	if q == "" {
		l.Warn("search_error", "status", http.StatusBadRequest, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return fail(l, "search", err)
	}
	return c.JSON(http.StatusOK, util.Page[models.Product]{Data: items, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *ProductHandler) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.categories")

	cats, err := h.Svc.Categories(ctx)
	if err != nil {
		return fail(l, "get_categories", err)
	}
	return c.JSON(http.StatusOK, cats)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_product", "invalid body", err)
	}
	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return fail(l, "create_product", err)
	}

	l.Info("create_product_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "patch.product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "patch_product", "invalid product id", err)
	}
	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "patch_product", "invalid body", err)
	}
	p, err := h.Svc.PatchProduct(ctx, id, req)
	if err != nil {
		return fail(l, "patch_product", err)
	}

	l.Info("patch_product_success", "product_id", p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.product")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "delete_product", "invalid product id", err)
	}
	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return fail(l, "delete_product", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) TotalStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "total.stock")

	n, err := h.Svc.TotalStock(ctx)
	if err != nil {
		return fail(l, "total_stock", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total_stock": n})
}

func (h *ProductHandler) Reindex(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "reindex.products")

	n, err := h.Svc.Reindex(ctx)
	if err != nil {
		return fail(l, "reindex", err)
	}
	l.Info("reindex_success", "indexed", n)
	return c.JSON(http.StatusOK, echo.Map{"indexed": n})
}

func (h *ProductHandler) GetReviews(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.reviews")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_reviews", "invalid product id", err)
	}
	reviews, err := h.Social.Reviews(ctx, id)
	if err != nil {
		return fail(l, "get_reviews", err)
	}
	return c.JSON(http.StatusOK, reviews)
}

func (h *ProductHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.review")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "add_review", err)
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "add_review", "invalid product id", err)
	}
	var req transport.ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_review", "invalid body", err)
	}

	review, p, err := h.Social.AddReview(ctx, id, userID, req)
	if err != nil {
		return fail(l, "add_review", err)
	}
	l.Info("add_review_success", "product_id", id)
	return c.JSON(http.StatusCreated, echo.Map{"review": review, "rating": p.Rating, "num_reviews": p.NumReviews})
}
