package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/electro_shop/internal/logging"
	authmw "github.com/Skotchmaster/electro_shop/internal/middleware/auth"
	"github.com/Skotchmaster/electro_shop/internal/service"
	"github.com/Skotchmaster/electro_shop/internal/transport"
)

type CartHandler struct {
	Svc *service.CartService
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "get_cart", err)
	}
	cart, err := h.Svc.Get(ctx, userID)
	if err != nil {
		return fail(l, "get_cart", err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "add_to_cart", err)
	}
	var req transport.CartItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart", "invalid body", err)
	}

	item, err := h.Svc.Add(ctx, userID, req)
	if err != nil {
		return fail(l, "add_to_cart", err)
	}
	l.Info("add_to_cart_success", "user_id", userID, "product_id", item.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHandler) DeleteOneFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "delete.one.cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "delete_from_cart", err)
	}
	productID, err := parseID(c, "productId")
	if err != nil {
		return badRequest(l, "delete_from_cart", "invalid product id", err)
	}

	deleted, item, err := h.Svc.RemoveOne(ctx, userID, productID)
	if err != nil {
		return fail(l, "delete_from_cart", err)
	}
	if deleted {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "clear.cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "clear_cart", err)
	}
	if err := h.Svc.Clear(ctx, userID); err != nil {
		return fail(l, "clear_cart", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.cart")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "checkout", err)
	}
	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "checkout", "invalid body", err)
	}

	order, err := h.Svc.Checkout(ctx, userID, req)
	if err != nil {
		return fail(l, "checkout", err)
	}
	l.Info("checkout_success", "user_id", userID, "order_id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

type WishlistHandler struct {
	Svc *service.SocialService
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get.wishlist")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "get_wishlist", err)
	}
	items, err := h.Svc.Wishlist(ctx, userID)
	if err != nil {
		return fail(l, "get_wishlist", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *WishlistHandler) Toggle(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "toggle.wishlist")

	userID, err := authmw.UserID(c)
	if err != nil {
		return fail(l, "toggle_wishlist", err)
	}
	var req transport.WishlistRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "toggle_wishlist", "invalid body", err)
	}

	added, err := h.Svc.ToggleWishlist(ctx, userID, req.ProductID)
	if err != nil {
		return fail(l, "toggle_wishlist", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"product_id": req.ProductID, "wishlisted": added})
}
