package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/logging"
	"github.com/techhub-shop/techhub/internal/service"
	"github.com/techhub-shop/techhub/internal/session"
)

type CartHandler struct {
	Svc *service.CartService
}

func formProductID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.FormValue("product_id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("product_id must be a positive integer")
	}
	return uint(id), nil
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_add")

	productID, err := formProductID(c)
	if err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Add(ctx, session.TokenFromContext(c), productID); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_remove")

	productID, err := formProductID(c)
	if err != nil {
		l.Warn("remove_from_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.Svc.Remove(ctx, session.TokenFromContext(c), productID); err != nil {
		if errors.Is(err, service.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("remove_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.Redirect(http.StatusSeeOther, "/cart")
}

func (h *CartHandler) Cart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart_view")

	lines, err := h.Svc.View(ctx, session.TokenFromContext(c))
	if err != nil {
		l.Error("cart_view_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.Render(http.StatusOK, "cart.html", echo.Map{"Lines": lines})
}
