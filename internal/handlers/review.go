package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/logging"
	"github.com/techhub-shop/techhub/internal/service"
)

type ReviewHandler struct {
	Svc *service.ReviewService
}

func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review_create")

	var req struct {
		IDUser   uint `json:"id_user"`
		IDTovara uint `json:"id_tovara"`
		Otcenka  int  `json:"otcenka"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("review_create_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	review, err := h.Svc.Submit(ctx, req.IDUser, req.IDTovara, req.Otcenka)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("review_create_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		l.Error("review_create_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "review_list")

	id, err := strconv.ParseUint(c.Param("tovar_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	reviews, err := h.Svc.ListByProduct(ctx, uint(id))
	if err != nil {
		l.Error("review_list_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, reviews)
}
