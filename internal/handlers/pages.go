package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techhub-shop/techhub/internal/logging"
	"github.com/techhub-shop/techhub/internal/repo"
	"github.com/techhub-shop/techhub/internal/util"
)

type PageHandler struct {
	Repo *repo.GormRepo
}

var pageTitles = map[string]string{
	"about":       "О нас",
	"contacts":    "Контакты",
	"vacancies":   "Вакансии",
	"news":        "Новости",
	"delivery":    "Доставка и оплата",
	"warranty":    "Гарантия",
	"returns":     "Возврат товара",
	"faq":         "FAQ",
	"bonus":       "Бонусная программа",
	"credit":      "Кредит",
	"installment": "Рассрочка",
	"discounts":   "Скидки",
}

const defaultPageTitle = "Страница в разработке"

func (h *PageHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "home")

	from, limit := util.Calculate(1, 100)
	products, _, err := h.Repo.ListProducts(ctx, from, limit)
	if err != nil {
		l.Error("home_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.Render(http.StatusOK, "home.html", echo.Map{"Products": products})
}

// Page -- catch-all информационных страниц: известный slug даёт свой
// заголовок, любой другой -- заглушку.
func (h *PageHandler) Page(c echo.Context) error {
	title, ok := pageTitles[c.Param("page_name")]
	if !ok {
		title = defaultPageTitle
	}
	return c.Render(http.StatusOK, "under_construction.html", echo.Map{"Title": title})
}
