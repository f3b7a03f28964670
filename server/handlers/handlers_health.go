package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *Api) HandleHealth() echo.HandlerFunc {
	type output struct {
		Ok bool `json:"ok"`
	}
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, output{Ok: true})
	}
}
