package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HandleListCountries serves the country picker list, built once at
// startup and already sorted for the form's locale.
func (a *Api) HandleListCountries() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, a.countries)
	}
}
