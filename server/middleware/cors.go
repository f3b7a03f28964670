package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Cors restricts the public form endpoints to the operator-supplied
// origin allow-list ("*" allows everyone).
func Cors(allowOrigins []string) echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodHead, http.MethodGet, http.MethodPost},
	})
}
