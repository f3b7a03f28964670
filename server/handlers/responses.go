package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CentipedeRTK/ticket-management-zammad/server/common"
)

type errorDetail struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Ok     bool        `json:"ok"`
	Detail errorDetail `json:"detail"`
}

type messageResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}

func statusOf(err error, fallback int) int {
	var serr *common.StatusError
	if errors.As(err, &serr) && serr.Status != 0 {
		return serr.Status
	}
	return fallback
}

// jsonDetailError is the submission error shape: the downstream message
// is passed through as-is so operators can debug from the response.
func jsonDetailError(c echo.Context, err error) error {
	return c.JSON(statusOf(err, http.StatusInternalServerError), detailResponse{
		Detail: errorDetail{Message: err.Error()},
	})
}

// jsonMessageError is the flat error shape of the check endpoint.
func jsonMessageError(c echo.Context, err error) error {
	return c.JSON(statusOf(err, http.StatusUnprocessableEntity), messageResponse{
		Message: err.Error(),
	})
}
