package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"SkyVault/internal/errs"
	"SkyVault/utils"
)

// statusOf maps the error taxonomy to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidPassphrase):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrExpired):
		return http.StatusGone
	case errors.Is(err, errs.ErrStorage):
		return http.StatusBadGateway
	case errors.Is(err, errs.ErrMetadata):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	utils.Fail(c, statusOf(err), err)
}
