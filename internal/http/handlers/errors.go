package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northquant/site-backend/internal/http/response"
	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/services"
)

// respondServiceError maps service failures onto the error envelope:
// validation -> 400, missing row -> 404, store failures -> 400 with the
// store's message and detail passed through, anything else -> generic 500.
func respondServiceError(c *gin.Context, log *logger.Logger, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		response.RespondError(c, http.StatusBadRequest, vErr.Msg)
		return
	}
	if errors.Is(err, services.ErrItemNotFound) {
		response.RespondError(c, http.StatusNotFound, services.ErrItemNotFound.Error())
		return
	}
	var sErr *services.StoreError
	if errors.As(err, &sErr) {
		response.RespondErrorDetails(c, http.StatusBadRequest, sErr.Error(), sErr.Details)
		return
	}
	if log != nil {
		log.Error("unhandled service error", "error", err)
	}
	response.RespondError(c, http.StatusInternalServerError, "Internal server error")
}
