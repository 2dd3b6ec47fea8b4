package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope every endpoint emits on failure. Details is
// only present when the store supplied extra diagnostics.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Error: msg})
}

func RespondErrorDetails(c *gin.Context, status int, msg, details string) {
	c.JSON(status, ErrorBody{Error: msg, Details: details})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
