package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northquant/site-backend/internal/http/response"
	"github.com/northquant/site-backend/internal/platform/logger"
	"github.com/northquant/site-backend/internal/services"
)

type AuthHandler struct {
	log  *logger.Logger
	auth services.AuthService
}

func NewAuthHandler(log *logger.Logger, auth services.AuthService) *AuthHandler {
	return &AuthHandler{log: log.With("handler", "AuthHandler"), auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			response.RespondError(c, http.StatusBadRequest, vErr.Msg)
			return
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.RespondError(c, http.StatusUnauthorized, err.Error())
			return
		}
		h.log.Error("login failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	response.RespondOK(c, gin.H{
		"token":      token,
		"expires_in": int(h.auth.AccessTTL().Seconds()),
	})
}
