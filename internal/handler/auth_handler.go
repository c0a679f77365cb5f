package handler

import (
	"net/http"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves signup and signin.
type AuthHandler struct {
	authService service.AuthService
	errorResponder
}

func NewAuthHandler(authService service.AuthService, log *zap.SugaredLogger, debug bool) *AuthHandler {
	return &AuthHandler{authService: authService, errorResponder: errorResponder{log: log, debug: debug}}
}

// Signup handles user registration
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusCreated, "User registered successfully", user)
}

// Signin handles user login
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	user, token, err := h.authService.Signin(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Login successful", gin.H{"token": token, "user": user})
}
