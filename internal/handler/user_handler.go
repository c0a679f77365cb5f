package handler

import (
	"net/http"
	"strconv"

	"github.com/ImArijitBasu/vehicle-rental-backend/internal/apperr"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/middleware"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/model"
	"github.com/ImArijitBasu/vehicle-rental-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves user listing, retrieval, update and deletion.
type UserHandler struct {
	userService service.UserService
	errorResponder
}

func NewUserHandler(userService service.UserService, log *zap.SugaredLogger, debug bool) *UserHandler {
	return &UserHandler{userService: userService, errorResponder: errorResponder{log: log, debug: debug}}
}

func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// List returns every user, admin only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

// Get returns one user by id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid user ID"))
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User retrieved successfully", user)
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid user ID"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("Invalid request body"))
		return
	}

	claims, found := middleware.GetClaims(c)
	if !found {
		h.fail(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), claims, id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User updated successfully", user)
}

// Delete removes a user, admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		h.fail(c, apperr.Validation("Invalid user ID"))
		return
	}

	claims, found := middleware.GetClaims(c)
	if !found {
		h.fail(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), claims, id); err != nil {
		h.fail(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully", nil)
}
