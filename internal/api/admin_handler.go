package api

import (
	"alcyxob/tracker-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the approval workflow.
type AdminHandler struct {
	authService service.AuthService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService service.AuthService) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// ListPendingUsers godoc
// @Summary List registrations awaiting approval
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Failure 403 {object} gin.H "Forbidden (not an admin)"
// @Router /admin/users/pending [get]
func (h *AdminHandler) ListPendingUsers(c *gin.Context) {
	users, err := h.authService.ListPendingUsers(c.Request.Context())
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUsersToResponse(users))
}

// ApproveUser godoc
// @Summary Approve a registration
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "User not found"
// @Router /admin/users/{userId}/approve [post]
func (h *AdminHandler) ApproveUser(c *gin.Context) {
	user, err := h.authService.ApproveUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// RejectUser godoc
// @Summary Reject a registration
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "User not found"
// @Router /admin/users/{userId}/reject [post]
func (h *AdminHandler) RejectUser(c *gin.Context) {
	user, err := h.authService.RejectUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
