package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/services"
)

// AdminHandler backs the super-admin dashboard. Every route here sits behind
// middleware.RequireRoles(authz.RoleSuperAdmin).
type AdminHandler struct {
	admin       *services.AdminService
	userService services.UserService
}

func NewAdminHandler(admin *services.AdminService, userService services.UserService) *AdminHandler {
	return &AdminHandler{admin: admin, userService: userService}
}

func (h *AdminHandler) Summary(c *gin.Context) {
	s, err := h.admin.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *AdminHandler) SetUserActive(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.SetActive(int(id), *req.Active); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

type setRoleRequest struct {
	RoleID int `json:"role_id" binding:"required"`
}

func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.userService.SetRole(int(id), req.RoleID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

type approveChurchRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

func (h *AdminHandler) ApproveChurch(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req approveChurchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.admin.ApproveChurch(id, *req.Approved); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

func (h *AdminHandler) DeactivateChurch(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.admin.DeactivateChurch(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "church deactivated"})
}
