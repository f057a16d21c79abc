package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/authz"
	"churchconnect/internal/models"
	"churchconnect/internal/services"
)

type ChurchHandler struct {
	churchService *services.ChurchService
}

func NewChurchHandler(churchService *services.ChurchService) *ChurchHandler {
	return &ChurchHandler{churchService: churchService}
}

func (h *ChurchHandler) List(c *gin.Context) {
	churches, err := h.churchService.List(c.Query("city"), queryInt(c, "limit", 20), queryInt(c, "offset", 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, churches)
}

func (h *ChurchHandler) Get(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	ch, err := h.churchService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if ch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "church not found"})
		return
	}
	c.JSON(http.StatusOK, ch)
}

// Create registers a new church listing. Listings are staff-owned; the row
// still needs super-admin approval before it shows up publicly.
func (h *ChurchHandler) Create(c *gin.Context) {
	userID, roleID := getUserAndRole(c)
	if !authz.IsStaff(roleID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "staff role required"})
		return
	}

	var ch models.Church
	if err := c.ShouldBindJSON(&ch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ch.OwnerID = userID
	if err := h.churchService.Create(&ch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (h *ChurchHandler) Update(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !h.requireOwner(c, id) {
		return
	}

	var req models.Church
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = id
	if err := h.churchService.Update(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ChurchHandler) Mine(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	churches, err := h.churchService.ListByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, churches)
}

// --- bookable services ---

func (h *ChurchHandler) ListServices(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	svcs, err := h.churchService.ListServices(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, svcs)
}

func (h *ChurchHandler) CreateService(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !h.requireOwner(c, id) {
		return
	}

	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc.ChurchID = id
	if err := h.churchService.CreateService(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ChurchHandler) UpdateService(c *gin.Context) {
	svcID, ok := paramInt64(c, "service_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	existing, err := h.churchService.GetService(svcID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if !h.requireOwner(c, existing.ChurchID) {
		return
	}

	var req models.Service
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.ID = svcID
	req.ChurchID = existing.ChurchID
	if err := h.churchService.UpdateService(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ChurchHandler) DeleteService(c *gin.Context) {
	svcID, ok := paramInt64(c, "service_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	existing, err := h.churchService.GetService(svcID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	if !h.requireOwner(c, existing.ChurchID) {
		return
	}
	if err := h.churchService.DeleteService(svcID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service removed"})
}

// --- availability closures ---

func (h *ChurchHandler) SetClosure(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !h.requireOwner(c, id) {
		return
	}

	var req struct {
		Date     string `json:"date" binding:"required"`
		IsClosed bool   `json:"is_closed"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a := models.Availability{ChurchID: id, Date: date, IsClosed: req.IsClosed, Reason: req.Reason}
	if err := h.churchService.SetClosure(&a); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ChurchHandler) ListClosures(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	from := c.DefaultQuery("from", "1970-01-01")
	to := c.DefaultQuery("to", "2100-01-01")
	closures, err := h.churchService.ListClosures(id, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, closures)
}

// requireOwner aborts with 403 unless the caller owns the church or is a
// super admin.
func (h *ChurchHandler) requireOwner(c *gin.Context, churchID int64) bool {
	userID, roleID := getUserAndRole(c)
	if authz.IsSuperAdmin(roleID) {
		return true
	}
	owned, err := h.churchService.OwnedBy(churchID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return false
	}
	if !owned {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the church owner"})
		return false
	}
	return true
}
