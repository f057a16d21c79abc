package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/authz"
	"churchconnect/internal/models"
	"churchconnect/internal/pdf"
	"churchconnect/internal/services"
)

type BookingHandler struct {
	bookings      services.BookingService
	churchService *services.ChurchService
	userService   services.UserService
	pdfGen        pdf.Generator
}

func NewBookingHandler(
	bookings services.BookingService,
	churchService *services.ChurchService,
	userService services.UserService,
	pdfGen pdf.Generator,
) *BookingHandler {
	return &BookingHandler{
		bookings:      bookings,
		churchService: churchService,
		userService:   userService,
		pdfGen:        pdfGen,
	}
}

type createBookingRequest struct {
	ServiceID int64  `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Note      string `json:"note"`
}

// Create submits a booking request. Overlapping active bookings for the same
// church and date come back in the response as a warning, never as an error.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := parseDateParam(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b := &models.Booking{
		ServiceID: req.ServiceID,
		UserID:    userID,
		Date:      date,
		Note:      req.Note,
	}
	created, conflicts, err := h.bookings.Create(b)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDateInPast),
			errors.Is(err, services.ErrDateTooFar),
			errors.Is(err, services.ErrDateClosed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking":   created,
		"conflicts": conflicts,
	})
}

func (h *BookingHandler) Mine(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	filter := models.BookingFilter{
		UserID: userID,
		Status: models.BookingStatus(c.Query("status")),
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}
	list, err := h.bookings.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) ListForChurch(c *gin.Context) {
	churchID, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if !h.requireChurchOwner(c, churchID) {
		return
	}

	filter := models.BookingFilter{
		ChurchID: churchID,
		Status:   models.BookingStatus(c.Query("status")),
		Limit:    queryInt(c, "limit", 20),
		Offset:   queryInt(c, "offset", 0),
	}
	list, err := h.bookings.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Get(c *gin.Context) {
	b := h.loadVisibleBooking(c)
	if b == nil {
		return
	}
	c.JSON(http.StatusOK, b)
}

// Conflicts reports the active bookings for a church and date, so staff can
// eyeball a date before approving anything.
func (h *BookingHandler) Conflicts(c *gin.Context) {
	churchID, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	conflicts, err := h.bookings.Conflicts(churchID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date.Format("2006-01-02"), "conflicts": conflicts})
}

type updateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.bookings.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}

	userID, roleID := getUserAndRole(c)
	// members may only cancel their own booking; everything else is for the
	// church owner or a super admin
	if req.Status == models.BookingCanceled && b.UserID == userID {
		// allowed
	} else if !authz.IsSuperAdmin(roleID) {
		owned, err := h.churchService.OwnedBy(b.ChurchID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
			return
		}
		if !owned {
			c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
			return
		}
	}

	updated, err := h.bookings.UpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		}
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Confirmation renders the booking confirmation PDF and streams it back.
func (h *BookingHandler) Confirmation(c *gin.Context) {
	b := h.loadVisibleBooking(c)
	if b == nil {
		return
	}
	if b.Status != models.BookingApproved && b.Status != models.BookingCompleted {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is not approved yet"})
		return
	}

	church, err := h.churchService.GetByID(b.ChurchID)
	if err != nil || church == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "church lookup failed"})
		return
	}
	svc, err := h.churchService.GetService(b.ServiceID)
	if err != nil || svc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "service lookup failed"})
		return
	}
	member, err := h.userService.GetUserByID(b.UserID)
	if err != nil || member == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user lookup failed"})
		return
	}

	path, err := h.pdfGen.GenerateBookingConfirmation(pdf.BookingConfirmationData{
		RefCode:     b.RefCode,
		ChurchName:  church.Name,
		ServiceName: svc.Name,
		MemberName:  member.DisplayName,
		Date:        b.Date,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "pdf generation failed"})
		return
	}
	c.FileAttachment(path, "booking_"+b.RefCode+".pdf")
}

// loadVisibleBooking fetches the booking and enforces that the caller is the
// booking owner, the church owner or a super admin. Writes the error response
// itself and returns nil when access is denied.
func (h *BookingHandler) loadVisibleBooking(c *gin.Context) *models.Booking {
	id, ok := paramInt64(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil
	}
	b, err := h.bookings.GetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return nil
	}

	userID, roleID := getUserAndRole(c)
	if b.UserID == userID || authz.IsSuperAdmin(roleID) {
		return b
	}
	owned, err := h.churchService.OwnedBy(b.ChurchID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return nil
	}
	if !owned {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return nil
	}
	return b
}

func (h *BookingHandler) requireChurchOwner(c *gin.Context, churchID int64) bool {
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
