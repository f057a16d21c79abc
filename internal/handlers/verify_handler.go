package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/services"
)

// VerifyHandler owns the signup email-verification endpoints.
type VerifyHandler struct {
	codes       *services.VerificationService
	userService services.UserService
}

func NewVerifyHandler(codes *services.VerificationService, userService services.UserService) *VerifyHandler {
	return &VerifyHandler{codes: codes, userService: userService}
}

// @Summary      Confirm email
// @Description  Validates the verification code sent at registration
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        confirm  body      object{email=string,code=string}  true  "Email and code"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /register/confirm [post]
func (h *VerifyHandler) Confirm(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	ok, err := h.codes.Validate(email, strings.TrimSpace(req.Code))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Confirmation failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}

	user, err := h.userService.GetUserByEmail(email)
	if err != nil || user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}
	if err := h.userService.MarkVerified(user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Confirmation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// @Summary      Resend the verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        resend  body      object{email=string}  true  "Email"
// @Success      200     {object}  map[string]string
// @Failure      429     {object}  map[string]string
// @Router       /register/resend [post]
func (h *VerifyHandler) Resend(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
		return
	}
	if user == nil || user.IsVerified {
		c.JSON(http.StatusOK, gin.H{"message": "If the account needs verification, a code has been sent"})
		return
	}

	recent, err := h.codes.HasRecent(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
		return
	}
	if recent {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		return
	}

	if _, err := h.codes.Issue(email); err != nil {
		if errors.Is(err, services.ErrDeliveryFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send the code, try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account needs verification, a code has been sent"})
}
