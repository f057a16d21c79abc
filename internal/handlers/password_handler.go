package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/services"
)

type PasswordHandler struct {
	codes       *services.VerificationService
	userService services.UserService
}

func NewPasswordHandler(codes *services.VerificationService, userService services.UserService) *PasswordHandler {
	return &PasswordHandler{codes: codes, userService: userService}
}

// @Summary      Request a password reset code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string}  true  "Email"
// @Success      200      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /password/forgot [post]
func (h *PasswordHandler) Forgot(c *gin.Context) {
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
	if user == nil {
		// don't leak existence
		log.Printf("[password][forgot] request for unknown account %q", email)
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a code has been sent"})
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
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a code has been sent"})
}

// @Summary      Reset the password with a code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        reset  body      object{email=string,code=string,new_password=string}  true  "Email, code, new password"
// @Success      200    {object}  map[string]string
// @Failure      400    {object}  map[string]string
// @Router       /password/reset [post]
func (h *PasswordHandler) Reset(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	ok, err := h.codes.Validate(email, strings.TrimSpace(req.Code))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
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
	if err := h.userService.UpdatePassword(user.ID, req.NewPassword); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reset failed"})
		return
	}
	// force re-login everywhere
	if err := h.userService.RevokeRefreshToken(user.ID); err != nil {
		log.Printf("[password][reset] revoke refresh failed for %d: %v", user.ID, err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
