package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/models"
	"churchconnect/internal/services"
)

type UserHandler struct {
	userService services.UserService
	authService services.AuthService
	verifyCodes *services.VerificationService
}

func NewUserHandler(userService services.UserService, authService services.AuthService, verifyCodes *services.VerificationService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService, verifyCodes: verifyCodes}
}

// @Summary      Register
// @Description  Creates an account and sends an email verification code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        register  body      models.RegisterRequest  true  "Registration data"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]string
// @Router       /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.Register(req.Email, req.Password, req.DisplayName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.verifyCodes.Issue(user.Email); err != nil {
		// account exists; the user can ask for a resend
		if errors.Is(err, services.ErrDeliveryFailed) {
			log.Printf("[user][register] verification email to %s failed", user.Email)
			c.JSON(http.StatusCreated, gin.H{
				"user":    user,
				"warning": "Failed to send the verification code, use resend",
			})
			return
		}
		log.Printf("[user][register] issue verification code for %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "message": "Verification code sent"})
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, _ := getUserAndRole(c)
	user, err := h.userService.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type profileUpdateRequest struct {
	DisplayName  string `json:"display_name"`
	Bio          string `json:"bio"`
	AvatarPath   string `json:"avatar_path"`
	Phone        string `json:"phone"`
	RegionCode   string `json:"region_code"`
	RegionName   string `json:"region_name"`
	ProvinceCode string `json:"province_code"`
	ProvinceName string `json:"province_name"`
	CityCode     string `json:"city_code"`
	CityName     string `json:"city_name"`
	BarangayCode string `json:"barangay_code"`
	BarangayName string `json:"barangay_name"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.DisplayName != "" {
		user.DisplayName = req.DisplayName
	}
	user.Bio = req.Bio
	user.AvatarPath = req.AvatarPath
	user.Phone = req.Phone
	user.RegionCode, user.RegionName = req.RegionCode, req.RegionName
	user.ProvinceCode, user.ProvinceName = req.ProvinceCode, req.ProvinceName
	user.CityCode, user.CityName = req.CityCode, req.CityName
	user.BarangayCode, user.BarangayName = req.BarangayCode, req.BarangayName

	if err := h.userService.UpdateProfile(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, _ := getUserAndRole(c)

	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if !h.authService.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is wrong"})
		return
	}
	if err := h.userService.UpdatePassword(userID, req.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
