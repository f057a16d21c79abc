package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/models"
	"churchconnect/internal/services"
	"churchconnect/internal/utils"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
	loginCodes  *services.VerificationService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService, loginCodes *services.VerificationService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService, loginCodes: loginCodes}
}

// @Summary      Log in
// @Description  Authenticates with email and password, returns access and refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)

	user, err := h.userService.GetUserByEmail(email)
	if err != nil || user == nil {
		log.Printf("[auth][login] user not found email=%q err=%v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !h.authService.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}
	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Email is not verified"})
		return
	}

	h.issueTokens(c, user)
}

// @Summary      Refresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body      object{refresh_token=string}  true  "Refresh token"
// @Success      200      {object}  map[string]interface{}
// @Failure      401      {object}  map[string]string
// @Router       /refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.GetByRefreshToken(strings.TrimSpace(req.RefreshToken))
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	if user.RefreshRevoked || user.RefreshExpiresAt == nil || time.Now().After(*user.RefreshExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	// rotation: every refresh invalidates the previous token
	h.issueTokens(c, user)
}

// @Summary      Log in with Google
// @Description  Verifies a Google ID token and signs the user in, creating the account on first use
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        token  body      object{id_token=string}  true  "Google ID token"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /auth/oauth/google [post]
func (h *AuthHandler) OAuthGoogle(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := utils.VerifyGoogleIDToken(req.IDToken)
	if err != nil {
		log.Printf("[auth][oauth] token verification failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	user, err := h.userService.ProvisionOAuthUser(claims.Email, claims.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sign-in failed"})
		return
	}
	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	h.issueTokens(c, user)
}

// @Summary      Request a login code
// @Description  Sends a one-time passwordless login code to the email, if an account exists
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      object{email=string}  true  "Email"
// @Success      200      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /auth/code/request [post]
func (h *AuthHandler) RequestLoginCode(c *gin.Context) {
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
	if user == nil || !user.IsActive {
		// don't leak account existence
		log.Printf("[auth][code] request for unknown or inactive account %q", email)
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a code has been sent"})
		return
	}

	recent, err := h.loginCodes.HasRecent(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
		return
	}
	if recent {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		return
	}

	if _, err := h.loginCodes.Issue(email); err != nil {
		if errors.Is(err, services.ErrDeliveryFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send the code, try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a code has been sent"})
}

// @Summary      Log in with a one-time code
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        confirm  body      object{email=string,code=string}  true  "Email and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /auth/code/confirm [post]
func (h *AuthHandler) ConfirmLoginCode(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))

	ok, err := h.loginCodes.Validate(email, strings.TrimSpace(req.Code))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}

	user, err := h.userService.GetUserByEmail(email)
	if err != nil || user == nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Sign-in failed"})
		return
	}
	// a successful login code proves the mailbox
	if !user.IsVerified {
		if err := h.userService.MarkVerified(user.ID); err != nil {
			log.Printf("[auth][code] mark verified failed for %d: %v", user.ID, err)
		}
	}
	h.issueTokens(c, user)
}

func (h *AuthHandler) issueTokens(c *gin.Context, user *models.User) {
	access, err := h.authService.GenerateAccessToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	refresh, err := utils.NewRefreshToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	if err := h.userService.SaveRefreshToken(user.ID, refresh, time.Now().Add(refreshTokenTTL)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
		"user":          user,
	})
}
