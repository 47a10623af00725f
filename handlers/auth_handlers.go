package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"quotepulse/api/analytics"
	"quotepulse/api/models"
	"quotepulse/api/store"
	"quotepulse/api/utils"
)

type AuthHandlers struct {
	UserStore *store.UserStore
	Engine    *analytics.Engine
}

func NewAuthHandlers(userStore *store.UserStore, engine *analytics.Engine) *AuthHandlers {
	return &AuthHandlers{UserStore: userStore, Engine: engine}
}

func (h *AuthHandlers) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user, err := h.UserStore.CreateUser(c.Request.Context(), req.Email, hashedPassword)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	h.Engine.Track(c.Request.Context(), models.EventUserRegister, nil, trackContext(c, user))

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user_email": user.Email})
}

// Login authenticates a user and issues the JWT cookie.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	user, err := h.UserStore.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	tokenString, err := utils.GenerateJWT(user)
	if err != nil {
		log.Error().Err(err).Int("userId", user.ID).Msg("failed to generate JWT")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}

	c.SetCookie(
		"jwt_token",
		tokenString,
		int(24*time.Hour/time.Second),
		"/",
		"",
		false,
		true,
	)

	h.Engine.Track(c.Request.Context(), models.EventUserLogin, nil, trackContext(c, user))

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"user_email": user.Email,
	})
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(
		"jwt_token",
		"",
		-1,
		"/",
		"",
		false,
		true,
	)

	h.Engine.Track(c.Request.Context(), models.EventSessionEnd, nil, trackContext(c, nil))

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// trackContext builds the event metadata for auth-originated events from the
// request itself.
func trackContext(c *gin.Context, user *models.User) analytics.TrackContext {
	tc := analytics.TrackContext{
		SessionID: utils.SessionID(c.Request),
		Device: models.DeviceInfo{
			Platform: c.Request.UserAgent(),
			Language: c.GetHeader("Accept-Language"),
		},
	}
	if user != nil {
		tc.UserID = strconv.Itoa(user.ID)
	}
	return tc
}
