package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quotepulse/api/utils"
)

// AuthRequired accepts either the service API key or a valid JWT from the
// cookie or Authorization header, in that order.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != "" && apiKey == os.Getenv("AUTH_DEFAULT") {
			c.Next()
			return
		}

		tokenString, err := c.Cookie("jwt_token")
		if err != nil {
			tokenString = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
			if tokenString == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: No token provided"})
				return
			}
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			log.Warn().Err(err).Msg("rejected request with invalid JWT")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid or expired token"})
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Next()
	}
}
