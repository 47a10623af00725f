package middleware

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the frontend origin, defaulting to the local dev
// server when FE_ORIGIN is unset.
func CORSMiddleware() gin.HandlerFunc {
	origin := os.Getenv("FE_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	return cors.New(cors.Config{
		AllowOrigins:     []string{origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control", "X-Requested-With", "X-Session-ID", "X-API-KEY"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
