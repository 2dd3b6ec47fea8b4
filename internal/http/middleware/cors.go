package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/northquant/site-backend/internal/platform/envutil"
)

func CORS() gin.HandlerFunc {
	origins := strings.Split(envutil.Str(
		"CORS_ALLOW_ORIGINS",
		"http://localhost:3000,http://127.0.0.1:3000",
	), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	})
}
