package middlewares

import (
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins. "*" allows any origin; an entry ending in ":*"
// allows every port of that host.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return originAllowed(origins, origin)
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func originAllowed(origins []string, origin string) bool {
	if slices.Contains(origins, "*") || slices.Contains(origins, origin) {
		return true
	}
	for _, o := range origins {
		if prefix, ok := strings.CutSuffix(o, "*"); ok && strings.HasPrefix(origin, prefix) {
			return true
		}
	}
	return false
}
