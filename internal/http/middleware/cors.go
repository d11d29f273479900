package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// DefaultCORSOrigins are the local dev origins allowed when none are configured.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:4500",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:4500",
	"http://127.0.0.1:5173",
}

// CORS allows read-only cross-origin access from origins. "*" allows any
// origin without credentials.
func CORS(origins []string) gin.HandlerFunc {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	if len(cleaned) == 0 {
		cleaned = DefaultCORSOrigins
	}

	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "X-Request-Id", "X-Trace-Id"},
		ExposeHeaders: []string{headerRequestID, headerTraceID},
	}
	for _, o := range cleaned {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = cleaned
	return cors.New(cfg)
}
