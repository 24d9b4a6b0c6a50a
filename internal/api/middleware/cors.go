package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// DefaultCORSConfig returns the CORS settings for the web frontend.
// The frontend origin is the auth base URL.
func DefaultCORSConfig(origin string) CORSConfig {
	origins := []string{}
	if origin != "" {
		origins = append(origins, origin)
	}
	return CORSConfig{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}
}

// CORS middleware handles cross-origin requests
func CORS(cfg CORSConfig) gin.HandlerFunc {
	allowed := make(map[string]bool)
	for _, o := range cfg.AllowOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		originAllowed := origin != "" && allowed[origin]
		if originAllowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
			if cfg.AllowCredentials {
				c.Header("Access-Control-Allow-Credentials", "true")
			}
		}

		// Preflights from other origins fall through without CORS
		// headers; the browser rejects the response on its own
		if c.Request.Method == http.MethodOptions && originAllowed {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
