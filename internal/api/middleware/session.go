package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
)

// SessionKey is the context key for the resolved session
const SessionKey = "session"

// SignInPath is where unauthenticated browser requests are sent
const SignInPath = "/sign-in"

// SessionResolver resolves a session from request headers.
type SessionResolver interface {
	GetSession(ctx context.Context, headers http.Header) (*auth.Session, error)
}

// RequireSession resolves the session once per request and stores it
// in the gin context. Requests without a valid session are redirected
// to the sign-in page when the client prefers HTML, and get a 401
// otherwise. Any fault during resolution counts as unauthenticated.
func RequireSession(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := sessions.GetSession(c.Request.Context(), c.Request.Header)
		if err != nil {
			log.Error().Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("Session resolution failed, treating as unauthenticated")
			sess = nil
		}

		if sess == nil {
			if prefersHTML(c) {
				c.Redirect(http.StatusFound, SignInPath)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":       "UNAUTHORIZED",
					"message":    "Not authenticated",
					"request_id": GetRequestID(c),
				},
			})
			return
		}

		c.Set(SessionKey, sess)
		c.Next()
	}
}

// GetSession retrieves the resolved session from the context.
func GetSession(c *gin.Context) *auth.Session {
	if v, exists := c.Get(SessionKey); exists {
		if sess, ok := v.(*auth.Session); ok {
			return sess
		}
	}
	return nil
}

func prefersHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
