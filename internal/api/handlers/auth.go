package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/response"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/auth"
)

// SignUpRequest represents sign-up request
type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest represents sign-in request
type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	provider *auth.Provider
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(provider *auth.Provider) *AuthHandler {
	return &AuthHandler{provider: provider}
}

// SignUp handles POST /api/v1/auth/sign-up
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeInvalidParameter,
			"Invalid request body", err.Error())
		return
	}

	engine, err := h.provider.Engine(c.Request.Context())
	if err != nil {
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodeInternalServer,
			"Authentication unavailable", err.Error())
		return
	}

	sess, err := engine.SignUp(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			response.Conflict(c, "Email already registered")
		case errors.Is(err, auth.ErrInvalidEmail),
			errors.Is(err, auth.ErrPasswordTooShort),
			errors.Is(err, auth.ErrPasswordTooLong):
			response.BadRequest(c, err.Error())
		default:
			response.ErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodeInternalServer,
				"Sign-up failed", err.Error())
		}
		return
	}

	// Auto sign-in: the session cookie rides along with the 201
	h.setSessionCookie(c, engine, sess)
	response.Created(c, sess, "Account created")
}

// SignIn handles POST /api/v1/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeInvalidParameter,
			"Invalid request body", err.Error())
		return
	}

	engine, err := h.provider.Engine(c.Request.Context())
	if err != nil {
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodeInternalServer,
			"Authentication unavailable", err.Error())
		return
	}

	sess, err := engine.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			response.Unauthorized(c, "Invalid email or password")
			return
		}
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodeInternalServer,
			"Sign-in failed", err.Error())
		return
	}

	h.setSessionCookie(c, engine, sess)
	response.Success(c, sess)
}

// SignOut handles POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	engine, err := h.provider.Engine(c.Request.Context())
	if err != nil {
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodeInternalServer,
			"Authentication unavailable", err.Error())
		return
	}

	if cookie, err := c.Request.Cookie(auth.SessionCookie); err == nil {
		_ = engine.SignOut(c.Request.Context(), cookie.Value)
	}

	// Expire the cookie regardless of whether a session existed
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.secureCookies(engine), true)
	response.NoContent(c)
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	engine, err := h.provider.Engine(c.Request.Context())
	if err != nil {
		response.ErrorWithDetails(c, http.StatusInternalServerError, response.ErrCodeInternalServer,
			"Authentication unavailable", err.Error())
		return
	}

	sess, err := engine.GetSession(c.Request.Context(), c.Request.Header)
	if err != nil || sess == nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	response.Success(c, sess)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, engine *auth.Engine, sess *auth.Session) {
	if sess == nil {
		return
	}
	maxAge := int(engine.Config().SessionTTL.Seconds())
	c.SetCookie(auth.SessionCookie, sess.Token, maxAge, "/", "", h.secureCookies(engine), true)
}

func (h *AuthHandler) secureCookies(engine *auth.Engine) bool {
	return strings.HasPrefix(engine.Config().BaseURL, "https://")
}
