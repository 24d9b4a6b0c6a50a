package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/handlers"
	"github.com/Deepanshu8560/Real-Time-Stock-Market-Web-App/internal/api/middleware"
)

// Config holds router configuration
type Config struct {
	Mode string // gin mode: debug, release

	AuthHandler      *handlers.AuthHandler
	WatchlistHandler *handlers.WatchlistHandler
	UsersHandler     *handlers.UsersHandler
	HealthHandler    *handlers.HealthHandler

	Sessions     middleware.SessionResolver
	CORSOrigin   string
	AccessLogger *zerolog.Logger // optional separate access log sink
}

// New creates the HTTP router
func New(cfg *Config) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(middleware.LoggingConfig{
		AccessLogger: cfg.AccessLogger,
		SkipPaths:    []string{"/health"},
	}))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigin)))

	r.GET("/health", cfg.HealthHandler.Check)

	v1 := r.Group("/api/v1")

	// Auth endpoints resolve their own session state
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/sign-up", cfg.AuthHandler.SignUp)
		authGroup.POST("/sign-in", cfg.AuthHandler.SignIn)
		authGroup.POST("/sign-out", cfg.AuthHandler.SignOut)
		authGroup.GET("/session", cfg.AuthHandler.Session)
	}

	// Everything below requires a signed-in user; browser clients are
	// redirected to the sign-in page, API clients get a 401
	guarded := v1.Group("")
	guarded.Use(middleware.RequireSession(cfg.Sessions))
	{
		guarded.GET("/watchlist", cfg.WatchlistHandler.List)
		guarded.GET("/watchlist/symbols", cfg.WatchlistHandler.Symbols)
		guarded.POST("/watchlist", cfg.WatchlistHandler.Add)
		guarded.DELETE("/watchlist/:symbol", cfg.WatchlistHandler.Remove)

		guarded.GET("/users/notifiable", cfg.UsersHandler.Notifiable)
	}

	return r
}
