// Package web serves the public menu site and the admin back-office. Both
// are views over the remote menu API: nothing is stored here, every page
// load goes through the API client.
package web

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/config"
	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	config *config.Config
	logger zerolog.Logger
	// public is the unauthenticated API client used by the menu site
	public *api.Client
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger) (*Server, error) {
	if err := registerValidations(); err != nil {
		return nil, err
	}

	server := &Server{
		config: cfg,
		logger: zlog,
		public: api.New(cfg.API.BaseURL, tokenstore.NewMemory(), zlog),
	}

	server.setupRouter()

	return server, nil
}

// apiClient builds a client bound to one request's bearer token. An empty
// token yields an unauthenticated client; the remote API does the rejecting.
func (s *Server) apiClient(token string) *api.Client {
	tokens := tokenstore.NewMemory()
	if token != "" {
		_ = tokens.Set(token)
	}
	return api.New(s.config.API.BaseURL, tokens, s.logger)
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tmpl := template.Must(template.ParseFS(templatesFS, "templates/*.html"))
	s.router.SetHTMLTemplate(tmpl)

	// Health check endpoint (no auth required)
	s.router.GET("/health", s.healthCheck)

	// Public menu site
	s.router.GET("/", s.showMenu)

	// Login is the only admin page rendered without the authenticated shell
	s.router.GET("/admin/login", s.showLogin)
	s.router.POST("/admin/login", s.handleLogin)
	s.router.POST("/admin/logout", s.handleLogout)

	// Authenticated back-office
	admin := s.router.Group("/admin")
	admin.Use(s.guardMiddleware())
	{
		admin.GET("", s.showDashboard)
		admin.GET("/categories", s.showCategories)
		admin.POST("/categories", s.handleCategoryCreate)
		admin.POST("/categories/:id/update", s.handleCategoryUpdate)
		admin.POST("/categories/:id/delete", s.handleCategoryDelete)
		admin.GET("/menu-items", s.showMenuItems)
		admin.POST("/menu-items", s.handleMenuItemCreate)
		admin.POST("/menu-items/:id/update", s.handleMenuItemUpdate)
		admin.POST("/menu-items/:id/delete", s.handleMenuItemDelete)
		admin.GET("/restaurants", s.showRestaurants)
		admin.POST("/restaurants", s.handleRestaurantCreate)
		admin.POST("/restaurants/:id/update", s.handleRestaurantUpdate)
		admin.POST("/restaurants/:id/delete", s.handleRestaurantDelete)
		admin.GET("/settings", s.showSettings)
		admin.POST("/settings/password", s.handleChangePassword)
	}
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "silverstar-web",
	})
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until a shutdown signal.
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.config.Web.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.config.Web.ListenAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
