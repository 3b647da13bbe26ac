package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/linkgrove/linkgrove-v2/backend/config"
	"github.com/linkgrove/linkgrove-v2/backend/internal/api"
	"github.com/linkgrove/linkgrove-v2/backend/internal/middleware"
	"github.com/linkgrove/linkgrove-v2/backend/internal/render"
	"github.com/linkgrove/linkgrove-v2/backend/internal/sanitize"
	"github.com/linkgrove/linkgrove-v2/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	logger *log.Logger
}

// NewServer wires services and handlers into a running router. The S3
// configuration may be nil; share codes are then served inline only.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) (*Server, error) {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := log.New(os.Stdout, "[Server] ", log.LstdFlags)

	moderator, err := config.LoadWordListModerator(cfg.ModerationWordsFile)
	if err != nil {
		return nil, err
	}

	// Services
	emailService := service.NewEmailService()
	authService := service.NewAuthService(db, cfg.JWTSecret, moderator, emailService)
	profileService := service.NewProfileService(db, moderator)
	visitService := service.NewVisitService(db, redisClient)
	sandboxService := service.NewSandboxService(redisClient)
	badgeService := service.NewBadgeService(db)
	shareService := service.NewShareService(cfg.ShareLogoPath, s3cfg)
	checkoutService := service.NewCheckoutService(cfg.CheckoutBaseURL)

	sanitizer := sanitize.New()
	renderer := render.New(sanitizer, sandboxService)
	pageService := service.NewPageService(db, renderer, visitService, sandboxService)

	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.Use(middleware.ClientID())

	if cfg.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     cfg.RateLimitPerMinute,
			KeyPrefix: "ratelimit",
		})
		router.Use(limiter.RateLimitMiddleware())
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Handlers
	v1 := router.Group("/api/v1")
	pageHandler := api.NewPageHandler(pageService, profileService, shareService, sandboxService, checkoutService, cfg.SiteURL)
	pageHandler.SandboxConnectSrc = cfg.SandboxConnectSrc
	// Public surface; a logged-in owner is identified but never required.
	public := v1.Group("")
	public.Use(middleware.OptionalAuthMiddleware(authService))
	pageHandler.RegisterRoutes(public)
	api.NewAuthHandler(authService).RegisterRoutes(v1)
	api.NewProfileHandler(profileService).RegisterRoutes(v1, authService)
	api.NewBadgeHandler(badgeService).RegisterRoutes(v1, authService)

	return &Server{
		router: router,
		db:     db,
		logger: logger,
	}, nil
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Start(host, port string) error {
	s.http = &http.Server{
		Addr:    host + ":" + port,
		Handler: s.router,
	}

	go func() {
		s.logger.Printf("Listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	s.logger.Printf("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
