// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"elizatrader-service/internal/config"
	"elizatrader-service/internal/db"
	authHandler "elizatrader-service/internal/handlers/auth"
	postHandler "elizatrader-service/internal/handlers/post"
	wsHandler "elizatrader-service/internal/handlers/websocket"
	"elizatrader-service/internal/middleware"
	"elizatrader-service/internal/pkg/jwt"
	"elizatrader-service/internal/pkg/ratelimit"
	"elizatrader-service/internal/repository/postgres"
	authUsecase "elizatrader-service/internal/service/auth"
	postUsecase "elizatrader-service/internal/service/post"
	"elizatrader-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pg         *pgxpool.Pool
	redis      *redis.Client
	httpServer *http.Server
	cancelHub  context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	logger.Info("connected to PostgreSQL")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		// The limiter and stats cache degrade gracefully without redis;
		// the service itself stays up.
		logger.Warn("redis unavailable, limiter and stats cache disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("connected to Redis")
	}
	s.pg = pool
	s.redis = redisClient

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Rate Limiter -----
	var limiter *ratelimit.Limiter
	if redisClient != nil {
		limiter = ratelimit.NewLimiter(redisClient)
	}

	// ----- Repositories -----
	adminRepo := postgres.NewAdminRepository(pool)
	postRepo := postgres.NewPostRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(logger)
	hubCtx, cancelHub := context.WithCancel(ctx)
	s.cancelHub = cancelHub
	go hub.Run(hubCtx)

	// ----- Services -----
	authService := authUsecase.NewAuthService(adminRepo, jwtManager, limiter, logger)
	postService := postUsecase.NewPostService(postRepo, hub, redisClient, s.cfg.DefaultAuthor, logger)

	// ----- Admin Provisioning -----
	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := authService.SeedIdentities(seedCtx, s.cfg.AdminUsers, s.cfg.AdminPasswordHash); err != nil {
		return fmt.Errorf("failed to seed admin identities: %w", err)
	}

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	postHandlerInst := postHandler.NewPostHandler(postService, logger)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, authService, s.cfg.AllowedOrigins, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.AllowedOrigins),
	)

	// ----- Router -----
	SetupRouter(s.engine, &Handlers{
		AuthHandler:    authHandlerInst,
		PostHandler:    postHandlerInst,
		WSHandler:      wsHandlerInst,
		AuthMiddleware: authMiddleware,
		Health:         s.healthHandler(),
	})

	// ----- Start HTTP -----
	logger.Info("server starting", zap.String("addr", s.cfg.HTTPAddr))
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP listener and releases storage connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.cancelHub != nil {
		s.cancelHub()
	}
	if s.redis != nil {
		s.redis.Close()
	}
	if s.pg != nil {
		s.pg.Close()
	}
	if s.logger != nil {
		s.logger.Sync()
	}
	return err
}

// healthHandler reports liveness plus per-dependency connectivity flags.
// Degraded dependencies flip their flag rather than failing the probe.
func (s *Server) healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		database := "connected"
		if err := s.pg.Ping(ctx); err != nil {
			database = "disconnected"
		}

		cache := "disabled"
		if s.redis != nil {
			cache = "connected"
			if err := s.redis.Ping(ctx).Err(); err != nil {
				cache = "disconnected"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"database": database,
				"cache":    cache,
			},
		})
	}
}
