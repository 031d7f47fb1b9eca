package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"communityhub/internal/ai/component"
	"communityhub/internal/config"
	"communityhub/internal/handler"
	assistHandler "communityhub/internal/handler/assist"
	authHandler "communityhub/internal/handler/auth"
	communityHandler "communityhub/internal/handler/community"
	mentorshipHandler "communityhub/internal/handler/mentorship"
	"communityhub/internal/pkg/cache"
	"communityhub/internal/pkg/mongodb"
	"communityhub/internal/relay"
	authRepo "communityhub/internal/repository/auth"
	communityRepo "communityhub/internal/repository/community"
	mentorshipRepo "communityhub/internal/repository/mentorship"
	"communityhub/internal/server/middleware"
	"communityhub/internal/service"
)

// Server is the HTTP server with its backing connections.
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
	hub    *relay.Hub
}

// New builds the server. MongoDB is required; Redis and the AI assistant
// are optional and the affected features degrade when absent.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without it")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	var chatModel service.ChatGenerator
	if cfg.AI.APIKey != "" {
		cm, err := component.NewChatModel(context.Background(), &cfg.AI)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize chat model, assistant runs offline")
		} else {
			chatModel = cm
			log.Info().Str("model", cfg.AI.Model).Msg("initialized chat model")
		}
	} else {
		log.Warn().Msg("AI API key not configured, assistant runs offline")
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	srv.setupRoutes(chatModel)

	return srv, nil
}

func (s *Server) setupRoutes(chatModel service.ChatGenerator) {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	db := s.mongo.Database()
	userRepo := authRepo.NewUserRepo(db)
	refreshTokenRepo := authRepo.NewRefreshTokenRepo(db)
	postRepo := communityRepo.NewPostRepo(db)
	connectionRepo := mentorshipRepo.NewConnectionRepo(db)
	messageRepo := mentorshipRepo.NewMessageRepo(db)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}
	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}
	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	authSvc := service.NewAuthService(
		userRepo,
		refreshTokenRepo,
		postRepo,
		connectionRepo,
		jwtSecret,
		accessTokenExpiry,
		refreshTokenExpiry,
	)
	communitySvc := service.NewCommunityService(postRepo)
	mentorshipSvc := service.NewMentorshipService(userRepo, connectionRepo, messageRepo)
	assistSvc := service.NewAssistService(chatModel, userRepo, postRepo, s.redis)

	s.hub = relay.NewHub(mentorshipSvc)

	healthHdl := handler.NewHealthHandler(map[string]handler.Pinger{
		"mongo": func(ctx context.Context) error {
			return s.mongo.Client().Ping(ctx, nil)
		},
		"redis": func(ctx context.Context) error {
			if s.redis == nil {
				return nil
			}
			return s.redis.Client().Ping(ctx).Err()
		},
	})
	s.engine.GET("/health", healthHdl.Health)
	s.engine.GET("/ready", healthHdl.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	relayHdl := relay.NewHandler(s.hub, authSvc)
	s.engine.GET("/ws", relayHdl.Serve)

	authHdl := authHandler.NewHandler(authSvc)
	communityHdl := communityHandler.NewHandler(communitySvc, authSvc, s.redis)
	mentorshipHdl := mentorshipHandler.NewHandler(mentorshipSvc, s.hub)
	assistHdl := assistHandler.NewHandler(assistSvc, authSvc)

	api := s.engine.Group("/api")
	{
		api.POST("/auth/register", authHdl.Register)
		api.POST("/auth/login", authHdl.Login)
		api.POST("/auth/refresh", authHdl.Refresh)

		api.GET("/posts/:type", communityHdl.ListPosts)
		api.GET("/search", communityHdl.Search)
		api.GET("/mentors", communityHdl.ListMentors)
		api.GET("/ai/health", assistHdl.Health)

		authed := api.Group("")
		authed.Use(middleware.Auth(authSvc))
		{
			authed.POST("/auth/logout", authHdl.Logout)
			authed.GET("/auth/profile", authHdl.GetProfile)
			authed.PUT("/auth/profile", authHdl.UpdateProfile)
			authed.PUT("/auth/change-password", authHdl.ChangePassword)
			authed.GET("/auth/user-stats", authHdl.GetStats)

			admin := authed.Group("")
			admin.Use(middleware.Require(middleware.CapManageUsers))
			{
				admin.GET("/users", authHdl.ListUsers)
				admin.GET("/auth/admin/users", authHdl.ListUsers)
				admin.PUT("/auth/admin/users/:id/role", authHdl.UpdateUserRole)
				admin.PUT("/auth/admin/users/:id/status", authHdl.UpdateUserStatus)
			}

			authed.POST("/posts", communityHdl.CreatePost)
			authed.POST("/posts/:id/replies", communityHdl.AddReply)
			authed.POST("/posts/:id/like", communityHdl.ToggleLike)

			authed.POST("/mentorship/request",
				middleware.Require(middleware.CapRequestMentorship), mentorshipHdl.RequestConnection)
			authed.GET("/mentorship/connections", mentorshipHdl.ListConnections)
			authed.PUT("/mentorship/connections/:id", mentorshipHdl.UpdateStatus)
			authed.GET("/mentorship/connections/:id/messages", mentorshipHdl.ListMessages)
			authed.POST("/mentorship/connections/:id/messages", mentorshipHdl.SendMessage)

			authed.POST("/ai/chat", assistHdl.Chat)
			authed.GET("/ai/recommendations", assistHdl.Recommendations)
			authed.GET("/ai/mentor-match", assistHdl.MentorMatch)
			authed.POST("/ai/generate-tags", assistHdl.GenerateTags)
		}
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		s.hub.Shutdown()

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine exposes the Gin engine for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
