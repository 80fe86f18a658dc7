package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/purva252/study-connect-hub/internal/config"
	"github.com/purva252/study-connect-hub/internal/connections"
	"github.com/purva252/study-connect-hub/internal/database"
	"github.com/purva252/study-connect-hub/internal/handlers"
	"github.com/purva252/study-connect-hub/internal/httpmiddleware"
	"github.com/purva252/study-connect-hub/internal/logger"
	"github.com/purva252/study-connect-hub/internal/middleware"
	"github.com/purva252/study-connect-hub/internal/routes"
	"github.com/purva252/study-connect-hub/internal/store"
	"github.com/purva252/study-connect-hub/internal/teachers"
	"github.com/purva252/study-connect-hub/internal/utils"
	"github.com/purva252/study-connect-hub/internal/ws"
	"github.com/purva252/study-connect-hub/web"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.ConnectDB(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = database.Disconnect(ctx)
	}()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := database.EnsureIndexes(ctx); err != nil {
			log.Fatal("failed to create indexes", zap.Error(err))
		}
	}

	if cfg.AuthJWKSURL != "" {
		if err := utils.InitJWKS(cfg.AuthJWKSURL); err != nil {
			log.Fatal("failed to fetch JWKS", zap.Error(err))
		}
	}

	conns := store.NewMongoConnections(database.DB)
	teacherProfiles := store.NewMongoTeacherProfiles(database.DB)
	studentProfiles := store.NewMongoStudentProfiles(database.DB)
	users := store.NewMongoUsers(database.DB)

	directory := teachers.NewDirectory(teacherProfiles, users)
	hub := ws.NewHub(log)
	svc := connections.NewService(conns, teacherProfiles, studentProfiles, users, directory, hub, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health", "/metrics"},
	}))
	r.Use(cors.Default())

	var limiter httpmiddleware.Limiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  1 * time.Second,
			WriteTimeout: 1 * time.Second,
		})
		limiter = httpmiddleware.NewRedisFixedWindow(client, cfg.RateLimitPerMin)
		log.Info("rate limiting backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		limiter = httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin)
	}
	r.Use(httpmiddleware.GinMiddleware(limiter))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"status": "Server is running",
			},
		})
	})

	authMW := middleware.Auth(cfg)
	routes.AuthRoutes(r, handlers.NewAuthHandler(cfg, users, teacherProfiles, studentProfiles, log), authMW)
	routes.ConnectionRoutes(r, handlers.NewConnectionHandler(svc, log), authMW)
	routes.TeacherRoutes(r, handlers.NewTeacherHandler(directory, log), authMW)
	routes.WSRoutes(r, hub, cfg)
	web.Register(r)

	log.Info("server running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
