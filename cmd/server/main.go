package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"microblog/internal/cache"
	"microblog/internal/config"
	apphttp "microblog/internal/http"
	"microblog/internal/repository/sqlite"
	"microblog/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	followRepo := sqlite.NewFollowRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := postRepo.Init(ctx); err != nil {
		logger.Fatalf("init post repository: %v", err)
	}
	if err := followRepo.Init(ctx); err != nil {
		logger.Fatalf("init follow repository: %v", err)
	}

	var feedCache *cache.FeedCache
	if cfg.Cache.Addr != "" {
		feedCache = cache.New(cfg.Cache.Addr, int32(cfg.Cache.TTLSeconds))
		logger.Infof("feed cache enabled at %s", cfg.Cache.Addr)
	}

	userService := service.NewUserService(userRepo)
	graphService := service.NewGraphService(followRepo, userRepo, feedCache)
	postService := service.NewPostService(postRepo, userRepo, followRepo, feedCache)
	feedService := service.NewFeedService(postRepo, followRepo, feedCache)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		postService,
		graphService,
		feedService,
		logger,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}
