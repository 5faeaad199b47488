package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexbytes/nexfolio/backend/go-services/handlers"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/blogs"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/comments"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/config"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/database"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/feedbacks"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/media"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/storage"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/tokens"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/users"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Configure(cfg.Server.IsProduction())
	logger.Init(cfg.Server.LogLevel)
	for _, w := range cfg.Warnings() {
		logger.Warnf("config: %s", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Open(ctx, cfg.MongoDB, 5)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	logger.Infof("connected to MongoDB database %q", cfg.MongoDB.Database)

	blogRepo := blogs.NewMongoRepository(pool.Collection(blogs.CollectionName))
	commentRepo := comments.NewMongoRepository(pool.Collection(comments.CollectionName))
	feedbackRepo := feedbacks.NewMongoRepository(pool.Collection(feedbacks.CollectionName))
	userRepo := users.NewMongoUserRepository(pool.Collection(users.CollectionName))

	idxCtx, cancel := context.WithTimeout(ctx, cfg.MongoDB.Timeout)
	for name, ensure := range map[string]func(context.Context) error{
		blogs.CollectionName:    blogRepo.EnsureIndexes,
		comments.CollectionName: commentRepo.EnsureIndexes,
		users.CollectionName:    userRepo.EnsureIndexes,
	} {
		if err := ensure(idxCtx); err != nil {
			logger.Warnf("ensure indexes on %s: %v", name, err)
		}
	}
	cancel()

	checks := map[string]handlers.Check{"mongo": pool.Ping}
	blogOpts := []blogs.Option{blogs.WithComments(commentRepo)}
	api := &handlers.API{
		Comments:         comments.NewService(commentRepo, blogRepo),
		Feedbacks:        feedbacks.NewService(feedbackRepo),
		Users:            users.NewService(userRepo),
		Tokens:           tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.TokenTTL),
		RequireUserToken: cfg.Auth.RequireUserToken,
		OpenSignup:       cfg.Auth.OpenSignup,
	}

	if cfg.Media.Endpoint != "" {
		store, err := storage.NewMinIOStorage(ctx, cfg.Media)
		if err != nil {
			logger.Warnf("image host unavailable, uploads disabled: %v", err)
		} else {
			mgr := media.NewManager(store, media.Options{
				Folder:        cfg.Media.Folder,
				PublicBaseURL: cfg.Media.PublicBaseURL,
				MaxBytes:      cfg.Media.MaxUploadSize,
				MaxDimension:  cfg.Media.MaxDimension,
				MaxPixels:     cfg.Media.MaxPixels,
				Quality:       cfg.Media.Quality,
			})
			api.Media = mgr
			blogOpts = append(blogOpts, blogs.WithMedia(mgr))
			checks["media"] = store.Ready
		}
	}
	api.Blogs = blogs.NewService(blogRepo, blogOpts...)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.APIKeyHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.APIKeyGate(cfg.Auth.APIPrefix, cfg.Auth.APIKey, cfg.Auth.APIKeyContact))

	api.Register(r.Group(cfg.Auth.APIPrefix))
	handlers.RegisterHealth(r, startTime, checks)
	handlers.RegisterSwagger(r, cfg.Auth.APIPrefix)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := pool.Close(shutdownCtx); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
}
