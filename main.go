package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"societyhub/auth"
	"societyhub/config"
	"societyhub/database"
	"societyhub/handlers"
	"societyhub/jobs"
	"societyhub/logger"
	"societyhub/routes"
	"societyhub/services"
	"societyhub/store"
)

func main() {
	config.Load()

	if err := logger.Init(config.Global.Server.Mode); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	zap.L().Info("Starting society website backend")

	// Connect to MongoDB, retrying a few times to ride out slow cold starts.
	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.Connect(config.Global.Mongo.URI, config.Global.Mongo.Database); err != nil {
			dbErr = err
			zap.L().Warn("MongoDB connection attempt failed", zap.Int("attempt", i), zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(dbErr))
	}
	defer func() {
		if err := database.Disconnect(); err != nil {
			zap.L().Warn("MongoDB disconnect failed", zap.Error(err))
		}
	}()

	if config.Global.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Wire stores, provider and services.
	posts := store.NewMongoPosts()
	comments := store.NewMongoComments()
	events := store.NewMongoEvents()
	signups := store.NewMongoSignups()
	users := store.NewMongoUsers()
	admins := store.NewMongoAdmins()
	audit := store.NewMongoAudit()
	provider := auth.NewMongoProvider()

	cooldown := time.Duration(config.Global.RateLimit.PostCooldownSeconds) * time.Second
	userAdmin := services.NewUserAdminService(users, provider, audit, posts, comments)

	handlers.Init(handlers.Deps{
		Forum:      services.NewForumService(posts, comments, users, cooldown),
		Moderation: services.NewModerationService(posts, comments, audit),
		Events:     services.NewEventService(events, signups, audit),
		UserAdmin:  userAdmin,
		Provider:   provider,
		Users:      users,
	})

	router := routes.SetupRouter(admins)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "Society backend running", "service": "healthy"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Background display-name sync.
	var scheduler *jobs.Scheduler
	if config.Global.NameSync.Enabled {
		var err error
		scheduler, err = jobs.Start(config.Global.NameSync.Spec, userAdmin)
		if err != nil {
			zap.L().Fatal("Could not set up sync job", zap.Error(err))
		}
	}

	server := &http.Server{
		Addr:         ":" + config.Global.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zap.L().Info("Server running", zap.String("port", config.Global.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.L().Info("Shutting down server")
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Forced shutdown", zap.Error(err))
	}

	zap.L().Info("Server stopped gracefully")
}
