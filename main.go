// File: datekeeper/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datekeeper/config"
	reminderCron "datekeeper/cron"
	"datekeeper/database"
	documentRepoPkg "datekeeper/database/repository/document"
	ownerRepoPkg "datekeeper/database/repository/owner"
	"datekeeper/handlers"
	"datekeeper/routes"
	"datekeeper/services/document"
	"datekeeper/services/extraction"
	"datekeeper/services/intelligence"
	"datekeeper/services/notification"
	"datekeeper/services/owner"
	"datekeeper/services/scheduler"
	"datekeeper/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	docRepo := documentRepoPkg.NewMongoDocumentRepo()
	ownRepo := ownerRepoPkg.NewMongoOwnerRepo()

	// The AI pass is best-effort and entirely optional: no key, no AI.
	var suggester intelligence.ExpiryDateSuggester
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		timeout := time.Duration(config.AppConfig.AITimeoutSeconds) * time.Second
		gemini, err := intelligence.NewGeminiClient(key, timeout)
		if err != nil {
			logger.Sugar().Warnf("main: Gemini unavailable, using pattern extraction only: %v", err)
		} else {
			suggester = gemini
			logger.Info("Gemini AI enabled for intelligent date extraction")
		}
	}

	// services.
	extractionService := &extraction.DefaultExtractionService{
		Suggester: suggester,
		Cache:     utils.GetCacheClient(),
	}
	documentService := &document.DefaultDocumentService{
		Repo: docRepo,
	}
	ownerService := &owner.DefaultOwnerService{
		Repo: ownRepo,
	}
	dispatcher := notification.NewDispatcher()
	reminderScheduler := &scheduler.DefaultReminderScheduler{
		Docs:       docRepo,
		Owners:     ownRepo,
		Dispatcher: dispatcher,
	}

	// Daily reminder trigger.
	cronRunner, err := reminderCron.StartReminderCron(reminderScheduler)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder cron: %v", err)
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Document:  handlers.NewDocumentHandler(documentService),
		Extract:   handlers.NewExtractHandler(extractionService),
		Scheduler: handlers.NewSchedulerHandler(reminderScheduler),
		Owner:     handlers.NewOwnerHandler(ownerService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	cronCtx := cronRunner.Stop()
	<-cronCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to close MongoDB connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
