// File: clinicdesk/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicdesk/config"
	"clinicdesk/database"
	appointmentRepo "clinicdesk/database/repository/appointment"
	"clinicdesk/handlers"
	"clinicdesk/middleware"
	"clinicdesk/routes"
	"clinicdesk/services/assistant"
	"clinicdesk/services/booking"
	ai "clinicdesk/services/intelligence"
	"clinicdesk/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	// services.
	policy := config.PracticePolicy()
	bookingService := booking.NewDefaultBookingService(apptRepo, policy)

	sessionStore := assistant.NewRedisSessionStore(utils.GetSessionCacheClient(), config.SessionTTL())
	model := ai.NewGeminiModel(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	assistantService := assistant.NewDefaultAssistantService(
		model,
		sessionStore,
		bookingService,
		policy,
		config.TurnTimeout(),
	)

	assistantHandler := handlers.NewAssistantHandler(assistantService, bookingService)
	appointmentHandler := handlers.NewAppointmentHandler(apptRepo)

	// Register routes.
	routes.RegisterRoutes(router, assistantHandler, appointmentHandler)

	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
