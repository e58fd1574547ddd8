package routes

import (
	"net/http"
	"time"

	"clinicdesk/handlers"
	"clinicdesk/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational endpoints.
func RegisterAssistantRoutes(r *gin.Engine, ah *handlers.AssistantHandler) {
	api := r.Group("/api/assistant")
	{
		api.POST("/chat", ah.ChatHandler)
		api.GET("/slots/next", ah.NextSlotHandler)
		api.DELETE("/session/:sessionID", ah.EndSessionHandler)
	}
}

// RegisterAppointmentRoutes registers appointment read endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, apptHandler *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.GET("", apptHandler.ListAppointmentsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ah *handlers.AssistantHandler, apptHandler *handlers.AppointmentHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r, ah)
	RegisterAppointmentRoutes(r, apptHandler)
	RegisterHealthRoute(r)
}
