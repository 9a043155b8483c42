package routes

import (
	"net/http"
	"time"

	"datekeeper/handlers"
	"datekeeper/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the routes need.
type HandlerBundle struct {
	Document  *handlers.DocumentHandler
	Extract   *handlers.ExtractHandler
	Scheduler *handlers.SchedulerHandler
	Owner     *handlers.OwnerHandler
}

// RegisterDocumentRoutes registers document CRUD endpoints.
func RegisterDocumentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/documents")
	{
		api.POST("", hb.Document.CreateDocumentHandler)
		api.GET("/:id", hb.Document.GetDocumentHandler)
		api.PUT("/:id", hb.Document.UpdateDocumentHandler)
		api.DELETE("/:id", hb.Document.DeleteDocumentHandler)
		api.GET("/owner/:ownerID", hb.Document.ListDocumentsHandler)
	}
}

// RegisterExtractionRoutes registers the OCR text analysis endpoint.
func RegisterExtractionRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/ocr")
	{
		api.Use(middleware.ExtractRateLimit())
		api.POST("/extract", hb.Extract.ExtractExpiryHandler)
	}
}

// RegisterSchedulerRoutes registers the manual reminder trigger.
func RegisterSchedulerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/scheduler")
	{
		api.POST("/run", hb.Scheduler.RunNowHandler)
	}
}

// RegisterOwnerRoutes registers owner settings endpoints.
func RegisterOwnerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/owners")
	{
		api.GET("/:id", hb.Owner.GetOwnerHandler)
		api.PUT("/:id/settings", hb.Owner.UpdateSettingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm DateKeeper"})
	})
}

// RegisterRoutes wires up all endpoints on the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterDocumentRoutes(r, hb)
	RegisterExtractionRoutes(r, hb)
	RegisterSchedulerRoutes(r, hb)
	RegisterOwnerRoutes(r, hb)
	RegisterHealthRoute(r)
}
