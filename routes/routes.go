package routes

import (
	"time"

	"salonflow/handlers"
	"salonflow/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the public catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, ch *handlers.CatalogHandler) {
	api := r.Group("/api")
	{
		api.GET("/services", ch.ListServices)
	}
}

// RegisterBookingRoutes sets up the endpoints for the booking wizard. Session
// creation is open; every other operation requires the token minted at start.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", bh.StartSession)

		protected := bookingGroup.Group("/session/:sessionID")
		protected.Use(middleware.SessionAuthMiddleware())
		protected.GET("", bh.GetSession)
		protected.DELETE("", bh.ResetSession)

		protected.PUT("/services", bh.SetServices)
		protected.POST("/services/:serviceID", bh.AddService)
		protected.DELETE("/services/:serviceID", bh.RemoveService)
		protected.PUT("/datetime", bh.SetDateTime)
		protected.PUT("/details", bh.SetDetails)

		protected.POST("/next", bh.Next)
		protected.POST("/previous", bh.Previous)
		protected.POST("/step/:step", bh.GoToStep)

		protected.GET("/calendar", bh.Calendar)
		protected.GET("/availability", bh.Availability)
		protected.GET("/summary", bh.PaymentSummary)
		protected.POST("/confirm", bh.Confirm)
	}
}

// RegisterHealthRoutes registers liveness and readiness endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", handlers.Healthz)
	r.GET("/readyz", handlers.Readyz)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.CatalogHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCatalogRoutes(r, ch)
	RegisterBookingRoutes(r, bh)
	RegisterHealthRoutes(r)
}
