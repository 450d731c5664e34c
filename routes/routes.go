package routes

import (
	"time"

	"infinitewash/handlers"
	"infinitewash/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterBookingRoutes sets up the endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.POST("/session", hb.StartSession)
		bookingGroup.GET("/session/:id", hb.GetSession)
		bookingGroup.DELETE("/session/:id", hb.EndSession)
		bookingGroup.PATCH("/session/:id", hb.UpdateSession)
		bookingGroup.GET("/session/:id/slots", hb.AvailableSlots)
		bookingGroup.POST("/session/:id/submit", hb.SubmitBooking)
		bookingGroup.POST("/session/:id/payment/confirm", hb.ConfirmPayment)
		bookingGroup.POST("/session/:id/back", hb.BackToSelecting)
		bookingGroup.POST("/session/:id/book-another", hb.BookAnother)
		bookingGroup.GET("/session/:id/receipt", hb.GetReceipt)
	}
}

// RegisterPublicRoutes registers the catalog, chat and tracking endpoints.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/catalog", hb.GetCatalog)
		api.GET("/pricing", hb.GetPricing)
		api.POST("/chat", hb.ChatReply)
		api.GET("/chat/quick-replies", hb.ChatQuickReplies)
		api.GET("/tracking/ws", hb.TrackingStream)
	}
}

// RegisterSubscriptionRoutes sets up recurring plans and the newsletter signup.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	sh := hb.SubscriptionHandler
	if sh == nil {
		return
	}
	subGroup := r.Group("/api/subscriptions")
	{
		subGroup.GET("/plans", sh.Plans)
		subGroup.GET("/quote", sh.Quote)
		subGroup.POST("", sh.Create)
		subGroup.GET("/checkout/:sessionId", sh.CheckoutSession)
	}
	r.POST("/api/subscribe", sh.Newsletter)
}

// RegisterAdminRoutes sets up endpoints for admin operations.
// They are skipped when no admin service is configured.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.AdminHandler == nil {
		return
	}
	adminGroup := r.Group("/api/admin")
	adminGroup.POST("/login", hb.AdminHandler.Login)

	protected := adminGroup.Group("")
	protected.Use(middleware.JWTAuthAdminMiddleware(hb.JWTSecret))
	{
		protected.GET("/dashboard-stats", hb.AdminHandler.DashboardStats)

		protected.GET("/driver-stats", hb.AdminHandler.DriverStats)
		protected.GET("/customers", hb.AdminHandler.ListCustomers)

		protected.GET("/drivers", hb.AdminHandler.ListDrivers)
		protected.POST("/drivers", hb.AdminHandler.CreateDriver)
		protected.GET("/drivers/:id", hb.AdminHandler.GetDriver)
		protected.PUT("/drivers/:id", hb.AdminHandler.UpdateDriver)
		protected.DELETE("/drivers/:id", hb.AdminHandler.DeleteDriver)

		protected.GET("/bookings", hb.AdminHandler.ListBookings)
		protected.PUT("/bookings/:id/assign-driver", hb.AdminHandler.AssignDriver)
		protected.PUT("/bookings/:id/update-status", hb.AdminHandler.UpdateBookingStatus)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
