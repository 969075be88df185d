package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "carbook/internal/config"
	h "carbook/internal/http/handlers"
	"carbook/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)
	secret := []byte(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Static catalog + quick estimator
		catalog := api.Group("/catalog")
		catalog.GET("/vehicles", h.GetVehicles)
		catalog.GET("/airports", h.GetAirports)
		catalog.GET("/addons", h.GetAddOnPrices)
		api.POST("/estimate", h.GetQuickEstimate)

		// Four-step booking flow; works anonymously, persists for owners
		flow := api.Group("/booking", middleware.AuthOptional(secret))
		flow.POST("/trip", h.SubmitTripStep)
		flow.POST("/vehicle", h.ChooseVehicleStep)
		flow.POST("/personal", h.SubmitPersonalStep)
		flow.POST("/payment", h.ChoosePaymentStep)
		flow.POST("/finalize", h.FinalizeBooking)

		// Server-side draft snapshots, owners only
		drafts := api.Group("/booking/draft", middleware.AuthRequired(secret))
		drafts.GET("", h.LoadDraft)
		drafts.PUT("", h.SaveDraft)
		drafts.DELETE("", h.DiscardDraft)

		// Reservations, owners only
		reservations := api.Group("/reservations", middleware.AuthRequired(secret))
		reservations.GET("", h.ListReservations)
		reservations.GET("/:id", h.GetReservation)
		reservations.PUT("/:id", h.UpdateReservation)
		reservations.PUT("/:id/cancel", h.CancelReservation)
		reservations.DELETE("/:id", h.DeleteReservation)
		reservations.GET("/:id/receipt", h.GetReservationReceipt)
	}

	h.SetRouter(r)
	return r
}
