package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"rehabus/internal/clock"
	intconfig "rehabus/internal/config"
	"rehabus/internal/geo"
	h "rehabus/internal/http/handlers"
	"rehabus/internal/http/middleware"
	"rehabus/internal/repositories"
	"rehabus/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	loc, err := time.LoadLocation(env.Timezone)
	if err != nil {
		log.Printf("warning: unknown timezone %q, falling back to CST+8: %v", env.Timezone, err)
		loc = time.FixedZone("CST", 8*3600)
	}

	reservationSvc := &services.ReservationService{
		Reservations: repositories.ReservationRepository{},
		Buses:        repositories.BusRepository{},
		Distance:     geo.NewProvider(geo.NewClient(env.GeoBaseURL, env.GeoAPIKey)),
		Clock:        clock.Wall{Loc: loc},
		Loc:          loc,
		SlotMinutes:  env.SlotMinutes,
	}
	reservations := h.ReservationHandler{Svc: reservationSvc, Loc: loc}
	auth := h.AuthHandler{Members: repositories.MemberRepository{}, Secret: []byte(env.JWTSecret)}

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
		api.GET("/db-check", h.DBCheck(env))

		// Auth
		authGroup := api.Group("/auth")
		authGroup.POST("/login", auth.Login)
		authGroup.POST("/register", auth.Register)

		// Rehabilitation bus
		bus := api.Group("/bus")
		bus.POST("/quote", reservations.Quote)
		bus.GET("/reservations", reservations.List)
		bus.GET("/reservations/:id", reservations.Get)
		bus.POST("/reservations", reservations.Create)
		bus.PUT("/reservations/:id", reservations.Update)
		bus.PUT("/reservations/:id/cancel", reservations.Cancel)
		bus.PUT("/reservations/:id/complete", reservations.Complete)
		bus.DELETE("/reservations/:id", reservations.Delete)
		bus.GET("/reservations/:id/receipt", reservations.Receipt)

		// Fleet
		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.GET("/:id", h.GetBusByID)
		buses.POST("", h.CreateBus)
		buses.PUT("/:id", h.UpdateBus)
		buses.DELETE("/:id", h.DeleteBus)

		// Members
		members := api.Group("/members")
		members.GET("", h.GetMembers)
		members.PUT("/:id", h.UpdateMember)
		members.DELETE("/:id", h.DeleteMember)

		// Activities
		activities := api.Group("/activities")
		activities.GET("", h.GetActivities)
		activities.POST("", h.CreateActivity)
		activities.PUT("/:id", h.UpdateActivity)
		activities.DELETE("/:id", h.DeleteActivity)
		activities.POST("/:id/signup", middleware.AuthRequired([]byte(env.JWTSecret)), h.SignUpActivity)

		// Caregiver appointments
		care := api.Group("/care-appointments")
		care.GET("", h.GetCareAppointments)
		care.POST("", h.CreateCareAppointment)
		care.PUT("/:id", h.UpdateCareAppointment)
		care.DELETE("/:id", h.DeleteCareAppointment)

		// Device shop
		shop := api.Group("/shop")
		shop.GET("/items", h.GetShopItems)
		shop.POST("/items", h.CreateShopItem)
		shop.PUT("/items/:id", h.UpdateShopItem)
		shop.DELETE("/items/:id", h.DeleteShopItem)

		// Zones
		api.GET("/zones", h.GetZones)
	}

	return r
}
