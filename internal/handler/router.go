package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"warehouse-booking/internal/domain/user"
	"warehouse-booking/internal/handler/api"
	"warehouse-booking/internal/handler/middleware"
	"warehouse-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Health      *api.HealthHandler
	Units       *api.UnitHandler
	Reservation *api.ReservationHandler
	Payment     *api.PaymentHandler
	Admin       *api.AdminHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, handlers Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, handlers, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler(cfg.Booking.RetryAfter))
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", h.Health.Check)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		units := apiGroup.Group("/units")
		addRoutes(units, []route{
			{Method: http.MethodGet, Path: "/:id", Handler: h.Units.Get},
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Units.Availability},
			{Method: http.MethodGet, Path: "/:id/quote", Handler: h.Units.Quote},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(authMiddleware.RequireAuth())
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: h.Reservation.Update},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Reservation.Cancel},
				{Method: http.MethodPost, Path: "/:id/payments", Handler: h.Payment.Record},
				{Method: http.MethodGet, Path: "/:id/payments", Handler: h.Payment.ListByReservation},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		addRoutes(payments, []route{
			{Method: http.MethodPost, Path: "/:id/complete", Handler: h.Payment.Complete},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth())
		addRoutes(admin, []route{
			{
				Method:  http.MethodPost,
				Path:    "/reservations/:id/complete",
				Handler: h.Admin.CompleteReservation,
				Mw:      []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleAdmin)},
			},
		})
	}
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
