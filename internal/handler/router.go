package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	restaurantHandler *api.RestaurantHandler,
	authMiddleware *middleware.AuthMiddleware,
	redisClient *redis.Client,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, cfg, authHandler, bookingHandler, restaurantHandler, authMiddleware, redisClient)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	restaurantHandler *api.RestaurantHandler,
	authMiddleware *middleware.AuthMiddleware,
	redisClient *redis.Client,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	rateLimited := middleware.NewRateLimitMiddleware(cfg.Redis, redisClient)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		restaurants := apiGroup.Group("/restaurants")
		{
			addRoutes(restaurants, []route{
				{Method: http.MethodGet, Path: "", Handler: restaurantHandler.ListRestaurants},
				{Method: http.MethodGet, Path: "/:id", Handler: restaurantHandler.GetRestaurant},
				{Method: http.MethodGet, Path: "/:id/menu", Handler: restaurantHandler.ListMenu},
				{Method: http.MethodGet, Path: "/:id/slots", Handler: restaurantHandler.ListSlots},
			})

			adminOnly := restaurants.Group("")
			adminOnly.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
			addRoutes(adminOnly, []route{
				{Method: http.MethodPost, Path: "/:id/slots/generate", Handler: restaurantHandler.GenerateSlots},
			})
		}

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/dietary-preferences", Handler: restaurantHandler.ListDietaryPreferences},
		})

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking, Mw: []gin.HandlerFunc{rateLimited}},
				{Method: http.MethodGet, Path: "/my", Handler: bookingHandler.ListMyBookings},
				{Method: http.MethodPut, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
			})

			adminOnly := bookings.Group("")
			adminOnly.Use(authMiddleware.RequireAdmin())
			addRoutes(adminOnly, []route{
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/pending/count", Handler: bookingHandler.PendingCount},
				{Method: http.MethodPut, Path: "/:id/approve", Handler: bookingHandler.ApproveBooking},
				{Method: http.MethodPut, Path: "/:id/reject", Handler: bookingHandler.RejectBooking},
				{Method: http.MethodPut, Path: "/:id/complete", Handler: bookingHandler.CompleteBooking},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
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
