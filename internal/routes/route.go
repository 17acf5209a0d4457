package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/grooviti/internal/container"
	"github.com/joshua-takyi/grooviti/internal/handlers"
	"github.com/joshua-takyi/grooviti/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes mounts the Grooviti backend contract on a gin engine.
func SetupRoutes(b *container.Backend) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     b.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(b.Logger))
	r.Use(middleware.Metrics(b.Registry))
	r.Use(middleware.ErrorHandler(b.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(b.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "grooviti-devserver",
			})
		})

		api.GET("/event/list", handlers.ListEvents(b.EventService))
		api.GET("/event/:id", handlers.GetEvent(b.EventService))
		api.GET("/notifications", handlers.ListNotifications(b.NotificationService))

		api.POST("/user/register", handlers.Register(b.UserService))
		api.POST("/user/login", handlers.Login(b.UserService))
		api.POST("/organizer/register", handlers.RegisterOrganizer(b.OrganizerService))
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(b.UserService.Tokens(), b.Logger))
	{
		protected.GET("/user/profile", handlers.Profile(b.UserService))
		protected.POST("/booking/ticket", handlers.CreateTicketBooking(b.BookingService))
	}

	return r
}
