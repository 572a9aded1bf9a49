package routes

import (
	"github.com/gin-gonic/gin"

	actions "github.com/phillip/autoclub-go/actions"
	auth "github.com/phillip/autoclub-go/auth"
	controllers "github.com/phillip/autoclub-go/controllers"
	middleware "github.com/phillip/autoclub-go/middleware"
	queries "github.com/phillip/autoclub-go/queries"
)

// Deps is everything the handlers need.
type Deps struct {
	Actions       *actions.Actions
	Queries       *queries.Queries
	Authenticator *auth.Authenticator
	Sessions      *auth.SessionManager
	Cookie        controllers.SessionCookie
	DB            controllers.Pinger
}

func SetupRoutes(r *gin.Engine, d Deps) {
	api := r.Group("/api")
	api.Use(middleware.Session(d.Sessions, d.Cookie.Name))

	// public
	api.GET("/health", controllers.Health(d.DB))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", controllers.Signup(d.Authenticator))
		authGroup.POST("/login", controllers.Login(d.Authenticator, d.Sessions, d.Cookie))
		authGroup.POST("/callback/credentials", controllers.Login(d.Authenticator, d.Sessions, d.Cookie))
		authGroup.POST("/logout", controllers.Logout(d.Cookie))
		authGroup.GET("/session", controllers.GetSession(d.Queries))
	}

	member := middleware.RequireSession()
	admin := middleware.RequireAdmin()

	// Events
	events := api.Group("/events")
	{
		events.GET("", controllers.ListUpcomingEvents(d.Queries))
		events.GET("/:id", controllers.GetEvent(d.Queries))
		events.GET("/:id/tickets", controllers.GetEventTickets(d.Queries))
		events.POST("", admin, controllers.CreateEvent(d.Actions))
		events.PUT("/:id", admin, controllers.UpdateEvent(d.Actions))
		events.DELETE("/:id", admin, controllers.DeleteEvent(d.Actions))
	}

	// Garages
	garages := api.Group("/garages")
	{
		garages.GET("", controllers.ListGarages(d.Queries))
		garages.GET("/:id", controllers.GetGarage(d.Queries))
		garages.POST("", admin, controllers.CreateGarage(d.Actions))
		garages.PUT("/:id", admin, controllers.UpdateGarage(d.Actions))
		garages.DELETE("/:id", admin, controllers.DeleteGarage(d.Actions))
	}

	// Community messages
	messages := api.Group("/messages")
	{
		messages.GET("", controllers.ListMessages(d.Queries))
		messages.POST("", member, controllers.SendMessage(d.Actions))
		messages.POST("/:id/like", member, controllers.LikeMessage(d.Actions))
		messages.DELETE("/:id", admin, controllers.DeleteMessage(d.Actions))
	}

	// Site configuration
	api.GET("/background", controllers.GetBackground(d.Queries))
	api.POST("/background", admin, controllers.UpdateBackground(d.Actions))
	api.GET("/event-banner", controllers.GetEventBanner(d.Queries))
	api.POST("/event-banner", admin, controllers.UpdateEventBanner(d.Actions))

	adminGroup := api.Group("/admin")
	adminGroup.Use(admin)
	{
		adminGroup.GET("/events", controllers.ListAllEvents(d.Queries))
		adminGroup.GET("/garages", controllers.ListAdminGarages(d.Queries))
	}
}
