package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"churchconnect/internal/authz"
	"churchconnect/internal/handlers"
	"churchconnect/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
	passwordHandler *handlers.PasswordHandler,
	addressHandler *handlers.AddressHandler,
	churchHandler *handlers.ChurchHandler,
	bookingHandler *handlers.BookingHandler,
	feedHandler *handlers.FeedHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
) *gin.Engine {

	// ---- public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/login", authHandler.Login)
	r.POST("/refresh", authHandler.RefreshToken)
	r.POST("/register", userHandler.Register)
	r.POST("/register/confirm", verifyHandler.Confirm)
	r.POST("/register/resend", verifyHandler.Resend)

	r.POST("/auth/code/request", authHandler.RequestLoginCode)
	r.POST("/auth/code/confirm", authHandler.ConfirmLoginCode)
	r.POST("/auth/oauth/google", authHandler.OAuthGoogle)

	r.POST("/password/forgot", passwordHandler.Forgot)
	r.POST("/password/reset", passwordHandler.Reset)

	// PSGC address dropdowns
	address := r.Group("/address")
	{
		address.GET("/regions", addressHandler.Regions)
		address.GET("/regions/:region/provinces", addressHandler.Provinces)
		address.GET("/provinces/:province/cities", addressHandler.CitiesMunicipalities)
		address.GET("/cities/:city/barangays", addressHandler.Barangays)
	}

	// ---- protected
	r.Use(middleware.AuthMiddleware())

	// USERS
	users := r.Group("/users")
	{
		users.GET("/me", userHandler.Me)
		users.PUT("/me", userHandler.UpdateProfile)
		users.POST("/me/password", userHandler.ChangePassword)
	}

	// CHURCHES
	churches := r.Group("/churches")
	{
		churches.GET("/", churchHandler.List)
		churches.POST("/", churchHandler.Create)
		churches.GET("/mine", churchHandler.Mine)
		churches.GET("/:id", churchHandler.Get)
		churches.PUT("/:id", churchHandler.Update)

		churches.GET("/:id/services", churchHandler.ListServices)
		churches.POST("/:id/services", churchHandler.CreateService)

		churches.GET("/:id/closures", churchHandler.ListClosures)
		churches.POST("/:id/closures", churchHandler.SetClosure)

		churches.GET("/:id/bookings", bookingHandler.ListForChurch)
		churches.GET("/:id/conflicts", bookingHandler.Conflicts)

		churches.GET("/:id/posts", feedHandler.ChurchPosts)
		churches.POST("/:id/follow", feedHandler.Follow)
		churches.DELETE("/:id/follow", feedHandler.Unfollow)
		churches.GET("/:id/followers", feedHandler.FollowerCount)
	}

	// SERVICES (updates go through the service id directly)
	svcs := r.Group("/services")
	{
		svcs.PUT("/:service_id", churchHandler.UpdateService)
		svcs.DELETE("/:service_id", churchHandler.DeleteService)
	}

	// BOOKINGS
	bookings := r.Group("/bookings")
	{
		bookings.POST("/", bookingHandler.Create)
		bookings.GET("/mine", bookingHandler.Mine)
		bookings.GET("/:id", bookingHandler.Get)
		bookings.POST("/:id/status", bookingHandler.UpdateStatus)
		bookings.GET("/:id/confirmation", bookingHandler.Confirmation)
	}

	// FEED
	feed := r.Group("/feed")
	{
		feed.GET("/", feedHandler.Feed)
		feed.GET("/bookmarks", feedHandler.Bookmarks)
		feed.GET("/following", feedHandler.Following)
	}

	// POSTS
	posts := r.Group("/posts")
	{
		posts.POST("/", feedHandler.CreatePost)
		posts.GET("/:id", feedHandler.GetPost)
		posts.DELETE("/:id", feedHandler.DeletePost)
		posts.POST("/:id/like", feedHandler.Like)
		posts.DELETE("/:id/like", feedHandler.Unlike)
		posts.POST("/:id/bookmark", feedHandler.Bookmark)
		posts.DELETE("/:id/bookmark", feedHandler.Unbookmark)
	}

	// NOTIFICATIONS
	notifications := r.Group("/notifications")
	{
		notifications.GET("/", notificationHandler.List)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
	}

	// ADMIN (super admin only)
	admin := r.Group("/admin", middleware.RequireRoles(authz.RoleSuperAdmin))
	{
		admin.GET("/summary", adminHandler.Summary)
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/active", adminHandler.SetUserActive)
		admin.POST("/users/:id/role", adminHandler.SetUserRole)
		admin.POST("/churches/:id/approve", adminHandler.ApproveChurch)
		admin.POST("/churches/:id/deactivate", adminHandler.DeactivateChurch)
	}

	return r
}
