package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"societyhub/config"
	"societyhub/handlers"
	"societyhub/metrics"
	"societyhub/middleware"
	"societyhub/store"
)

func SetupRouter(admins store.AdminStore) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(metrics.Middleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8080"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimitMiddleware())

	router.GET("/metrics", metrics.Handler())

	rl := config.Global.RateLimit
	publicLimit := middleware.PublicRateLimitMiddleware(rl.PublicPerSecond, rl.PublicBurst)

	// Public routes
	router.POST("/api/auth/register", publicLimit, handlers.Register)
	router.POST("/api/auth/login", publicLimit, handlers.Login)
	router.GET("/api/posts", handlers.ListPosts)
	router.GET("/api/posts/:id", handlers.GetPost)
	router.GET("/api/posts/:id/comments", handlers.ListComments)
	router.GET("/api/events", handlers.ListEvents)
	router.GET("/api/events/:id", handlers.GetEvent)
	router.POST("/api/events/signup", publicLimit, handlers.EventSignup)

	// Member routes
	member := router.Group("/api")
	member.Use(middleware.JWTAuthMiddleware())
	member.GET("/me", handlers.GetMe)
	member.POST("/posts", handlers.SubmitPost)
	member.POST("/posts/:id/like", handlers.LikePost)
	member.POST("/posts/:id/comments", handlers.CreateComment)
	member.POST("/comments/:commentId/like", handlers.LikeComment)

	// Admin back-office
	admin := router.Group("/api/admin")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin(admins))

	admin.GET("/posts", handlers.AdminListPosts)
	admin.POST("/posts/:id/approve", handlers.ApprovePost)
	admin.POST("/posts/:id/reject", handlers.RejectPost)
	admin.PUT("/posts/:id", handlers.EditPost)
	admin.DELETE("/posts/:id", handlers.DeletePost)
	admin.DELETE("/comments/:id", handlers.AdminDeleteComment)

	admin.POST("/events", handlers.AdminCreateEvent)
	admin.GET("/events", handlers.AdminListEvents)
	admin.PUT("/events/:id", handlers.AdminUpdateEvent)
	admin.DELETE("/events/:id", handlers.AdminDeleteEvent)
	admin.POST("/events/:id/image", handlers.AdminUploadEventImage)
	admin.GET("/events/:id/signups", handlers.AdminListSignups)
	admin.PATCH("/events/:id/signups/:signupId", handlers.AdminPatchSignup)

	admin.GET("/users", handlers.AdminListUsers)
	admin.GET("/users/:id/posts", handlers.AdminUserPosts)
	admin.GET("/users/:id/comments", handlers.AdminUserComments)
	admin.POST("/users/:id/restrict", handlers.RestrictUser)
	admin.POST("/users/:id/unrestrict", handlers.UnrestrictUser)
	admin.POST("/users/:id/sync", handlers.SyncUser)
	admin.POST("/users/sync", handlers.SyncAllUsers)
	admin.GET("/audit-logs", handlers.AdminAuditLog)

	router.NoRoute(func(c *gin.Context) {
		if len(c.Request.URL.Path) >= 4 && c.Request.URL.Path[:4] == "/api" {
			c.JSON(404, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
