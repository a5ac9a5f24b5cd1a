package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/suivi-dev/suivi/internal/authz"
	"github.com/suivi-dev/suivi/internal/config"
	"github.com/suivi-dev/suivi/internal/handlers"
	"github.com/suivi-dev/suivi/internal/middleware"
)

// SetupRouter wires every route with its authorization gate. Reads are open
// to all roles, writes to admin and user, account management to admin only.
func SetupRouter(cfg *config.Config, database *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour

	authHandler := handlers.NewAuthHandler(database, sessionTTL)
	projectHandler := handlers.NewProjectHandler(database)
	conventionHandler := handlers.NewConventionHandler(database)
	partnerHandler := handlers.NewPartnerHandler(database)
	projectPartnerHandler := handlers.NewProjectPartnerHandler(database)
	conventionProjectHandler := handlers.NewConventionProjectHandler(database)
	advanceHandler := handlers.NewFinancialAdvanceHandler(database)
	userHandler := handlers.NewUserHandler(database, cfg.Security.BcryptCost)
	auditLogHandler := handlers.NewAuditLogHandler(database)

	read := middleware.RequireOperation(authz.OpRead)
	write := middleware.RequireOperation(authz.OpWrite)
	manage := middleware.RequireOperation(authz.OpManageUsers)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/user", middleware.Authenticate(database), authHandler.Me)
		}

		protected := api.Group("", middleware.Authenticate(database), middleware.Audit(database))
		{
			projects := protected.Group("/projects")
			{
				projects.GET("", read, projectHandler.List)
				projects.POST("", write, projectHandler.Create)
				projects.GET("/:id", read, projectHandler.Get)
				projects.PUT("/:id", write, projectHandler.Update)
				projects.DELETE("/:id", write, projectHandler.Delete)

				// joined reads
				projects.GET("/:id/partners", read, projectHandler.ListPartners)
				projects.GET("/:id/conventions", read, projectHandler.ListConventions)
				projects.GET("/:id/financial-advances", read, projectHandler.ListAdvances)

				projects.POST("/:id/financial-advances", write, advanceHandler.Create)
			}

			conventions := protected.Group("/conventions")
			{
				conventions.GET("", read, conventionHandler.List)
				conventions.POST("", write, conventionHandler.Create)
				conventions.GET("/:id", read, conventionHandler.Get)
				conventions.PUT("/:id", write, conventionHandler.Update)
				conventions.DELETE("/:id", write, conventionHandler.Delete)
				conventions.GET("/:id/projects", read, conventionHandler.ListProjects)
			}

			partners := protected.Group("/partners")
			{
				partners.GET("", read, partnerHandler.List)
				partners.POST("", write, partnerHandler.Create)
				partners.GET("/:id", read, partnerHandler.Get)
				partners.PUT("/:id", write, partnerHandler.Update)
				partners.DELETE("/:id", write, partnerHandler.Delete)
			}

			projectPartners := protected.Group("/project-partners")
			{
				projectPartners.POST("", write, projectPartnerHandler.Create)
				projectPartners.PUT("/:id", write, projectPartnerHandler.Update)
				projectPartners.DELETE("/:id", write, projectPartnerHandler.Delete)
			}

			conventionProjects := protected.Group("/convention-projects")
			{
				conventionProjects.POST("", write, conventionProjectHandler.Create)
				conventionProjects.DELETE("/:id", write, conventionProjectHandler.Delete)
			}

			advances := protected.Group("/financial-advances")
			{
				advances.PUT("/:id", write, advanceHandler.Update)
				advances.DELETE("/:id", write, advanceHandler.Delete)
			}

			protected.GET("/programmes", read, handlers.ListProgrammes)

			users := protected.Group("/users", manage)
			{
				users.GET("", userHandler.List)
				users.POST("", userHandler.Create)
				users.GET("/:id", userHandler.Get)
				users.PUT("/:id", userHandler.Update)
				users.DELETE("/:id", userHandler.Delete)
			}

			protected.GET("/audit-logs", manage, auditLogHandler.List)
		}
	}

	return r
}
