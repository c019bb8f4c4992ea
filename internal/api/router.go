package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lfms6164/digital-folder-api/internal/api/handlers"
	"github.com/lfms6164/digital-folder-api/internal/auth"
	"github.com/lfms6164/digital-folder-api/internal/config"
	"github.com/lfms6164/digital-folder-api/internal/service"
	"github.com/lfms6164/digital-folder-api/internal/storage"
	"github.com/lfms6164/digital-folder-api/internal/store"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, db *gorm.DB, blob storage.Client) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware(cfg.CORS.Origins))

	// Wire services
	st := store.New(db)
	authenticator := auth.New(st, cfg.Auth)
	users := service.NewUserService(st, authenticator, cfg.Server.Env)
	groups := service.NewGroupService(st)
	tags := service.NewTagService(st, groups)
	projects := service.NewProjectService(st, blob, tags)
	tickets := service.NewTicketService(st, blob)

	groupHandler := handlers.NewGroupHandler(groups, users)
	tagHandler := handlers.NewTagHandler(tags, users)
	projectHandler := handlers.NewProjectHandler(projects, users)
	ticketHandler := handlers.NewTicketHandler(tickets, users)
	uploadHandler := handlers.NewUploadHandler(blob)

	// Public routes
	public := router.Group("/api")
	{
		public.GET("/health", handlers.HealthCheck)
		public.POST("/auth/login", handlers.Login(users))
	}

	// Protected routes (require authentication)
	protected := router.Group("/api")
	protected.Use(authenticator.Middleware())
	{
		protected.GET("/auth/me", handlers.CurrentUser(users))

		registerEntity(protected, "groups", entityHandlers{
			list: groupHandler.List, get: groupHandler.Get,
			create: groupHandler.Create, patch: groupHandler.Patch, del: groupHandler.Delete,
		})
		registerEntity(protected, "tags", entityHandlers{
			list: tagHandler.List, get: tagHandler.Get,
			create: tagHandler.Create, patch: tagHandler.Patch, del: tagHandler.Delete,
		})
		registerEntity(protected, "projects", entityHandlers{
			list: projectHandler.List, get: projectHandler.Get,
			create: projectHandler.Create, patch: projectHandler.Patch, del: projectHandler.Delete,
		})
		registerEntity(protected, "tickets", entityHandlers{
			list: ticketHandler.List, get: ticketHandler.Get,
			create: ticketHandler.Create, patch: ticketHandler.Patch, del: ticketHandler.Delete,
		})

		protected.POST("/storage/upload/:folder", auth.RequireWriter(), uploadHandler.Upload)
	}

	slog.Info("API router initialized", "mode", cfg.Server.Mode)
	return router
}

type entityHandlers struct {
	list, get, create, patch, del gin.HandlerFunc
}

// registerEntity mounts the uniform per-entity route pattern. Mutations are
// gated behind the writer check; viewers are read-only.
func registerEntity(rg *gin.RouterGroup, prefix string, h entityHandlers) {
	entity := rg.Group("/" + prefix)
	entity.GET("/list", h.list)
	entity.GET("/:id", h.get)
	entity.POST("/create", auth.RequireWriter(), h.create)
	entity.PATCH("/patch/:id", auth.RequireWriter(), h.patch)
	entity.DELETE("/delete/:id", auth.RequireWriter(), h.del)
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		slog.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware adds CORS headers for the configured origins
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
