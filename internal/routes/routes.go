package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"prepvio_backend/internal/config"
	"prepvio_backend/internal/handlers"
	"prepvio_backend/pkg/contextkeys"
	"prepvio_backend/ws"
)

// RegisterRoutes mounts the whole API under /api/v1 plus the websocket
// endpoint and a health check.
func RegisterRoutes(engine *gin.Engine, app *handlers.AppHandlers, wsHandler *ws.Handler) {
	engine.GET("/health", func(c *gin.Context) {
		if db, ok := c.Get(string(contextkeys.DBContextKey)); ok {
			if gdb, ok := db.(*gorm.DB); ok {
				sqlDB, err := gdb.DB()
				if err == nil {
					err = sqlDB.PingContext(c.Request.Context())
				}
				if err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
					return
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")
	{
		app.Auth.RegisterRoutes(api)
		app.User.RegisterRoutes(api)
		app.Employee.RegisterRoutes(api)
		app.Department.RegisterRoutes(api)
		app.Course.RegisterRoutes(api)
		app.Ticket.RegisterRoutes(api)
		app.Interview.RegisterRoutes(api)
		app.Payment.RegisterRoutes(api)
		app.Analytics.RegisterRoutes(api)
		app.Notification.RegisterRoutes(api)
		app.Calendar.RegisterRoutes(api)

		if wsHandler != nil {
			wsHandler.RegisterRoutes(api)
		}

		// Locally stored files (report PDFs) are served straight from
		// disk. S3 and R2 hand out absolute URLs instead.
		if cfg := config.GetConfig(); cfg != nil && cfg.Storage.Type == "local" {
			api.Static("/files", cfg.Storage.BasePath)
		}
	}
}
