package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahogberg/handymate-dashboard-sub000/config"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/api/handler"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/api/middleware"
	"github.com/Ahogberg/handymate-dashboard-sub000/internal/model"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/jwt"
	"github.com/Ahogberg/handymate-dashboard-sub000/pkg/redis"
)

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	elevated := middleware.RoleAuth(model.RoleOwner, model.RoleAdmin)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth module (unauthenticated)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", middleware.RateLimit(rdb, 30, time.Minute), h.Auth.Refresh)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// roster module
			roster := authorized.Group("/roster")
			{
				roster.GET("", h.Roster.List)
				roster.PUT("/:id/color", h.Roster.UpdateColor) // self or elevated, checked in handler
			}

			// schedule module
			schedule := authorized.Group("/schedule")
			{
				schedule.GET("/window", h.Schedule.GetWindow)
				schedule.GET("/conflicts", h.Schedule.CheckConflicts)
				schedule.GET("/entries", h.Schedule.ListEntries)
				schedule.POST("/entries", h.Schedule.CreateEntry)
				schedule.GET("/entries/:id", h.Schedule.GetEntry)
				schedule.PUT("/entries/:id", h.Schedule.UpdateEntry)
				schedule.DELETE("/entries/:id", h.Schedule.DeleteEntry)
			}

			// time-off module
			timeOff := authorized.Group("/time-off")
			{
				timeOff.POST("", h.TimeOff.Submit)
				timeOff.GET("", h.TimeOff.List)
				timeOff.POST("/:id/decision", elevated, h.TimeOff.Decide)
			}

			// external sync module
			sync := authorized.Group("/sync")
			{
				sync.GET("/status", h.Sync.Status)
				sync.POST("/trigger", elevated, h.Sync.Trigger)
			}

			// utilization module
			utilization := authorized.Group("/utilization")
			{
				utilization.GET("", h.Utilization.GetReport)
				utilization.GET("/export", h.Utilization.Export)
			}

			// settings module
			settings := authorized.Group("/settings")
			{
				settings.GET("", h.Settings.Get)
				settings.PUT("", elevated, h.Settings.Update)
			}
		}
	}

	return r
}
