package routes

import (
	"github.com/gin-gonic/gin"

	punchhandlers "timeclock/internal/interfaces/http/handlers/punchclock"
	"timeclock/internal/interfaces/http/middleware"
	"timeclock/internal/shared/authorization"
)

type PunchRouteConfig struct {
	PunchHandler   *punchhandlers.PunchClockHandler
	AuthMiddleware *middleware.AuthMiddleware
	MinAppVersion  string
}

func SetupPunchRoutes(engine *gin.Engine, config *PunchRouteConfig) {
	punch := engine.Group("/api/v1/punch")
	punch.Use(config.AuthMiddleware.RequireAuth())
	punch.Use(middleware.RequireMinAppVersion(config.MinAppVersion))
	{
		// Collection operations
		punch.POST("", config.PunchHandler.SubmitPunch)
		punch.POST("/token", config.PunchHandler.IssueToken)
		punch.GET("/state", config.PunchHandler.GetCurrentState)
		punch.GET("/timesheet", config.PunchHandler.GetWeeklyRows)

		// Agency reporting
		punch.GET("/events",
			authorization.RequireReportAccess(),
			config.PunchHandler.ListEvents)
		punch.GET("/exceptions/drift",
			authorization.RequireReportAccess(),
			config.PunchHandler.ListDriftExceptions)

		// Parameterized routes come last
		punch.POST("/events/:id/signature", config.PunchHandler.AttachSignature)
	}
}
