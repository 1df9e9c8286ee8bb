package router

import (
	"github.com/gin-gonic/gin"

	"btcpulse/internal/handler/dashboard"
	"btcpulse/internal/handler/histapi"
	"btcpulse/internal/handler/ping"
	"btcpulse/internal/middleware"
)

type ApiRouter struct {
	dashboardHandler *dashboard.Handler
	historyHandler   *histapi.Handler
}

func NewApiRouter(dh *dashboard.Handler, hh *histapi.Handler) *ApiRouter {
	return &ApiRouter{dashboardHandler: dh, historyHandler: hh}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.GET("/ping", ping.Ping())

	base := g.Group("/api", middleware.NoCache())
	{
		base.GET("/dashboard", api.dashboardHandler.Dashboard())
		base.POST("/refresh", api.dashboardHandler.Refresh())
		base.GET("/history/:name", api.historyHandler.History())
	}
}
