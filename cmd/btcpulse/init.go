package api

import (
	"context"

	"btcpulse/conf"
	icache "btcpulse/internal/cache"
	"btcpulse/internal/datasource"
	"btcpulse/internal/engine"
	"btcpulse/internal/handler/dashboard"
	"btcpulse/internal/handler/histapi"
	"btcpulse/internal/history"
	"btcpulse/internal/router"
	"btcpulse/pkg/logger"
)

// InitRouter 装配全部组件并启动定时刷新，返回业务路由。
// 返回的CancelFunc在服务关停时结束引擎的后台协程
func InitRouter(store *history.Store, snaps *icache.SnapshotCache) (Router, context.CancelFunc) {
	appCfg := conf.AppConfig

	ds := datasource.NewClient(appCfg.Datasource)
	eng := engine.New(ds, store, snaps, appCfg.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	go eng.RunScheduled(ctx)
	// 起服后先算一轮，让第一个请求不用等
	go func() {
		if _, err := eng.Refresh(ctx); err != nil {
			logger.Error("首轮快照失败，等待下个周期", logger.Pair("error", err))
		}
	}()

	dh := dashboard.NewHandler(eng)
	hh := histapi.NewHandler(eng)

	return router.NewApiRouter(dh, hh), cancel
}
