package main

import (
	"log"
	"os"

	api "btcpulse/cmd/btcpulse"
	"btcpulse/conf"
	icache "btcpulse/internal/cache"
	"btcpulse/internal/history"
	"btcpulse/internal/middleware"
	"btcpulse/pkg/cache"
	"btcpulse/pkg/logger"
)

// BTC行情监控面板服务入口
//
// 测试
//
// curl http://localhost:5050/api/dashboard
// curl "http://localhost:5050/api/history/ahr999?days=30"
// curl -X POST http://localhost:5050/api/refresh

func main() {
	// 加载配置文件
	configPath := os.Getenv("BTCPULSE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := conf.LoadConfig(configPath); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.Init(appCfg.Log)
	defer logger.Sync()

	// 初始化历史库
	store, err := history.Open(appCfg.History.DBPath)
	if err != nil {
		log.Fatalf("Failed to open history store: %v", err)
	}

	// redis可选：连不上就退化为纯内存快照，不影响主功能
	snaps := initSnapshotCache(appCfg)

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srvRouter, stopEngine := api.InitRouter(store, snaps)

	srv.RegisterOnShutdown(func() {
		stopEngine()
		cache.CloseRedis()
	})
	srv.Run(middleware.NewMiddleware(), srvRouter)
}

func initSnapshotCache(appCfg conf.Config) (snaps *icache.SnapshotCache) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("redis不可用，快照缓存退化为纯内存", logger.Pair("error", r))
			snaps = nil
		}
	}()
	cache.InitRedis(appCfg.Redis)
	return icache.NewSnapshotCache(cache.GetRedisClient(), appCfg.Engine.CacheTTL)
}
