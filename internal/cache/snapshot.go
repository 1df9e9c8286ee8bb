// Package cache 最新快照的redis缓存。redis不可用时只记日志不报错，
// 引擎内存里的快照永远是权威数据，缓存只为进程重启后少拉一轮外部接口
package cache

import (
	"context"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"btcpulse/internal/consts"
	"btcpulse/internal/model"
	"btcpulse/pkg/logger"
)

type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

// Store 序列化快照写入redis，带TTL
func (c *SnapshotCache) Store(ctx context.Context, snap *model.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		logger.Error("序列化快照失败", logger.Pair("error", err))
		return
	}
	if err := c.rdb.Set(ctx, consts.SnapshotCacheKey, data, c.ttl).Err(); err != nil {
		logger.Warn("快照写入redis失败，降级为纯内存", logger.Pair("error", err))
	}
}

// Load 从redis取回未过期的快照，没有则返回nil
func (c *SnapshotCache) Load(ctx context.Context) *model.Snapshot {
	data, err := c.rdb.Get(ctx, consts.SnapshotCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("快照读取redis失败", logger.Pair("error", err))
		}
		return nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		logger.Warn("快照缓存反序列化失败，忽略", logger.Pair("error", err))
		return nil
	}
	return &snap
}
