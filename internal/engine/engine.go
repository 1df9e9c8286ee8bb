// Package engine 快照计算引擎：并发采集原始信号、逐指标评分、
// 加权聚合并落盘历史。任何单一数据源失败只降级对应指标，不中断整轮
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/multierr"

	"btcpulse/conf"
	"btcpulse/internal/aggregate"
	"btcpulse/internal/cache"
	"btcpulse/internal/consts"
	"btcpulse/internal/datasource"
	"btcpulse/internal/history"
	"btcpulse/internal/indicator"
	"btcpulse/internal/model"
	"btcpulse/pkg/errors"
	"btcpulse/pkg/errors/ecode"
	"btcpulse/pkg/logger"
)

type Engine struct {
	ds    *datasource.Client
	store *history.Store
	snaps *cache.SnapshotCache // 可为nil，退化为纯内存
	cfg   conf.EngineConfig

	mu      sync.RWMutex
	current *model.Snapshot
}

func New(ds *datasource.Client, store *history.Store, snaps *cache.SnapshotCache, cfg conf.EngineConfig) *Engine {
	return &Engine{ds: ds, store: store, snaps: snaps, cfg: cfg}
}

// Snapshot 返回最新快照。缓存期内直接复用，过期则同步刷新一轮
func (e *Engine) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	e.mu.RLock()
	snap := e.current
	e.mu.RUnlock()
	if snap != nil && time.Since(snap.Timestamp) < e.cfg.CacheTTL {
		return snap, nil
	}

	// 进程刚起时先看redis里有没有别的实例/上次运行留下的新鲜快照
	if snap == nil && e.snaps != nil {
		if cached := e.snaps.Load(ctx); cached != nil && time.Since(cached.Timestamp) < e.cfg.CacheTTL {
			e.mu.Lock()
			e.current = cached
			e.mu.Unlock()
			return cached, nil
		}
	}
	return e.Refresh(ctx)
}

// Refresh 强制执行一轮完整的采集+计算。
// 部分数据源失败不算错，只有一个指标都算不出来才返回错误
func (e *Engine) Refresh(ctx context.Context) (*model.Snapshot, error) {
	started := time.Now()
	raw, degraded := e.collect(ctx)
	if degraded != nil {
		logger.Warn("本轮部分数据源不可用", logger.Pair("errors", degraded.Error()))
	}

	indicators := make(map[string]model.Indicator, len(indicator.All()))
	for _, def := range indicator.All() {
		indicators[def.Name] = def.Compute(raw)
	}

	// 现价都拿不到就没有可展示的快照，纯时间推算的指标撑不起一个面板
	if raw.Price == nil {
		return nil, errors.Wrap(ecode.SnapshotFailedErr, "", degraded)
	}

	total, recommendation := aggregate.Summarize(indicators)
	snap := &model.Snapshot{
		Timestamp:      raw.AsOf,
		BtcPrice:       *raw.Price,
		Indicators:     indicators,
		TotalScore:     total,
		Recommendation: recommendation,
	}

	e.mu.Lock()
	e.current = snap
	e.mu.Unlock()
	if e.snaps != nil {
		e.snaps.Store(ctx, snap)
	}
	e.persistHistory(raw)

	logger.Info("快照刷新完成",
		logger.Pair("total_score", total),
		logger.Pair("recommendation", recommendation),
		logger.Pair("elapsed", time.Since(started).String()))
	return snap, nil
}

// History 某指标最近days天的历史序列，days限制在[7,90]
func (e *Engine) History(name string, days int) ([]model.HistoryPoint, error) {
	if _, ok := indicator.Lookup(name); !ok {
		return nil, errors.New(ecode.IndicatorUnknownErr, "")
	}
	if days < consts.HistoryDaysMin {
		days = consts.HistoryDaysMin
	}
	if days > consts.HistoryDaysMax {
		days = consts.HistoryDaysMax
	}
	return e.store.Query(name, days)
}

// RunScheduled 按refresh_interval周期性刷新，直到ctx取消。
// 单轮失败只记日志，等下一个周期
func (e *Engine) RunScheduled(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.RefreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("快照引擎退出")
			return
		case <-ticker.C:
			if _, err := e.Refresh(ctx); err != nil {
				logger.Error("定时刷新失败", logger.Pair("error", err))
			}
		}
	}
}

// collect 并发拉取全部数据源。返回的RawSignals里nil字段即失败的源，
// 第二个返回值为聚合后的失败明细（全部成功时为nil）
func (e *Engine) collect(ctx context.Context) (*model.RawSignals, error) {
	raw := &model.RawSignals{
		AsOf:   time.Now().UTC(),
		Klines: make(map[string][]model.Kline),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	var degraded error

	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				degraded = multierr.Append(degraded, err)
				mu.Unlock()
			}
		}()
	}

	run(func() error {
		price, err := e.ds.SpotPrice(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.Price = model.Float(price)
		mu.Unlock()
		return nil
	})
	run(func() error {
		daily, err := e.ds.DailyCloses(ctx, e.cfg.DailyBars)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.Daily = daily
		mu.Unlock()
		return nil
	})
	for _, interval := range []string{"4h", "12h", "1d", "1w", "1M"} {
		interval := interval
		run(func() error {
			klines, err := e.ds.Klines(ctx, interval, e.cfg.KlineBars)
			if err != nil {
				return err
			}
			mu.Lock()
			raw.Klines[interval] = klines
			mu.Unlock()
			return nil
		})
	}
	run(func() error {
		rate, err := e.ds.FundingRate(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.FundingRate = model.Float(rate)
		mu.Unlock()
		return nil
	})
	run(func() error {
		hist, err := e.ds.FundingHistory(ctx, consts.HistoryDaysMax)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.FundingHistory = hist
		mu.Unlock()
		return nil
	})
	run(func() error {
		ls, err := e.ds.LongShortRatio(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.LongShort = ls
		mu.Unlock()
		return nil
	})
	run(func() error {
		hist, err := e.ds.LongShortHistory(ctx, consts.HistoryDaysMax)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.LongShortHistory = hist
		mu.Unlock()
		return nil
	})
	run(func() error {
		fg, err := e.ds.FearGreed(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.FearGreed = model.Float(fg)
		mu.Unlock()
		return nil
	})
	run(func() error {
		hist, err := e.ds.FearGreedHistory(ctx, consts.HistoryDaysMax)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.FearGreedHistory = hist
		mu.Unlock()
		return nil
	})
	run(func() error {
		series, err := e.ds.HashrateSeries(ctx, consts.HistoryDaysMax)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.Hashrate = series
		mu.Unlock()
		return nil
	})
	run(func() error {
		dom, err := e.ds.Dominance(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.Dominance = model.Float(dom)
		mu.Unlock()
		return nil
	})
	run(func() error {
		holdings, err := e.ds.TreasuryHoldings(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.Holdings = model.Float(holdings)
		mu.Unlock()
		return nil
	})
	run(func() error {
		vol, err := e.ds.EtfVolume(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.EtfVolume = model.Float(vol)
		mu.Unlock()
		return nil
	})
	run(func() error {
		options, err := e.ds.OptionBook(ctx)
		if err != nil {
			return err
		}
		mu.Lock()
		raw.Options = options
		mu.Unlock()
		return nil
	})

	wg.Wait()
	return raw, degraded
}

// persistHistory 把能回算历史的指标序列写进sqlite，供历史接口查询
func (e *Engine) persistHistory(raw *model.RawSignals) {
	if e.store == nil {
		return
	}
	for _, def := range indicator.All() {
		if def.Series == nil {
			continue
		}
		points := def.Series(raw, consts.HistoryDaysMax)
		if len(points) == 0 {
			continue
		}
		if err := e.store.Append(def.Name, points); err != nil {
			logger.Error("历史落盘失败",
				logger.Pair("indicator", def.Name),
				logger.Pair("error", err))
		}
	}
}
