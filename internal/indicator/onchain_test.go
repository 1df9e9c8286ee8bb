package indicator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcpulse/internal/model"
)

func hashrateSeries(n int, value func(i int) float64) []model.TimedValue {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	vals := make([]model.TimedValue, n)
	for i := 0; i < n; i++ {
		vals[i] = model.TimedValue{Timestamp: base.AddDate(0, 0, i), Value: value(i)}
	}
	return vals
}

func TestComputeHashRibbon(t *testing.T) {
	// 样本不足60天 → gray
	in := &model.RawSignals{AsOf: time.Now().UTC(), Hashrate: hashrateSeries(30, func(int) float64 { return 500 })}
	ind := computeHashRibbon(in)
	assert.Equal(t, model.ColorGray, ind.Color)

	// 算力平稳 → 偏离0，中性
	in.Hashrate = hashrateSeries(90, func(int) float64 { return 500 })
	ind = computeHashRibbon(in)
	require.True(t, ind.Available())
	assert.InDelta(t, 0, *ind.Value, 1e-9)
	assert.Equal(t, model.ColorYellow, ind.Color)

	// 算力持续下滑 → 30日均线低于60日，矿工投降信号
	in.Hashrate = hashrateSeries(90, func(i int) float64 { return 900 - 5*float64(i) })
	ind = computeHashRibbon(in)
	require.True(t, ind.Available())
	assert.Less(t, *ind.Value, 0.0)
	assert.Less(t, *ind.Score, 0.0)
}

func TestComputeDominance(t *testing.T) {
	in := &model.RawSignals{AsOf: time.Now().UTC()}
	ind := computeDominance(in)
	assert.Equal(t, model.ColorGray, ind.Color)

	// 高占比 → 看多
	in.Dominance = model.Float(60)
	ind = computeDominance(in)
	require.True(t, ind.Available())
	assert.Greater(t, *ind.Score, 0.5)

	// 山寨季低占比 → 偏空
	in.Dominance = model.Float(40)
	ind = computeDominance(in)
	assert.Less(t, *ind.Score, 0.0)
}

func TestComputeHoldingsReferenceOnly(t *testing.T) {
	in := &model.RawSignals{AsOf: time.Now().UTC(), Holdings: model.Float(850000)}
	ind := computeHoldings(in)

	// 有读数但不参与计分
	require.NotNil(t, ind.Value)
	assert.Equal(t, 850000.0, *ind.Value)
	assert.Nil(t, ind.Score)
	assert.Equal(t, model.ColorGray, ind.Color)
}
