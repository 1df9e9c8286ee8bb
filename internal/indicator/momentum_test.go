package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcpulse/internal/model"
)

// syntheticKlines 按收盘价序列生成K线
func syntheticKlines(start time.Time, step time.Duration, closes []float64) []model.Kline {
	klines := make([]model.Kline, len(closes))
	for i, c := range closes {
		klines[i] = model.Kline{
			Timestamp: start.Add(time.Duration(i) * step),
			Open:      c, High: c, Low: c, Close: c,
		}
	}
	return klines
}

func TestComputeMACDMtfUnavailable(t *testing.T) {
	in := &model.RawSignals{AsOf: time.Now().UTC(), Klines: map[string][]model.Kline{}}
	ind := computeMACDMtf(in)
	assert.Equal(t, model.ColorGray, ind.Color)

	// K线不够长同样不可用
	in.Klines["1d"] = syntheticKlines(time.Now(), 24*time.Hour, make([]float64, 10))
	ind = computeMACDMtf(in)
	assert.Equal(t, model.ColorGray, ind.Color)
}

func TestComputeMACDMtfPartialIntervals(t *testing.T) {
	// 只有日线可用也要出分，其余周期静默跳过
	closes := make([]float64, 120)
	for i := range closes {
		closes[i] = 40000 + 100*float64(i)
	}
	in := &model.RawSignals{
		AsOf:   time.Now().UTC(),
		Klines: map[string][]model.Kline{"1d": syntheticKlines(time.Now().AddDate(0, 0, -120), 24*time.Hour, closes)},
	}
	ind := computeMACDMtf(in)
	require.True(t, ind.Available())
	assert.GreaterOrEqual(t, *ind.Score, -1.0)
	assert.LessOrEqual(t, *ind.Score, 1.0)
	// 持续上行的序列MACD柱不应为负贡献
	assert.GreaterOrEqual(t, *ind.Score, 0.0)
}

func TestComputeBollRSIOverbought(t *testing.T) {
	// 单边上涨：RSI接近100且价格贴上轨 → 看空
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 40000 * math.Pow(1.01, float64(i))
	}
	in := &model.RawSignals{
		AsOf:   time.Now().UTC(),
		Klines: map[string][]model.Kline{"1d": syntheticKlines(time.Now().AddDate(0, 0, -60), 24*time.Hour, closes)},
	}
	ind := computeBollRSI(in)
	require.True(t, ind.Available())
	assert.Greater(t, *ind.Value, 70.0, "单边上涨RSI应超买")
	assert.Less(t, *ind.Score, 0.0)
}

func TestComputeBollRSIOversold(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 40000 * math.Pow(0.99, float64(i))
	}
	in := &model.RawSignals{
		AsOf:   time.Now().UTC(),
		Klines: map[string][]model.Kline{"1d": syntheticKlines(time.Now().AddDate(0, 0, -60), 24*time.Hour, closes)},
	}
	ind := computeBollRSI(in)
	require.True(t, ind.Available())
	assert.Less(t, *ind.Value, 30.0)
	assert.Greater(t, *ind.Score, 0.0)
}

func TestComputeBollRSIUnavailable(t *testing.T) {
	in := &model.RawSignals{AsOf: time.Now().UTC(), Klines: map[string][]model.Kline{}}
	ind := computeBollRSI(in)
	assert.Equal(t, model.ColorGray, ind.Color)
}
