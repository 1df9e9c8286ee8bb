package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcpulse/internal/model"
)

// syntheticDaily 从start起按日生成n个收盘价
func syntheticDaily(start time.Time, n int, price func(i int) float64) []model.PricePoint {
	points := make([]model.PricePoint, n)
	for i := 0; i < n; i++ {
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: price(i)}
	}
	return points
}

func TestAhr999ScoreBands(t *testing.T) {
	// 0.40在抄底区间附近，应强烈看多；1.50显著高估，应强烈看空
	low := Ramp(0.40, ahr999Anchors)
	assert.InDelta(t, 0.9, low, 0.01)
	assert.Equal(t, model.ColorGreen, ColorForScore(low))

	high := Ramp(1.50, ahr999Anchors)
	assert.InDelta(t, -0.875, high, 0.01)
	assert.Equal(t, model.ColorRed, ColorForScore(high))
}

func TestComputeAhr999Unavailable(t *testing.T) {
	// 没有现价
	in := &model.RawSignals{AsOf: time.Now().UTC()}
	ind := computeAhr999(in)
	assert.Equal(t, model.ColorGray, ind.Color)
	assert.Nil(t, ind.Score)

	// 日线根数不足200
	in.Price = model.Float(50000)
	in.Daily = syntheticDaily(time.Now().AddDate(0, 0, -100), 100, func(int) float64 { return 50000 })
	ind = computeAhr999(in)
	assert.Equal(t, model.ColorGray, ind.Color)
}

func TestComputeAhr999Available(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	in := &model.RawSignals{
		AsOf:  asOf,
		Price: model.Float(60000),
		Daily: syntheticDaily(asOf.AddDate(0, 0, -400), 400, func(int) float64 { return 60000 }),
	}
	ind := computeAhr999(in)
	require.True(t, ind.Available())
	assert.Greater(t, *ind.Value, 0.0)
	assert.GreaterOrEqual(t, *ind.Score, -1.0)
	assert.LessOrEqual(t, *ind.Score, 1.0)
	assert.NotEqual(t, model.ColorGray, ind.Color)
}

func TestPowerLawPosition(t *testing.T) {
	age := coinAgeDays(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	fair := logFitPrice(age, powerLawSlope, powerLawIntercept)

	// 中轴处位置为0，上沿+1、下沿-1
	assert.InDelta(t, 0, powerLawPosition(fair, age), 1e-9)
	assert.InDelta(t, 1, powerLawPosition(fair*math.Pow(10, powerLawHalfBand), age), 1e-9)
	assert.InDelta(t, -1, powerLawPosition(fair/math.Pow(10, powerLawHalfBand), age), 1e-9)
}

func TestComputePowerLawScoreDirection(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	age := coinAgeDays(asOf)
	fair := logFitPrice(age, powerLawSlope, powerLawIntercept)

	// 贴近下沿 → 看多
	in := &model.RawSignals{AsOf: asOf, Price: model.Float(fair / math.Pow(10, powerLawHalfBand))}
	ind := computePowerLaw(in)
	require.True(t, ind.Available())
	assert.InDelta(t, 1, *ind.Score, 1e-9)

	// 贴近上沿 → 看空
	in.Price = model.Float(fair * math.Pow(10, powerLawHalfBand))
	ind = computePowerLaw(in)
	require.True(t, ind.Available())
	assert.InDelta(t, -1, *ind.Score, 1e-9)
}

func TestCVDDPosition(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	age := coinAgeDays(asOf)
	floor := logFitPrice(age, cvddSlope, cvddIntercept)

	// 贴底满分看多，带顶满分看空
	in := &model.RawSignals{AsOf: asOf, Price: model.Float(floor)}
	ind := computeCVDD(in)
	require.True(t, ind.Available())
	assert.InDelta(t, 1, *ind.Score, 1e-9)

	in.Price = model.Float(floor * math.Pow(10, cvddBandWidth))
	ind = computeCVDD(in)
	require.True(t, ind.Available())
	assert.InDelta(t, -1, *ind.Score, 1e-9)
}

func TestMVRVZFlatSeries(t *testing.T) {
	// 恒定价格时标准差为0，Z值按0处理而不是除零
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	in := &model.RawSignals{
		AsOf:  asOf,
		Price: model.Float(50000),
		Daily: syntheticDaily(asOf.AddDate(0, 0, -400), 400, func(int) float64 { return 50000 }),
	}
	ind := computeMVRVZ(in)
	require.True(t, ind.Available())
	assert.InDelta(t, 0, *ind.Value, 1e-9)
}

func TestNUPLAt(t *testing.T) {
	// MVRV=2 → NUPL=0.5；MVRV=1 → 0；MVRV<1 → 负值
	assert.InDelta(t, 0.5, nuplAt(100, 50), 1e-9)
	assert.InDelta(t, 0, nuplAt(50, 50), 1e-9)
	assert.Less(t, nuplAt(40, 50), 0.0)
}

func TestSeriesAhr999Window(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	in := &model.RawSignals{
		AsOf:  asOf,
		Daily: syntheticDaily(asOf.AddDate(0, 0, -400), 400, func(i int) float64 { return 40000 + float64(i)*10 }),
	}
	points := seriesAhr999(in, 30)
	require.Len(t, points, 30)
	// 升序且日期为2006-01-02格式
	assert.Less(t, points[0].Date, points[29].Date)
	assert.Len(t, points[0].Date, 10)
}

func TestStddev(t *testing.T) {
	assert.InDelta(t, 0, stddev([]float64{5, 5, 5}), 1e-9)
	assert.InDelta(t, 2, stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
	assert.Equal(t, 0.0, stddev(nil))
}
