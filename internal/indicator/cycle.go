package indicator

import (
	"fmt"
	"time"

	"github.com/markcheno/go-talib"

	"btcpulse/internal/consts"
	"btcpulse/internal/model"
)

// 周期类指标：Pi Cycle顶部、Mayer倍数、减半周期

// 历次减半日期，升序。下一次为按区块速度估算的日期
var halvingDates = []time.Time{
	time.Date(2012, 11, 28, 0, 0, 0, 0, time.UTC),
	time.Date(2016, 7, 9, 0, 0, 0, 0, time.UTC),
	time.Date(2020, 5, 11, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
}

var nextHalvingEstimate = time.Date(2028, 4, 20, 0, 0, 0, 0, time.UTC)

const daysPerMonth = 30.44

var piCycleAnchors = []Anchor{
	{0, -1}, {10, -0.5}, {20, 0}, {30, 0.5}, {40, 1},
}

var mayerAnchors = []Anchor{
	{0.6, 1}, {1.1, 0.5}, {1.45, 0}, {1.8, -0.5}, {2.4, -1},
}

var halvingAnchors = []Anchor{
	{4, 1}, {12, 0.75}, {20, 0.2}, {28, -0.4}, {36, -1},
}

// piCycleGap 111日均线距2倍350日均线的相对缺口(%)。
// 缺口<=0即Pi Cycle顶部交叉
func piCycleGap(ma111, ma350 float64) float64 {
	upper := 2 * ma350
	return (upper - ma111) / upper * 100
}

func computePiCycle(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("pi_cycle")
	if len(in.Daily) < 350 {
		return unavailable(def)
	}
	closes := dailyCloses(in.Daily)
	ma111 := talib.Sma(closes, 111)
	ma350 := talib.Sma(closes, 350)
	n := len(closes)

	gap := piCycleGap(ma111[n-1], ma350[n-1])
	score := Ramp(gap, piCycleAnchors)

	status := fmt.Sprintf("距顶部交叉缺口 %.1f%%", gap)
	if gap <= 0 {
		status = "⚠️ Pi Cycle顶部交叉已触发"
		if n >= 2 && piCycleGap(ma111[n-2], ma350[n-2]) > 0 {
			status = "⚠️ Pi Cycle顶部交叉刚刚触发"
		}
	}
	return scored(def, gap, score, status)
}

func seriesPiCycle(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) < 350 {
		return nil
	}
	closes := dailyCloses(in.Daily)
	ma111 := talib.Sma(closes, 111)
	ma350 := talib.Sma(closes, 350)
	return tailSeries(in.Daily, days, 349, func(i int) float64 {
		return piCycleGap(ma111[i], ma350[i])
	})
}

func computeMayer(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("mayer_multiple")
	if in.Price == nil || len(in.Daily) < 200 {
		return unavailable(def)
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	multiple := *in.Price / ma200[len(ma200)-1]
	score := Ramp(multiple, mayerAnchors)

	status := "均线附近震荡"
	switch {
	case multiple < 0.8:
		status = "深度低估区"
	case multiple < 1.1:
		status = "低于历史均值"
	case multiple > 2.4:
		status = "历史过热区"
	case multiple > 1.8:
		status = "偏热，注意风险"
	}
	return scored(def, multiple, score, status)
}

func seriesMayer(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) < 200 {
		return nil
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	return tailSeries(in.Daily, days, 199, func(i int) float64 {
		return closes[i] / ma200[i]
	})
}

func computeHalving(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("halving_cycle")
	last := halvingDates[len(halvingDates)-1]
	if in.AsOf.Before(last) {
		return unavailable(def)
	}
	months := in.AsOf.Sub(last).Hours() / 24 / daysPerMonth
	score := Ramp(months, halvingAnchors)

	untilNext := nextHalvingEstimate.Sub(in.AsOf).Hours() / 24
	status := fmt.Sprintf("减半后第%.0f个月，距下次约%.0f天", months, untilNext)
	return scored(def, months, score, status)
}

// tailSeries 取日线序列末尾days个点逐点计算，minIdx之前窗口不足跳过
func tailSeries(daily []model.PricePoint, days, minIdx int, value func(i int) float64) []model.HistoryPoint {
	n := len(daily)
	start := n - days
	if start < minIdx {
		start = minIdx
	}
	if start >= n {
		return nil
	}
	out := make([]model.HistoryPoint, 0, n-start)
	for i := start; i < n; i++ {
		out = append(out, model.HistoryPoint{
			Date:  daily[i].Date.Format(consts.DateLayout),
			Value: value(i),
		})
	}
	return out
}
