package indicator

import (
	"fmt"

	"btcpulse/internal/model"
)

// 链上与市场结构类指标：算力彩带、市占率、机构持仓

var hashRibbonAnchors = []Anchor{
	{-15, -1}, {-5, -0.4}, {0, 0}, {5, 0.4}, {15, 1},
}

var dominanceAnchors = []Anchor{
	{40, -0.5}, {47.5, 0}, {55, 0.5}, {65, 1},
}

// 算力彩带均线窗口
const (
	hashFastWindow = 30
	hashSlowWindow = 60
)

func computeHashRibbon(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("hashrate_ribbon")
	if len(in.Hashrate) < hashSlowWindow {
		return unavailable(def)
	}
	n := len(in.Hashrate)
	fast := meanTail(in.Hashrate, n, hashFastWindow)
	slow := meanTail(in.Hashrate, n, hashSlowWindow)
	if slow == 0 {
		return unavailable(def)
	}
	dev := (fast - slow) / slow * 100
	score := Ramp(dev, hashRibbonAnchors)

	status := fmt.Sprintf("30日算力均线偏离60日 %.1f%%", dev)
	switch {
	case dev < -5:
		status = "矿工投降中，历史上接近底部"
	case dev > 5:
		status = "算力扩张，矿工信心充足"
	}
	return scored(def, dev, score, status)
}

// meanTail 序列末尾window个采样的均值
func meanTail(vals []model.TimedValue, n, window int) float64 {
	var sum float64
	for i := n - window; i < n; i++ {
		sum += vals[i].Value
	}
	return sum / float64(window)
}

func computeDominance(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("dominance")
	if in.Dominance == nil {
		return unavailable(def)
	}
	v := *in.Dominance
	score := Ramp(v, dominanceAnchors)

	status := fmt.Sprintf("BTC市占率 %.1f%%", v)
	switch {
	case v >= 55:
		status = "资金向BTC集中"
	case v < 45:
		status = "山寨季特征，周期偏后段"
	}
	return scored(def, v, score, status)
}

func computeHoldings(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("treasury_holdings")
	if in.Holdings == nil {
		return unavailable(def)
	}
	v := *in.Holdings
	status := fmt.Sprintf("上市公司合计持有 %.0f BTC", v)
	return reference(def, v, status)
}
