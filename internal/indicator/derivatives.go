package indicator

import (
	"fmt"

	"btcpulse/internal/consts"
	"btcpulse/internal/model"
)

// 衍生品与情绪类指标：资金费率、多空比、恐惧贪婪指数

var fundingAnchors = []Anchor{
	{-0.15, 1}, {-0.03, 0.3}, {0, 0}, {0.03, -0.3}, {0.1, -0.8}, {0.2, -1},
}

var longShortAnchors = []Anchor{
	{0.4, 1}, {0.8, 0.3}, {1.0, 0}, {1.2, -0.3}, {2.0, -0.8}, {2.5, -1},
}

var fearGreedAnchors = []Anchor{
	{0, 1}, {25, 0.75}, {50, 0}, {75, -0.75}, {100, -1},
}

func computeFunding(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("funding_rate")
	if in.FundingRate == nil {
		return unavailable(def)
	}
	rate := *in.FundingRate
	score := Ramp(rate, fundingAnchors)

	status := fmt.Sprintf("当前费率 %.4f%%", rate)
	switch {
	case rate < -0.03:
		status = "空头付费，市场过度悲观"
	case rate > 0.1:
		status = "多头高杠杆，过热"
	}
	return scored(def, rate, score, status)
}

func seriesFunding(in *model.RawSignals, days int) []model.HistoryPoint {
	return timedSeries(in.FundingHistory, days)
}

func computeLongShort(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("long_short")
	if in.LongShort == nil {
		return unavailable(def)
	}
	ls := in.LongShort
	score := Ramp(ls.Ratio, longShortAnchors)

	status := fmt.Sprintf("多%.1f%% / 空%.1f%%", ls.LongPct, ls.ShortPct)
	switch {
	case ls.Ratio < 0.8:
		status = "散户偏空，反向看多信号"
	case ls.Ratio > 2.0:
		status = "散户拥挤做多，反向看空信号"
	}
	return scored(def, ls.Ratio, score, status)
}

func seriesLongShort(in *model.RawSignals, days int) []model.HistoryPoint {
	return timedSeries(in.LongShortHistory, days)
}

func computeFearGreed(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("fear_greed")
	if in.FearGreed == nil {
		return unavailable(def)
	}
	v := *in.FearGreed
	score := Ramp(v, fearGreedAnchors)

	status := "中性"
	switch {
	case v <= 25:
		status = "极度恐惧"
	case v <= 45:
		status = "恐惧"
	case v >= 75:
		status = "极度贪婪"
	case v >= 55:
		status = "贪婪"
	}
	return scored(def, v, score, status)
}

func seriesFearGreed(in *model.RawSignals, days int) []model.HistoryPoint {
	return timedSeries(in.FearGreedHistory, days)
}

// timedSeries 把采样序列转成末尾days天的历史点，输入需升序
func timedSeries(vals []model.TimedValue, days int) []model.HistoryPoint {
	if len(vals) == 0 {
		return nil
	}
	start := len(vals) - days
	if start < 0 {
		start = 0
	}
	out := make([]model.HistoryPoint, 0, len(vals)-start)
	for _, v := range vals[start:] {
		out = append(out, model.HistoryPoint{
			Date:  v.Timestamp.Format(consts.DateLayout),
			Value: v.Value,
		})
	}
	return out
}
