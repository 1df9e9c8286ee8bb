package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"

	"btcpulse/internal/model"
)

// 动量类指标：多周期MACD、布林带+RSI

// MACD合成的周期与权重，周期越长权重越大
var macdIntervals = []struct {
	Interval string
	Weight   float64
}{
	{"4h", 1},
	{"12h", 1.5},
	{"1d", 2},
	{"1w", 3},
	{"1M", 4},
}

// macdMinBars MACD(12,26,9)出稳定柱值所需的最少K线数
const macdMinBars = 35

// macdHistNorm 柱值归一化基准：柱值/价格达到0.5%记满分
const macdHistNorm = 0.005

func computeMACDMtf(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("macd_mtf")

	var weightSum, acc float64
	var bullish, total int
	for _, it := range macdIntervals {
		klines := in.Klines[it.Interval]
		if len(klines) < macdMinBars {
			continue
		}
		closes := closesOf(klines)
		_, _, hist := talib.Macd(closes, 12, 26, 9)
		last := hist[len(hist)-1]
		price := closes[len(closes)-1]
		if price == 0 {
			continue
		}
		contribution := Clamp(last/price/macdHistNorm, -1, 1)
		acc += contribution * it.Weight
		weightSum += it.Weight
		total++
		if last > 0 {
			bullish++
		}
	}
	if weightSum == 0 {
		return unavailable(def)
	}
	score := acc / weightSum
	status := fmt.Sprintf("%d/%d个周期MACD柱为正", bullish, total)
	return scored(def, score, score, status)
}

// 布林带与RSI参数，日线
const (
	bollPeriod = 20
	bollDev    = 2.0
	rsiPeriod  = 14
)

func computeBollRSI(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("boll_rsi")
	klines := in.Klines["1d"]
	if len(klines) < bollPeriod+1 {
		return unavailable(def)
	}
	closes := closesOf(klines)
	upper, _, lower := talib.BBands(closes, bollPeriod, bollDev, bollDev, 0)
	rsi := talib.Rsi(closes, rsiPeriod)

	n := len(closes)
	price := closes[n-1]
	band := upper[n-1] - lower[n-1]
	if band == 0 {
		return unavailable(def)
	}
	pctB := (price - lower[n-1]) / band
	r := rsi[n-1]

	bollScore := Clamp(1-2*pctB, -1, 1)
	rsiScore := Clamp((50-r)/25, -1, 1)
	score := (bollScore + rsiScore) / 2

	status := fmt.Sprintf("RSI %.0f，带内位置%.0f%%", r, pctB*100)
	switch {
	case r < 30 && pctB < 0.1:
		status = "双重超卖"
	case r > 70 && pctB > 0.9:
		status = "双重超买"
	}
	return scored(def, r, score, status)
}
