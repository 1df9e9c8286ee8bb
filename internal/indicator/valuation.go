package indicator

import (
	"fmt"
	"math"
	"time"

	"github.com/markcheno/go-talib"

	"btcpulse/internal/model"
)

// 估值类指标：Ahr999、幂律通道、CVDD底部带、MVRV Z-Score、NUPL

// 创世区块日期，币龄从这天起算
var genesisDate = time.Date(2009, 1, 3, 0, 0, 0, 0, time.UTC)

// Ahr999拟合价系数：fair = 10^(slope*log10(币龄天数) + intercept)
const (
	ahrFitSlope     = 5.84
	ahrFitIntercept = -17.01
)

// 幂律通道中轴系数与半带宽（十进制数量级）
const (
	powerLawSlope     = 5.93
	powerLawIntercept = -17.67
	powerLawHalfBand  = 0.4
)

// CVDD底部模型系数与上沿带宽
const (
	cvddSlope     = 5.78
	cvddIntercept = -17.60
	cvddBandWidth = 0.9
)

var ahr999Anchors = []Anchor{
	{0.30, 1}, {0.45, 0.85}, {0.75, 0.30}, {1.20, -0.50}, {1.60, -1},
}

var mvrvZAnchors = []Anchor{
	{-1.5, 1}, {-0.5, 0.5}, {1, 0}, {3, -0.4}, {7, -1},
}

var nuplAnchors = []Anchor{
	{-0.2, 1}, {0, 0.8}, {0.25, 0.4}, {0.5, 0}, {0.65, -0.4}, {0.75, -0.8}, {0.85, -1},
}

// coinAgeDays 指定日期的币龄天数
func coinAgeDays(t time.Time) float64 {
	return t.Sub(genesisDate).Hours() / 24
}

// logFitPrice 对数拟合价：10^(slope*log10(age) + intercept)
func logFitPrice(age, slope, intercept float64) float64 {
	return math.Pow(10, slope*math.Log10(age)+intercept)
}

// ahr999At 某一天的Ahr999值。price为当日收盘，ma200为当日200日均价
func ahr999At(price, ma200, age float64) float64 {
	fair := logFitPrice(age, ahrFitSlope, ahrFitIntercept)
	return (price / fair) * math.Sqrt(price/ma200)
}

func computeAhr999(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("ahr999")
	if in.Price == nil || len(in.Daily) < 200 {
		return unavailable(def)
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	v := ahr999At(*in.Price, ma200[len(ma200)-1], coinAgeDays(in.AsOf))
	score := Ramp(v, ahr999Anchors)

	status := "定投区间"
	switch {
	case v < 0.45:
		status = "抄底区间"
	case v > 1.60:
		status = "显著高估"
	case v > 1.20:
		status = "高估，暂停定投"
	}
	return scored(def, v, score, status)
}

func seriesAhr999(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) < 200 {
		return nil
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	return tailSeries(in.Daily, days, 199, func(i int) float64 {
		return ahr999At(closes[i], ma200[i], coinAgeDays(in.Daily[i].Date))
	})
}

// powerLawPosition 价格在幂律通道内的位置，中轴为0、上沿+1、下沿-1
func powerLawPosition(price, age float64) float64 {
	fair := logFitPrice(age, powerLawSlope, powerLawIntercept)
	return math.Log10(price/fair) / powerLawHalfBand
}

func computePowerLaw(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("power_law")
	if in.Price == nil {
		return unavailable(def)
	}
	age := coinAgeDays(in.AsOf)
	fair := logFitPrice(age, powerLawSlope, powerLawIntercept)
	ratio := *in.Price / fair
	pos := powerLawPosition(*in.Price, age)
	score := -Clamp(pos, -1, 1)

	status := fmt.Sprintf("现价为拟合价的%.2f倍", ratio)
	switch {
	case pos <= -0.6:
		status = "贴近通道下沿，历史大底区域"
	case pos >= 0.6:
		status = "贴近通道上沿，历史顶部区域"
	}
	return scored(def, ratio, score, status)
}

func seriesPowerLaw(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) == 0 {
		return nil
	}
	return tailSeries(in.Daily, days, 0, func(i int) float64 {
		age := coinAgeDays(in.Daily[i].Date)
		return in.Daily[i].Close / logFitPrice(age, powerLawSlope, powerLawIntercept)
	})
}

// cvddPosition 价格在CVDD底部带内的位置，0=贴底、1=带顶
func cvddPosition(price, age float64) float64 {
	floor := logFitPrice(age, cvddSlope, cvddIntercept)
	return math.Log10(price/floor) / cvddBandWidth
}

func computeCVDD(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("cvdd")
	if in.Price == nil {
		return unavailable(def)
	}
	age := coinAgeDays(in.AsOf)
	floor := logFitPrice(age, cvddSlope, cvddIntercept)
	ratio := *in.Price / floor
	pos := Clamp(cvddPosition(*in.Price, age), 0, 1)
	score := 1 - 2*pos

	status := fmt.Sprintf("现价为CVDD底部的%.2f倍", ratio)
	if pos < 0.15 {
		status = "贴近CVDD底部，极端低估"
	}
	return scored(def, ratio, score, status)
}

func seriesCVDD(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) == 0 {
		return nil
	}
	return tailSeries(in.Daily, days, 0, func(i int) float64 {
		age := coinAgeDays(in.Daily[i].Date)
		return in.Daily[i].Close / logFitPrice(age, cvddSlope, cvddIntercept)
	})
}

// mvrvZWindow Z值计算用的价格标准差窗口
const mvrvZWindow = 365

// mvrvZAt 以200日均价近似实现价的MVRV Z值。
// closes为升序日线收盘价，i为取值下标，需保证i>=mvrvZWindow-1且ma200[i]有效
func mvrvZAt(closes, ma200 []float64, i int) float64 {
	window := closes[i+1-mvrvZWindow : i+1]
	sd := stddev(window)
	if sd == 0 {
		return 0
	}
	return (closes[i] - ma200[i]) / sd
}

func computeMVRVZ(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("mvrv_zscore")
	if len(in.Daily) < mvrvZWindow {
		return unavailable(def)
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	z := mvrvZAt(closes, ma200, len(closes)-1)
	score := Ramp(z, mvrvZAnchors)

	status := "估值中性区"
	switch {
	case z < -0.5:
		status = "历史底部区域"
	case z > 7:
		status = "历史顶部区域"
	case z > 3:
		status = "估值偏高"
	}
	return scored(def, z, score, status)
}

func seriesMVRVZ(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) < mvrvZWindow {
		return nil
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	return tailSeries(in.Daily, days, mvrvZWindow-1, func(i int) float64 {
		return mvrvZAt(closes, ma200, i)
	})
}

// nuplAt NUPL由MVRV换算：1 - 1/MVRV，MVRV以价格/200日均价近似
func nuplAt(price, ma200 float64) float64 {
	if ma200 == 0 {
		return 0
	}
	mvrv := price / ma200
	if mvrv == 0 {
		return 0
	}
	return 1 - 1/mvrv
}

func computeNUPL(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("nupl")
	if in.Price == nil || len(in.Daily) < 200 {
		return unavailable(def)
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	v := nuplAt(*in.Price, ma200[len(ma200)-1])
	score := Ramp(v, nuplAnchors)

	status := "乐观阶段"
	switch {
	case v < 0:
		status = "投降阶段，历史底部"
	case v < 0.25:
		status = "希望阶段"
	case v > 0.75:
		status = "亢奋阶段，历史顶部"
	case v > 0.5:
		status = "信仰阶段"
	}
	return scored(def, v, score, status)
}

func seriesNUPL(in *model.RawSignals, days int) []model.HistoryPoint {
	if len(in.Daily) < 200 {
		return nil
	}
	closes := dailyCloses(in.Daily)
	ma200 := talib.Sma(closes, 200)
	return tailSeries(in.Daily, days, 199, func(i int) float64 {
		return nuplAt(closes[i], ma200[i])
	})
}

// stddev 总体标准差
func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(vals)))
}
