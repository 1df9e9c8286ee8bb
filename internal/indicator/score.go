package indicator

import (
	"btcpulse/internal/model"
)

// 评分公共工具。所有指标的原始读数都要经过分段线性映射压到[-1,+1]，
// 锚点之间线性插值，避免阶跃造成建议来回翻转

// Anchor 分段线性映射的锚点，X为指标读数，Score为对应评分
type Anchor struct {
	X     float64
	Score float64
}

// Ramp 分段线性插值。锚点按X升序，超出两端取端点值（即自动clamp）
func Ramp(x float64, anchors []Anchor) float64 {
	if len(anchors) == 0 {
		return 0
	}
	if x <= anchors[0].X {
		return anchors[0].Score
	}
	last := anchors[len(anchors)-1]
	if x >= last.X {
		return last.Score
	}
	for i := 1; i < len(anchors); i++ {
		if x <= anchors[i].X {
			a, b := anchors[i-1], anchors[i]
			t := (x - a.X) / (b.X - a.X)
			return a.Score + t*(b.Score-a.Score)
		}
	}
	return last.Score
}

// Clamp 把v限制在[lo,hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ColorForScore 评分到颜色的唯一映射。绿=看多，红=看空/过热，黄=中性。
// gray不在此映射内，只用于数据不可用（见unavailable）
func ColorForScore(score float64) model.Color {
	switch {
	case score >= 0.25:
		return model.ColorGreen
	case score <= -0.25:
		return model.ColorRed
	default:
		return model.ColorYellow
	}
}

// scored 构造一个可用指标，颜色由评分单点派生
func scored(def *Definition, value, score float64, status string) model.Indicator {
	score = Clamp(score, -1, 1)
	return model.Indicator{
		Name:        def.Name,
		Priority:    def.Priority,
		Value:       model.Float(value),
		Score:       model.Float(score),
		Status:      status,
		Color:       ColorForScore(score),
		URL:         def.URL,
		Method:      def.Method,
		Description: def.Description,
	}
}

// reference 构造仅供参考的指标：有读数但不参与评分（score=nil，gray）
func reference(def *Definition, value float64, status string) model.Indicator {
	return model.Indicator{
		Name:        def.Name,
		Priority:    def.Priority,
		Value:       model.Float(value),
		Score:       nil,
		Status:      status,
		Color:       model.ColorGray,
		URL:         def.URL,
		Method:      def.Method,
		Description: def.Description,
	}
}

// unavailable 构造数据不可用的指标：value/score为nil，gray。
// 绝不返回0分，避免把"无数据"稀释成"中性"
func unavailable(def *Definition) model.Indicator {
	return model.Indicator{
		Name:        def.Name,
		Priority:    def.Priority,
		Value:       nil,
		Score:       nil,
		Status:      "数据暂不可用",
		Color:       model.ColorGray,
		URL:         def.URL,
		Method:      def.Method,
		Description: def.Description,
	}
}

// closesOf 提取K线收盘价
func closesOf(klines []model.Kline) []float64 {
	closes := make([]float64, len(klines))
	for i, k := range klines {
		closes[i] = k.Close
	}
	return closes
}

// dailyCloses 提取日线收盘价
func dailyCloses(points []model.PricePoint) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	return closes
}
