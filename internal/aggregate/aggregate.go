// Package aggregate 把各指标评分按优先级加权合成总分，并给出操作建议
package aggregate

import (
	"btcpulse/internal/model"
)

// 建议档位，区间左闭右开、整体覆盖[-1,+1]不重叠
const (
	RecStrongBuy  = "强烈买入"
	RecBuy        = "分批买入"
	RecHold       = "持有观望"
	RecReduce     = "逢高减仓"
	RecStrongSell = "强烈卖出"
	RecNoData     = "数据不足，暂不给出建议"
)

// TotalScore 有效指标评分的优先级加权均值。
// score为nil的指标（数据不可用或仅供参考）不参与，既不计分子也不计分母；
// 全部无效时返回(0, false)
func TotalScore(indicators map[string]model.Indicator) (float64, bool) {
	var weighted, weightSum float64
	for _, ind := range indicators {
		if ind.Score == nil {
			continue
		}
		w := ind.Priority.Weight()
		weighted += *ind.Score * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return weighted / weightSum, true
}

// Recommend 总分到建议档位的映射
func Recommend(score float64) string {
	switch {
	case score >= 0.5:
		return RecStrongBuy
	case score >= 0.2:
		return RecBuy
	case score > -0.3:
		return RecHold
	case score > -0.8:
		return RecReduce
	default:
		return RecStrongSell
	}
}

// Summarize 由指标集合产出总分与建议
func Summarize(indicators map[string]model.Indicator) (float64, string) {
	score, ok := TotalScore(indicators)
	if !ok {
		return 0, RecNoData
	}
	return score, Recommend(score)
}
