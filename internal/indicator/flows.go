package indicator

import (
	"fmt"
	"math"

	"btcpulse/internal/model"
)

// 资金流与期权结构类指标：ETF活跃度、期权最大痛点

// ETF日成交额（十亿美元）到评分，成交活跃视为传统资金参与度高
var etfFlowAnchors = []Anchor{
	{0, 0}, {1.0, 0.5}, {2.0, 1},
}

func computeEtfFlow(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("etf_flow")
	if in.EtfVolume == nil {
		return unavailable(def)
	}
	v := *in.EtfVolume
	score := Ramp(v, etfFlowAnchors)

	status := fmt.Sprintf("日成交 $%.1fB", v)
	if v >= 2.0 {
		status = fmt.Sprintf("日成交 $%.1fB，ETF资金高度活跃", v)
	}
	return scored(def, v, score, status)
}

func computeMaxPain(in *model.RawSignals) model.Indicator {
	def, _ := Lookup("max_pain")
	if len(in.Options) == 0 {
		return unavailable(def)
	}
	strike, expiry, ok := maxPainStrike(in.Options)
	if !ok {
		return unavailable(def)
	}
	status := fmt.Sprintf("痛点价格 $%.0f，主力到期 %s", strike, expiry)
	return reference(def, strike, status)
}

// maxPainStrike 在持仓量最大的到期日里，找Call/Put内在价值合计
// 最小的行权价。同痛值取更低的行权价，保证结果确定
func maxPainStrike(options []model.OptionOI) (float64, string, bool) {
	oiByExpiry := make(map[string]float64)
	for _, o := range options {
		oiByExpiry[o.Expiry] += o.OI
	}
	var topExpiry string
	var topOI float64
	for expiry, oi := range oiByExpiry {
		if oi > topOI || (oi == topOI && expiry < topExpiry) {
			topExpiry, topOI = expiry, oi
		}
	}
	if topExpiry == "" {
		return 0, "", false
	}

	var chain []model.OptionOI
	strikeSet := make(map[float64]struct{})
	for _, o := range options {
		if o.Expiry != topExpiry {
			continue
		}
		chain = append(chain, o)
		strikeSet[o.Strike] = struct{}{}
	}

	best := 0.0
	bestPain := math.Inf(1)
	for strike := range strikeSet {
		var pain float64
		for _, o := range chain {
			if o.Call && o.Strike < strike {
				pain += (strike - o.Strike) * o.OI
			}
			if !o.Call && o.Strike > strike {
				pain += (o.Strike - strike) * o.OI
			}
		}
		if pain < bestPain || (pain == bestPain && strike < best) {
			best, bestPain = strike, pain
		}
	}
	return best, topExpiry, true
}
