package indicator

import (
	"btcpulse/internal/model"
)

// Threshold 历史曲线上的参考线，供前端画横线用
type Threshold struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Definition 一个指标的静态元信息与计算入口。
// Compute吃一轮采集到的原始信号，产出完整的Indicator；
// Series可选，能从原始信号回算历史序列的指标才有
type Definition struct {
	Name        string
	Priority    model.Priority
	URL         string
	Method      string
	Description string
	Thresholds  []Threshold
	Compute     func(in *model.RawSignals) model.Indicator
	Series      func(in *model.RawSignals, days int) []model.HistoryPoint
}

// 注册表按固定顺序排列，保证每轮快照的遍历顺序稳定
var registry = []*Definition{
	// P0 强信号
	{
		Name:        "pi_cycle",
		Priority:    model.PriorityP0,
		URL:         "https://www.coinglass.com/pro/i/pi-cycle-top-indicator",
		Method:      "111日均线上穿2倍350日均线视为周期顶部",
		Description: "Pi Cycle Top 逃顶指标",
		Thresholds:  []Threshold{{Label: "顶部交叉", Value: 0}},
		Compute:     computePiCycle,
		Series:      seriesPiCycle,
	},
	{
		Name:        "mayer_multiple",
		Priority:    model.PriorityP0,
		URL:         "https://charts.bitbo.io/mayer-multiple/",
		Method:      "现价 / 200日均线",
		Description: "Mayer倍数，衡量价格相对长期均线的偏离",
		Thresholds:  []Threshold{{Label: "低估", Value: 0.8}, {Label: "过热", Value: 2.4}},
		Compute:     computeMayer,
		Series:      seriesMayer,
	},
	{
		Name:        "halving_cycle",
		Priority:    model.PriorityP0,
		URL:         "https://www.bitbo.io/halving/",
		Method:      "距上次减半的月数定位周期阶段",
		Description: "减半周期位置",
		Compute:     computeHalving,
	},
	{
		Name:        "mvrv_zscore",
		Priority:    model.PriorityP0,
		URL:         "https://www.coinglass.com/pro/i/MVRVZScore",
		Method:      "(市值-实现市值)/市值标准差，实现价以200日均线近似",
		Description: "MVRV Z-Score，识别市值相对实现市值的极端偏离",
		Thresholds:  []Threshold{{Label: "底部区", Value: -0.5}, {Label: "顶部区", Value: 7}},
		Compute:     computeMVRVZ,
		Series:      seriesMVRVZ,
	},

	// P1 中等信号
	{
		Name:        "ahr999",
		Priority:    model.PriorityP1,
		URL:         "https://www.coinglass.com/pro/i/ahr999",
		Method:      "(价格/拟合价) × sqrt(价格/200日均价)",
		Description: "Ahr999囤币指标",
		Thresholds:  []Threshold{{Label: "抄底线", Value: 0.45}, {Label: "定投线", Value: 1.2}},
		Compute:     computeAhr999,
		Series:      seriesAhr999,
	},
	{
		Name:        "power_law",
		Priority:    model.PriorityP1,
		URL:         "https://charts.bitbo.io/long-term-power-law/",
		Method:      "价格在幂律通道内的相对位置",
		Description: "长期幂律走廊",
		Compute:     computePowerLaw,
		Series:      seriesPowerLaw,
	},
	{
		Name:        "cvdd",
		Priority:    model.PriorityP1,
		URL:         "https://charts.checkonchain.com/btconchain/pricing/pricing_cvdd/pricing_cvdd_light.html",
		Method:      "价格相对CVDD底部模型的位置",
		Description: "CVDD 币天销毁累计价值底部带",
		Compute:     computeCVDD,
		Series:      seriesCVDD,
	},
	{
		Name:        "nupl",
		Priority:    model.PriorityP1,
		URL:         "https://www.coinglass.com/pro/i/nupl",
		Method:      "未实现净盈亏占市值比例，由MVRV换算",
		Description: "NUPL 净未实现盈亏",
		Thresholds:  []Threshold{{Label: "投降", Value: 0}, {Label: "亢奋", Value: 0.75}},
		Compute:     computeNUPL,
		Series:      seriesNUPL,
	},
	{
		Name:        "macd_mtf",
		Priority:    model.PriorityP1,
		URL:         "https://www.binance.com/zh-CN/trade/BTC_USDT",
		Method:      "4h/12h/1d/1w/1M五周期MACD柱加权合成",
		Description: "多周期MACD动量",
		Compute:     computeMACDMtf,
	},
	{
		Name:        "boll_rsi",
		Priority:    model.PriorityP1,
		URL:         "https://www.binance.com/zh-CN/trade/BTC_USDT",
		Method:      "布林带%B与RSI(14)合成，日线",
		Description: "布林带+RSI超买超卖",
		Thresholds:  []Threshold{{Label: "超卖", Value: 30}, {Label: "超买", Value: 70}},
		Compute:     computeBollRSI,
	},
	{
		Name:        "funding_rate",
		Priority:    model.PriorityP1,
		URL:         "https://www.coinglass.com/FundingRate",
		Method:      "币安永续合约资金费率(%)",
		Description: "资金费率，衡量合约多空付费方向",
		Thresholds:  []Threshold{{Label: "中性", Value: 0.01}, {Label: "过热", Value: 0.1}},
		Compute:     computeFunding,
		Series:      seriesFunding,
	},
	{
		Name:        "long_short",
		Priority:    model.PriorityP1,
		URL:         "https://www.coinglass.com/LongShortRatio",
		Method:      "币安全局账户多空人数比",
		Description: "多空比，反向情绪指标",
		Thresholds:  []Threshold{{Label: "均衡", Value: 1.0}},
		Compute:     computeLongShort,
		Series:      seriesLongShort,
	},
	{
		Name:        "fear_greed",
		Priority:    model.PriorityP1,
		URL:         "https://alternative.me/crypto/fear-and-greed-index/",
		Method:      "alternative.me 恐惧贪婪指数(0-100)",
		Description: "恐惧贪婪指数，极端恐惧看多、极端贪婪看空",
		Thresholds:  []Threshold{{Label: "极度恐惧", Value: 25}, {Label: "极度贪婪", Value: 75}},
		Compute:     computeFearGreed,
		Series:      seriesFearGreed,
	},

	// P2 弱信号
	{
		Name:        "hashrate_ribbon",
		Priority:    model.PriorityP2,
		URL:         "https://charts.bitbo.io/hash-ribbons/",
		Method:      "算力30日均线相对60日均线的偏离(%)",
		Description: "算力彩带，矿工投降/恢复信号",
		Thresholds:  []Threshold{{Label: "矿工投降", Value: -5}},
		Compute:     computeHashRibbon,
	},
	{
		Name:        "dominance",
		Priority:    model.PriorityP2,
		URL:         "https://www.coingecko.com/zh/global-charts",
		Method:      "BTC市值占加密总市值比例(%)",
		Description: "BTC市值占比，高占比通常处于避险/早期阶段",
		Compute:     computeDominance,
	},
	{
		Name:        "etf_flow",
		Priority:    model.PriorityP2,
		URL:         "https://www.coinglass.com/bitcoin-etf",
		Method:      "IBIT/FBTC/GBTC日成交额合计，单位十亿美元",
		Description: "ETF活跃度，传统资金参与热度",
		Thresholds:  []Threshold{{Label: "活跃", Value: 1.0}},
		Compute:     computeEtfFlow,
	},
	{
		Name:        "max_pain",
		Priority:    model.PriorityP2,
		URL:         "https://www.deribit.com/statistics/BTC/options-open-interest",
		Method:      "Deribit主力到期日期权链的最大痛点价，仅供参考不计分",
		Description: "期权最大痛点，临近交割时价格易向痛点回归",
		Compute:     computeMaxPain,
	},
	{
		Name:        "treasury_holdings",
		Priority:    model.PriorityP2,
		URL:         "https://www.coingecko.com/zh/public-companies-bitcoin",
		Method:      "上市公司合计持有BTC数量",
		Description: "机构持仓，仅供参考不计分",
		Compute:     computeHoldings,
	},
}

var byName map[string]*Definition

func init() {
	byName = make(map[string]*Definition, len(registry))
	for _, def := range registry {
		byName[def.Name] = def
	}
}

// All 返回全部指标定义，顺序固定
func All() []*Definition {
	return registry
}

// Lookup 按名字找指标定义
func Lookup(name string) (*Definition, bool) {
	def, ok := byName[name]
	return def, ok
}
