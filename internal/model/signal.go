package model

import "time"

// 从外部数据源取回的原始信号。一次抓取产生一个不可变的RawSignal，
// 下个周期产生新的实例覆盖引用，不做原地修改

// Kline 单根K线
type Kline struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// PricePoint 日线收盘价
type PricePoint struct {
	Date  time.Time
	Close float64
}

// LongShortSample 全球多空账户比采样
type LongShortSample struct {
	Timestamp time.Time
	Ratio     float64
	LongPct   float64
	ShortPct  float64
}

// TimedValue 带时间戳的标量采样（资金费率、恐贪指数等）
type TimedValue struct {
	Timestamp time.Time
	Value     float64
}

// OptionOI 单张期权合约的持仓量摘要，来自Deribit期权链
type OptionOI struct {
	Expiry string  // 到期日原文，如 27MAR26
	Strike float64 // 行权价
	Call   bool    // true=Call, false=Put
	OI     float64 // 持仓量（BTC计）
}

// RawSignals 一次快照周期内引擎收集到的全部原始输入。
// 字段为nil表示对应数据源本周期不可用，由各指标自行降级为gray
type RawSignals struct {
	AsOf time.Time

	Price *float64 // 现货价（多源fallback后的结果）

	Daily []PricePoint // 日线收盘价序列，升序

	// interval → K线序列（升序），MACD多周期用
	Klines map[string][]Kline

	FundingRate *float64 // 最新资金费率，百分比
	LongShort   *LongShortSample
	FearGreed   *float64 // 0-100

	Hashrate []TimedValue // 日算力序列，升序

	Dominance *float64 // BTC市占率百分比
	Holdings  *float64 // 上市公司总持仓BTC

	EtfVolume *float64   // 主流现货ETF合计日成交额，单位十亿美元
	Options   []OptionOI // 期权持仓链，算最大痛点用

	// 历史序列，engine写入history store用
	FundingHistory   []TimedValue
	LongShortHistory []TimedValue
	FearGreedHistory []TimedValue
}
