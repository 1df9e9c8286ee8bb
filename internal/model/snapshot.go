package model

import "time"

// Snapshot 一次完整计算周期的结果，构造后不再修改，
// 下个周期生成新的快照整体替换
type Snapshot struct {
	Timestamp      time.Time            `json:"timestamp"`
	BtcPrice       float64              `json:"btc_price"`
	Indicators     map[string]Indicator `json:"indicators"`
	TotalScore     float64              `json:"total_score"`
	Recommendation string               `json:"recommendation"`
}

// HistoryPoint 单个指标的历史点位，(指标,日期)唯一，后写覆盖先写
type HistoryPoint struct {
	Date  string  `json:"date"` // 2006-01-02
	Value float64 `json:"value"`
}
