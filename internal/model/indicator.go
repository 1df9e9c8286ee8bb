package model

// 指标优先级：P0长周期结构信号，P1短周期/择时信号，P2辅助参考信号
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
)

// Weight 聚合权重：P0最高，P2最低
func (p Priority) Weight() float64 {
	switch p {
	case PriorityP0:
		return 3
	case PriorityP1:
		return 2
	case PriorityP2:
		return 1
	default:
		return 0
	}
}

// 前端展示色。gray专用于数据不可用或仅供参考的指标，
// 下游不得把gray当作中性0分处理
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// Indicator 单个指标的评分结果
// 不变式：数据不可用时Value与Score均为nil且Color为gray；
// 仅供参考的指标有Value无Score，同样标gray不参与计分
type Indicator struct {
	Name        string   `json:"name"`
	Priority    Priority `json:"priority"`
	Value       *float64 `json:"value"`
	Score       *float64 `json:"score"`
	Status      string   `json:"status"`
	Color       Color    `json:"color"`
	URL         string   `json:"url,omitempty"`
	Method      string   `json:"method,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Available 数据是否可用
func (ind Indicator) Available() bool {
	return ind.Value != nil && ind.Score != nil
}

// Float 便捷构造指针
func Float(v float64) *float64 { return &v }
