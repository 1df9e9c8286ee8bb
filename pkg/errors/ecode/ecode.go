package ecode

// 错误码定义，0表示成功

const (
	Success = 0

	// 通用错误
	InternalErr   = 10001 // 内部错误
	BadRequestErr = 10002 // 请求参数错误
	NotFoundErr   = 10003 // 资源不存在

	// 业务错误
	SnapshotFailedErr     = 20001 // 本次快照计算失败（所有价格源均不可用）
	IndicatorUnknownErr   = 20002 // 未知指标
	HistoryUnavailableErr = 20003 // 历史数据读取失败
)

var messages = map[int]string{
	Success:               "OK",
	InternalErr:           "internal error",
	BadRequestErr:         "invalid request parameter",
	NotFoundErr:           "not found",
	SnapshotFailedErr:     "snapshot computation failed",
	IndicatorUnknownErr:   "unknown indicator",
	HistoryUnavailableErr: "history unavailable",
}

// Message 返回错误码对应的默认文案
func Message(code int) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[InternalErr]
}
