package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02 15:04:05"
)

const (
	// 快照缓存的redis键
	SnapshotCacheKey = "btcpulse:snapshot:latest"
)

const (
	// 历史查询天数上下限，与前端mini图约定一致
	HistoryDaysMin = 7
	HistoryDaysMax = 90
)
