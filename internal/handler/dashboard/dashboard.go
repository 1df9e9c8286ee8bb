package dashboard

import (
	"github.com/gin-gonic/gin"

	"btcpulse/internal/consts"
	"btcpulse/internal/engine"
	"btcpulse/pkg/response"
)

// Handler 仪表盘接口：完整快照与强制刷新
type Handler struct {
	engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

// Dashboard 返回最新快照。缓存期内直接出缓存，过期同步算一轮
func (h *Handler) Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := h.engine.Snapshot(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, gin.H{
			"timestamp":      snap.Timestamp.Format(consts.TimeLayout),
			"btc_price":      snap.BtcPrice,
			"indicators":     snap.Indicators,
			"total_score":    snap.TotalScore,
			"recommendation": snap.Recommendation,
		})
	}
}

// Refresh 跳过缓存强制刷新一轮，给前端的"立即刷新"按钮用
func (h *Handler) Refresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := h.engine.Refresh(c.Request.Context())
		if err != nil {
			response.Fail(c, err)
			return
		}
		response.OK(c, gin.H{
			"timestamp":      snap.Timestamp.Format(consts.TimeLayout),
			"total_score":    snap.TotalScore,
			"recommendation": snap.Recommendation,
		})
	}
}
