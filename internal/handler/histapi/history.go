package histapi

import (
	"github.com/gin-gonic/gin"

	"btcpulse/internal/engine"
	"btcpulse/internal/indicator"
	"btcpulse/pkg/errors"
	"btcpulse/pkg/errors/ecode"
	"btcpulse/pkg/response"
	"btcpulse/pkg/validator"
)

// Handler 指标历史序列接口
type Handler struct {
	engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

type historyReq struct {
	Days int `form:"days,default=30" json:"days" binding:"omitempty,min=1,max=365"`
}

// History GET /api/history/:name?days=30
// days超出[7,90]会被收敛到边界而不是报错
func (h *Handler) History() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req historyReq
		if err := c.ShouldBindQuery(&req); err != nil {
			response.Fail(c, errors.New(ecode.BadRequestErr, validator.Translate(err)))
			return
		}

		name := c.Param("name")
		points, err := h.engine.History(name, req.Days)
		if err != nil {
			response.Fail(c, err)
			return
		}

		// 前端mini图按平行数组渲染
		dates := make([]string, len(points))
		values := make([]float64, len(points))
		for i, p := range points {
			dates[i] = p.Date
			values[i] = p.Value
		}

		def, _ := indicator.Lookup(name)
		response.OK(c, gin.H{
			"indicator":  name,
			"dates":      dates,
			"values":     values,
			"thresholds": def.Thresholds,
		})
	}
}
