package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"btcpulse/internal/consts"
	"btcpulse/pkg/errors"
	"btcpulse/pkg/errors/ecode"
)

// 统一响应格式。前端约定：成功 {"success": true, ...}，失败 {"success": false, "error": "..."}

// OK 发送成功响应，payload中的字段平铺在success旁边
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{
		"success":    true,
		"request_id": c.GetString(consts.RequestId),
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail 发送失败响应，http状态码由错误码决定
func Fail(c *gin.Context, err error) {
	code, message := errors.DecodeErr(err)
	var httpStatus int
	switch code {
	case ecode.BadRequestErr:
		httpStatus = http.StatusBadRequest
	case ecode.NotFoundErr, ecode.IndicatorUnknownErr:
		httpStatus = http.StatusNotFound
	default:
		// 快照失败等服务端问题返回500，与原Flask行为一致
		httpStatus = http.StatusInternalServerError
	}
	c.JSON(httpStatus, gin.H{
		"success":    false,
		"error":      message,
		"request_id": c.GetString(consts.RequestId),
	})
}
