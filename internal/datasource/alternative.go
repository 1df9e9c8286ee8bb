package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"btcpulse/internal/model"
)

// alternative.me 恐惧贪婪指数

type fngResponse struct {
	Data []struct {
		Value     string `json:"value"`
		Timestamp string `json:"timestamp"` // 秒级unix，字符串
	} `json:"data"`
}

// FearGreed 最新恐贪指数（0-100）
func (c *Client) FearGreed(ctx context.Context) (float64, error) {
	const source = "alternative_fng"
	var out fngResponse
	url := fmt.Sprintf("%s/fng/?limit=1", c.cfg.AlternativeURL)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	if len(out.Data) == 0 {
		return 0, parseErr(source, "empty fng response")
	}
	return cast.ToFloat64(out.Data[0].Value), nil
}

// FearGreedHistory 最近days天的恐贪指数，升序。接口返回倒序，这里反转
func (c *Client) FearGreedHistory(ctx context.Context, days int) ([]model.TimedValue, error) {
	const source = "alternative_fng"
	var out fngResponse
	url := fmt.Sprintf("%s/fng/?limit=%d", c.cfg.AlternativeURL, days)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return nil, err
	}
	values := make([]model.TimedValue, 0, len(out.Data))
	for i := len(out.Data) - 1; i >= 0; i-- {
		item := out.Data[i]
		values = append(values, model.TimedValue{
			Timestamp: time.Unix(cast.ToInt64(item.Timestamp), 0),
			Value:     cast.ToFloat64(item.Value),
		})
	}
	return values, nil
}
