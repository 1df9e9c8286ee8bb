package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"btcpulse/internal/model"
)

// blockchain.info 图表接口：全网算力

// HashrateSeries 最近days天的日算力序列（TH/s），升序
func (c *Client) HashrateSeries(ctx context.Context, days int) ([]model.TimedValue, error) {
	const source = "blockchain_hashrate"
	var out struct {
		Values []struct {
			X int64   `json:"x"` // unix秒
			Y float64 `json:"y"`
		} `json:"values"`
	}
	url := fmt.Sprintf("%s/charts/hash-rate?timespan=%ddays&format=json&sampled=false",
		c.cfg.BlockchainURL, days)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return nil, err
	}
	if len(out.Values) == 0 {
		return nil, parseErr(source, "empty hash-rate response")
	}
	values := make([]model.TimedValue, 0, len(out.Values))
	for _, v := range out.Values {
		values = append(values, model.TimedValue{Timestamp: time.Unix(v.X, 0), Value: v.Y})
	}
	return values, nil
}

// CoinbasePrice 现货价的最后一级fallback
func (c *Client) CoinbasePrice(ctx context.Context) (float64, error) {
	const source = "coinbase"
	var out struct {
		Data struct {
			Amount string `json:"amount"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/v2/prices/BTC-USD/spot", c.cfg.CoinbaseURL)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	price := cast.ToFloat64(out.Data.Amount)
	if price <= 0 {
		return 0, parseErr(source, "bad amount %q", out.Data.Amount)
	}
	return price, nil
}
