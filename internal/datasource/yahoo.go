package datasource

import (
	"context"
	"fmt"
)

// 主流BTC现货ETF，合计成交额代表传统资金的参与热度
var etfSymbols = []string{"IBIT", "FBTC", "GBTC"}

type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice  float64 `json:"regularMarketPrice"`
				RegularMarketVolume float64 `json:"regularMarketVolume"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

// EtfVolume 合计主流BTC现货ETF的最新日成交额，单位十亿美元。
// 逐只拉取，取到任意一只即算成功，全部失败才返回不可用
func (c *Client) EtfVolume(ctx context.Context) (float64, error) {
	const source = "yahoo"

	var totalUSD float64
	var fetched int
	var lastErr error
	for _, symbol := range etfSymbols {
		url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=2d", c.cfg.YahooURL, symbol)
		var out yahooChartResp
		if err := c.getJSON(ctx, source, url, &out); err != nil {
			lastErr = err
			continue
		}
		if len(out.Chart.Result) == 0 {
			lastErr = parseErr(source, "empty chart result for %s", symbol)
			continue
		}
		meta := out.Chart.Result[0].Meta
		if meta.RegularMarketPrice <= 0 || meta.RegularMarketVolume <= 0 {
			lastErr = parseErr(source, "non-positive quote for %s", symbol)
			continue
		}
		totalUSD += meta.RegularMarketPrice * meta.RegularMarketVolume
		fetched++
	}
	if fetched == 0 {
		if lastErr != nil {
			return 0, lastErr
		}
		return 0, parseErr(source, "no etf quotes")
	}
	return totalUSD / 1e9, nil
}
