package datasource

import (
	"context"
	"fmt"

	"btcpulse/pkg/logger"
)

// CoinGecko 公共接口：现货价、市占率、上市公司持仓

// CoinGeckoPrice 现货最新价（USD）
func (c *Client) CoinGeckoPrice(ctx context.Context) (float64, error) {
	const source = "coingecko"
	var out map[string]map[string]float64
	url := fmt.Sprintf("%s/simple/price?ids=bitcoin&vs_currencies=usd", c.cfg.CoinGeckoURL)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	price, ok := out["bitcoin"]["usd"]
	if !ok || price <= 0 {
		return 0, parseErr(source, "missing bitcoin.usd in response")
	}
	return price, nil
}

// Dominance BTC市占率百分比
func (c *Client) Dominance(ctx context.Context) (float64, error) {
	const source = "coingecko_global"
	var out struct {
		Data struct {
			MarketCapPercentage map[string]float64 `json:"market_cap_percentage"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/global", c.cfg.CoinGeckoURL)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	d, ok := out.Data.MarketCapPercentage["btc"]
	if !ok || d <= 0 {
		return 0, parseErr(source, "missing market_cap_percentage.btc")
	}
	return d, nil
}

// TreasuryHoldings 上市公司BTC总持仓
func (c *Client) TreasuryHoldings(ctx context.Context) (float64, error) {
	const source = "coingecko_treasury"
	var out struct {
		TotalHoldings float64 `json:"total_holdings"`
	}
	url := fmt.Sprintf("%s/companies/public_treasury/bitcoin", c.cfg.CoinGeckoURL)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	if out.TotalHoldings <= 0 {
		return 0, parseErr(source, "non-positive total_holdings")
	}
	return out.TotalHoldings, nil
}

// SpotPrice 现货价，多源fallback：CoinGecko → Binance → Coinbase。
// 全部失败返回最后一个错误
func (c *Client) SpotPrice(ctx context.Context) (float64, error) {
	price, err := c.CoinGeckoPrice(ctx)
	if err == nil {
		return price, nil
	}
	logger.Warn("coingecko price unavailable, falling back", logger.Pair("err", err.Error()))

	price, err = c.BinancePrice(ctx)
	if err == nil {
		return price, nil
	}
	logger.Warn("binance price unavailable, falling back", logger.Pair("err", err.Error()))

	return c.CoinbasePrice(ctx)
}
