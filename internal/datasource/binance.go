package datasource

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cast"

	"btcpulse/internal/model"
)

// Binance 公共行情接口（现货K线、合约资金费率、多空比），无需密钥

const symbolBTCUSDT = "BTCUSDT"

// binance的kline响应是数组的数组：[openTime,"o","h","l","c","v",closeTime,...]
type binanceKlineRow = []interface{}

// BinancePrice 现货最新价，作为CoinGecko失败时的备选
func (c *Client) BinancePrice(ctx context.Context) (float64, error) {
	const source = "binance_spot"
	var out struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.cfg.BinanceSpotURL, symbolBTCUSDT)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	price := cast.ToFloat64(out.Price)
	if price <= 0 {
		return 0, parseErr(source, "bad price %q", out.Price)
	}
	return price, nil
}

// Klines 拉取指定周期的K线，升序返回
func (c *Client) Klines(ctx context.Context, interval string, limit int) ([]model.Kline, error) {
	source := "binance_klines_" + interval
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		c.cfg.BinanceSpotURL, symbolBTCUSDT, interval, limit)
	var rows []binanceKlineRow
	if err := c.getJSON(ctx, source, url, &rows); err != nil {
		return nil, err
	}
	klines, err := parseKlineRows(source, rows)
	if err != nil {
		return nil, err
	}
	return klines, nil
}

// DailyCloses 拉取最近bars根日线收盘价。Binance单次最多1000根，
// 超过时按起始时间分页拼接
func (c *Client) DailyCloses(ctx context.Context, bars int) ([]model.PricePoint, error) {
	const source = "binance_daily"
	const pageLimit = 1000

	start := time.Now().UTC().AddDate(0, 0, -bars)
	var points []model.PricePoint
	for {
		url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&startTime=%d&limit=%d",
			c.cfg.BinanceSpotURL, symbolBTCUSDT, start.UnixMilli(), pageLimit)
		var rows []binanceKlineRow
		if err := c.getJSON(ctx, source, url, &rows); err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			break
		}
		klines, err := parseKlineRows(source, rows)
		if err != nil {
			return nil, err
		}
		for _, k := range klines {
			points = append(points, model.PricePoint{Date: k.Timestamp, Close: k.Close})
		}
		if len(rows) < pageLimit {
			break
		}
		start = klines[len(klines)-1].Timestamp.Add(24 * time.Hour)
	}
	if len(points) == 0 {
		return nil, parseErr(source, "empty kline response")
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points, nil
}

// FundingRate 最新一期资金费率，返回百分比
func (c *Client) FundingRate(ctx context.Context) (float64, error) {
	const source = "binance_funding"
	var out []struct {
		FundingRate string `json:"fundingRate"`
		FundingTime int64  `json:"fundingTime"`
	}
	url := fmt.Sprintf("%s/fapi/v1/fundingRate?symbol=%s&limit=1", c.cfg.BinanceFuturesURL, symbolBTCUSDT)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, parseErr(source, "empty funding response")
	}
	return cast.ToFloat64(out[0].FundingRate) * 100, nil
}

// FundingHistory 最近days天的资金费率，每8小时一期，按日取末期折叠
func (c *Client) FundingHistory(ctx context.Context, days int) ([]model.TimedValue, error) {
	const source = "binance_funding"
	var out []struct {
		FundingRate string `json:"fundingRate"`
		FundingTime int64  `json:"fundingTime"`
	}
	url := fmt.Sprintf("%s/fapi/v1/fundingRate?symbol=%s&limit=%d",
		c.cfg.BinanceFuturesURL, symbolBTCUSDT, days*3)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return nil, err
	}
	daily := make(map[string]model.TimedValue, days)
	for _, item := range out {
		ts := time.UnixMilli(item.FundingTime)
		daily[dayKey(ts)] = model.TimedValue{
			Timestamp: ts,
			Value:     cast.ToFloat64(item.FundingRate) * 100,
		}
	}
	return sortedDaily(daily, days), nil
}

// LongShortRatio 最新全球多空账户比（1小时粒度）
func (c *Client) LongShortRatio(ctx context.Context) (*model.LongShortSample, error) {
	const source = "binance_longshort"
	samples, err := c.longShort(ctx, source, "1h", 1)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, parseErr(source, "empty long/short response")
	}
	return &samples[len(samples)-1], nil
}

// LongShortHistory 最近days天的多空比（日粒度）
func (c *Client) LongShortHistory(ctx context.Context, days int) ([]model.TimedValue, error) {
	const source = "binance_longshort"
	samples, err := c.longShort(ctx, source, "1d", days)
	if err != nil {
		return nil, err
	}
	values := make([]model.TimedValue, 0, len(samples))
	for _, s := range samples {
		values = append(values, model.TimedValue{Timestamp: s.Timestamp, Value: s.Ratio})
	}
	return values, nil
}

func (c *Client) longShort(ctx context.Context, source, period string, limit int) ([]model.LongShortSample, error) {
	var out []struct {
		LongShortRatio string `json:"longShortRatio"`
		LongAccount    string `json:"longAccount"`
		ShortAccount   string `json:"shortAccount"`
		Timestamp      int64  `json:"timestamp"`
	}
	url := fmt.Sprintf("%s/futures/data/globalLongShortAccountRatio?symbol=%s&period=%s&limit=%d",
		c.cfg.BinanceFuturesURL, symbolBTCUSDT, period, limit)
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return nil, err
	}
	samples := make([]model.LongShortSample, 0, len(out))
	for _, item := range out {
		samples = append(samples, model.LongShortSample{
			Timestamp: time.UnixMilli(item.Timestamp),
			Ratio:     cast.ToFloat64(item.LongShortRatio),
			LongPct:   cast.ToFloat64(item.LongAccount) * 100,
			ShortPct:  cast.ToFloat64(item.ShortAccount) * 100,
		})
	}
	return samples, nil
}

func parseKlineRows(source string, rows []binanceKlineRow) ([]model.Kline, error) {
	klines := make([]model.Kline, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			return nil, parseErr(source, "short kline row: %d fields", len(row))
		}
		klines = append(klines, model.Kline{
			Timestamp: time.UnixMilli(cast.ToInt64(row[0])),
			Open:      cast.ToFloat64(row[1]),
			High:      cast.ToFloat64(row[2]),
			Low:       cast.ToFloat64(row[3]),
			Close:     cast.ToFloat64(row[4]),
			Volume:    cast.ToFloat64(row[5]),
		})
	}
	return klines, nil
}

// sortedDaily 把按日折叠的map整理为升序序列，最多保留days个
func sortedDaily(daily map[string]model.TimedValue, days int) []model.TimedValue {
	values := make([]model.TimedValue, 0, len(daily))
	for _, v := range daily {
		values = append(values, v)
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Timestamp.Before(values[j].Timestamp) })
	if len(values) > days {
		values = values[len(values)-days:]
	}
	return values
}
