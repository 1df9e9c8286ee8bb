package datasource

import (
	"context"
	"strings"

	"github.com/spf13/cast"

	"btcpulse/internal/model"
)

type deribitBookResp struct {
	Result []struct {
		InstrumentName string  `json:"instrument_name"`
		OpenInterest   float64 `json:"open_interest"`
	} `json:"result"`
}

// OptionBook 拉取Deribit全部BTC期权的持仓摘要。
// 合约名形如 BTC-27MAR26-60000-C，零持仓与格式异常的合约直接丢弃
func (c *Client) OptionBook(ctx context.Context) ([]model.OptionOI, error) {
	const source = "deribit"

	url := c.cfg.DeribitURL + "/api/v2/public/get_book_summary_by_currency?currency=BTC&kind=option"
	var out deribitBookResp
	if err := c.getJSON(ctx, source, url, &out); err != nil {
		return nil, err
	}

	options := make([]model.OptionOI, 0, len(out.Result))
	for _, item := range out.Result {
		if item.OpenInterest <= 0 {
			continue
		}
		parts := strings.Split(item.InstrumentName, "-")
		if len(parts) != 4 {
			continue
		}
		strike := cast.ToFloat64(parts[2])
		if strike <= 0 {
			continue
		}
		options = append(options, model.OptionOI{
			Expiry: parts[1],
			Strike: strike,
			Call:   parts[3] == "C",
			OI:     item.OpenInterest,
		})
	}
	if len(options) == 0 {
		return nil, parseErr(source, "no active options")
	}
	return options, nil
}
