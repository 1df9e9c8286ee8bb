package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"btcpulse/conf"
)

// 数据源适配层。所有可预期的失败（超时、非200、限流、解析失败）
// 一律归一化为*Unavailable返回，绝不panic，也不让单个源的失败
// 波及同一周期内的其他指标

// Reason 不可用原因
type Reason string

const (
	ReasonTimeout     Reason = "timeout"
	ReasonHTTPError   Reason = "http_error"
	ReasonParseError  Reason = "parse_error"
	ReasonRateLimited Reason = "rate_limited"
)

// Unavailable 数据源不可用，调用方应将对应指标降级为gray
type Unavailable struct {
	Source string
	Reason Reason
	Err    error
}

func (u *Unavailable) Error() string {
	return fmt.Sprintf("datasource %s unavailable (%s): %v", u.Source, u.Reason, u.Err)
}

func (u *Unavailable) Unwrap() error { return u.Err }

// AsUnavailable 判断错误是否为数据源不可用
func AsUnavailable(err error) (*Unavailable, bool) {
	var u *Unavailable
	ok := errors.As(err, &u)
	return u, ok
}

// Client 聚合全部外部行情/链上数据源的HTTP客户端
type Client struct {
	cfg conf.DatasourceConfig
	hc  *http.Client
}

func NewClient(cfg conf.DatasourceConfig) *Client {
	return &Client{
		cfg: cfg,
		// 不在Transport层设总超时，每次请求用context控制单源超时
		hc: &http.Client{},
	}
}

// getJSON 携带单源超时的GET，响应解析到result。
// 错误统一映射为*Unavailable
func (c *Client) getJSON(ctx context.Context, source, url string, result interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Unavailable{Source: source, Reason: ReasonHTTPError, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "btcpulse/1.0")

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &Unavailable{Source: source, Reason: ReasonTimeout, Err: err}
		}
		return &Unavailable{Source: source, Reason: ReasonHTTPError, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 418:
		// 418是Binance对高频IP的封禁码
		return &Unavailable{Source: source, Reason: ReasonRateLimited,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	default:
		return &Unavailable{Source: source, Reason: ReasonHTTPError,
			Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Unavailable{Source: source, Reason: ReasonHTTPError, Err: err}
	}
	if err := json.Unmarshal(body, result); err != nil {
		return &Unavailable{Source: source, Reason: ReasonParseError, Err: err}
	}
	return nil
}

// parseErr 构造解析类不可用错误，响应格式和预期不符时用
func parseErr(source string, format string, args ...interface{}) error {
	return &Unavailable{Source: source, Reason: ReasonParseError,
		Err: fmt.Errorf(format, args...)}
}

// dayKey 按日折叠采样时的键
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
