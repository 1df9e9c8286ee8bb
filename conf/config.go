package conf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// 配置加载（服务端口、数据源、日志等）

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

// RedisConfig is used to configure redis
type RedisConfig struct {
	Addr         string `yaml:"address"`
	Password     string `yaml:"password"`
	Db           int    `yaml:"db"`
	PoolSize     int    `yaml:"pool-size"`
	MinIdleConns int    `yaml:"min-idle-conns"`
	IdleTimeout  int    `yaml:"idle-timeout"`
}

// DatasourceConfig 各外部行情/链上数据源配置
// 所有地址均为公共接口，无需密钥
type DatasourceConfig struct {
	CoinGeckoURL      string        `yaml:"coingecko_url"`
	BinanceSpotURL    string        `yaml:"binance_spot_url"`
	BinanceFuturesURL string        `yaml:"binance_futures_url"`
	AlternativeURL    string        `yaml:"alternative_url"`
	BlockchainURL     string        `yaml:"blockchain_url"`
	CoinbaseURL       string        `yaml:"coinbase_url"`
	YahooURL          string        `yaml:"yahoo_url"`
	DeribitURL        string        `yaml:"deribit_url"`
	Timeout           time.Duration `yaml:"-"` // 单数据源超时，超时即视为不可用
}

// yaml.v3不认识time.Duration的"10s"写法，经字符串字段中转一次
func (d *DatasourceConfig) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		CoinGeckoURL      string `yaml:"coingecko_url"`
		BinanceSpotURL    string `yaml:"binance_spot_url"`
		BinanceFuturesURL string `yaml:"binance_futures_url"`
		AlternativeURL    string `yaml:"alternative_url"`
		BlockchainURL     string `yaml:"blockchain_url"`
		CoinbaseURL       string `yaml:"coinbase_url"`
		YahooURL          string `yaml:"yahoo_url"`
		DeribitURL        string `yaml:"deribit_url"`
		Timeout           string `yaml:"timeout"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	d.CoinGeckoURL = aux.CoinGeckoURL
	d.BinanceSpotURL = aux.BinanceSpotURL
	d.BinanceFuturesURL = aux.BinanceFuturesURL
	d.AlternativeURL = aux.AlternativeURL
	d.BlockchainURL = aux.BlockchainURL
	d.CoinbaseURL = aux.CoinbaseURL
	d.YahooURL = aux.YahooURL
	d.DeribitURL = aux.DeribitURL
	if aux.Timeout != "" {
		v, err := time.ParseDuration(aux.Timeout)
		if err != nil {
			return fmt.Errorf("invalid datasource.timeout %q: %w", aux.Timeout, err)
		}
		d.Timeout = v
	}
	return nil
}

// HistoryConfig 指标历史序列存储
type HistoryConfig struct {
	DBPath string `yaml:"db_path"` // sqlite 文件路径
}

// EngineConfig 快照计算引擎
type EngineConfig struct {
	RefreshInterval time.Duration `yaml:"-"`          // 定时刷新周期
	CacheTTL        time.Duration `yaml:"-"`          // 快照缓存有效期
	DailyBars       int           `yaml:"daily_bars"` // 拉取的日线根数
	KlineBars       int           `yaml:"kline_bars"` // 各周期K线根数（MACD用）
}

func (e *EngineConfig) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		RefreshInterval string `yaml:"refresh_interval"`
		CacheTTL        string `yaml:"cache_ttl"`
		DailyBars       int    `yaml:"daily_bars"`
		KlineBars       int    `yaml:"kline_bars"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	e.DailyBars = aux.DailyBars
	e.KlineBars = aux.KlineBars
	if aux.RefreshInterval != "" {
		v, err := time.ParseDuration(aux.RefreshInterval)
		if err != nil {
			return fmt.Errorf("invalid engine.refresh_interval %q: %w", aux.RefreshInterval, err)
		}
		e.RefreshInterval = v
	}
	if aux.CacheTTL != "" {
		v, err := time.ParseDuration(aux.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid engine.cache_ttl %q: %w", aux.CacheTTL, err)
		}
		e.CacheTTL = v
	}
	return nil
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`

	Log        LogConfig        `yaml:"log"`
	Redis      RedisConfig      `yaml:"redis"`
	Datasource DatasourceConfig `yaml:"datasource"`
	History    HistoryConfig    `yaml:"history"`
	Engine     EngineConfig     `yaml:"engine"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	AppConfig.applyDefaults()
	return nil
}

// 缺省值，保证裸配置也能启动
func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":5050"
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
	d := &c.Datasource
	if d.CoinGeckoURL == "" {
		d.CoinGeckoURL = "https://api.coingecko.com/api/v3"
	}
	if d.BinanceSpotURL == "" {
		d.BinanceSpotURL = "https://api.binance.com"
	}
	if d.BinanceFuturesURL == "" {
		d.BinanceFuturesURL = "https://fapi.binance.com"
	}
	if d.AlternativeURL == "" {
		d.AlternativeURL = "https://api.alternative.me"
	}
	if d.BlockchainURL == "" {
		d.BlockchainURL = "https://api.blockchain.info"
	}
	if d.CoinbaseURL == "" {
		d.CoinbaseURL = "https://api.coinbase.com"
	}
	if d.YahooURL == "" {
		d.YahooURL = "https://query2.finance.yahoo.com"
	}
	if d.DeribitURL == "" {
		d.DeribitURL = "https://www.deribit.com"
	}
	if d.Timeout == 0 {
		d.Timeout = 10 * time.Second
	}
	e := &c.Engine
	if e.RefreshInterval == 0 {
		e.RefreshInterval = 5 * time.Minute
	}
	if e.CacheTTL == 0 {
		e.CacheTTL = 5 * time.Minute
	}
	if e.DailyBars == 0 {
		e.DailyBars = 1500
	}
	if e.KlineBars == 0 {
		e.KlineBars = 120
	}
	if c.History.DBPath == "" {
		c.History.DBPath = "data/history.db"
	}
}
