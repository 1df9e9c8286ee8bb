package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.applyDefaults()

	assert.Equal(t, ":5050", c.Listen)
	assert.Equal(t, "https://api.coingecko.com/api/v3", c.Datasource.CoinGeckoURL)
	assert.Equal(t, "https://fapi.binance.com", c.Datasource.BinanceFuturesURL)
	assert.Equal(t, "https://query2.finance.yahoo.com", c.Datasource.YahooURL)
	assert.Equal(t, "https://www.deribit.com", c.Datasource.DeribitURL)
	assert.Equal(t, 10*time.Second, c.Datasource.Timeout)
	assert.Equal(t, 5*time.Minute, c.Engine.RefreshInterval)
	assert.Equal(t, 5*time.Minute, c.Engine.CacheTTL)
	assert.Equal(t, 1500, c.Engine.DailyBars)
	assert.Equal(t, "data/history.db", c.History.DBPath)
}

func TestLoadConfigParsesDurations(t *testing.T) {
	content := `
listen: ":6060"
datasource:
  timeout: 3s
engine:
  refresh_interval: 10m
  cache_ttl: 2m
  daily_bars: 800
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, ":6060", AppConfig.Listen)
	assert.Equal(t, 3*time.Second, AppConfig.Datasource.Timeout)
	assert.Equal(t, 10*time.Minute, AppConfig.Engine.RefreshInterval)
	assert.Equal(t, 2*time.Minute, AppConfig.Engine.CacheTTL)
	assert.Equal(t, 800, AppConfig.Engine.DailyBars)
	// 未给出的字段补默认值
	assert.Equal(t, "https://api.binance.com", AppConfig.Datasource.BinanceSpotURL)
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasource:\n  timeout: banana\n"), 0o644))
	assert.Error(t, LoadConfig(path))
}

func TestApplyDefaultsKeepsExplicit(t *testing.T) {
	c := Config{Listen: ":8080"}
	c.Engine.DailyBars = 600
	c.applyDefaults()

	assert.Equal(t, ":8080", c.Listen)
	assert.Equal(t, 600, c.Engine.DailyBars)
}
