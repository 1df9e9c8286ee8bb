package histapi

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcpulse/conf"
	"btcpulse/internal/datasource"
	"btcpulse/internal/engine"
	"btcpulse/internal/history"
	"btcpulse/internal/model"
)

func newTestRouter(t *testing.T) (*gin.Engine, *history.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	// 历史接口只读sqlite，数据源不会被触达，给个空地址即可
	eng := engine.New(datasource.NewClient(conf.DatasourceConfig{Timeout: time.Second}), store, nil, conf.EngineConfig{
		CacheTTL:        time.Minute,
		RefreshInterval: time.Minute,
	})

	h := NewHandler(eng)
	g := gin.New()
	g.GET("/api/history/:name", h.History())
	return g, store
}

func TestHistoryOK(t *testing.T) {
	g, store := newTestRouter(t)
	require.NoError(t, store.Append("ahr999", []model.HistoryPoint{
		{Date: "2026-08-01", Value: 0.9},
		{Date: "2026-08-02", Value: 0.95},
	}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/ahr999?days=30", nil)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success    bool      `json:"success"`
		Indicator  string    `json:"indicator"`
		Dates      []string  `json:"dates"`
		Values     []float64 `json:"values"`
		Thresholds []struct {
			Label string  `json:"label"`
			Value float64 `json:"value"`
		} `json:"thresholds"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ahr999", body.Indicator)
	require.Len(t, body.Dates, 2)
	require.Len(t, body.Values, 2)
	assert.Equal(t, "2026-08-01", body.Dates[0])
	assert.InDelta(t, 0.9, body.Values[0], 1e-9)
	assert.NotEmpty(t, body.Thresholds)
}

func TestHistoryDefaultDays(t *testing.T) {
	g, store := newTestRouter(t)
	require.NoError(t, store.Append("ahr999", []model.HistoryPoint{{Date: "2026-08-01", Value: 0.9}}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/ahr999", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHistoryUnknownIndicator(t *testing.T) {
	g, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/no_such_indicator", nil)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
}

func TestHistoryBadDays(t *testing.T) {
	g, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/ahr999?days=9999", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/history/ahr999?days=abc", nil)
	g.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryEmptyForKnownIndicator(t *testing.T) {
	// 已注册但还没有落盘数据的指标返回空数组而不是404
	g, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/history/nupl?days=30", nil)
	g.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool      `json:"success"`
		Dates   []string  `json:"dates"`
		Values  []float64 `json:"values"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Empty(t, body.Dates)
	assert.Empty(t, body.Values)
}
