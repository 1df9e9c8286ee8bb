package history

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcpulse/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	points := []model.HistoryPoint{
		{Date: "2026-08-01", Value: 1.1},
		{Date: "2026-08-02", Value: 1.2},
		{Date: "2026-08-03", Value: 1.3},
	}
	require.NoError(t, store.Append("ahr999", points))

	got, err := store.Query("ahr999", 30)
	require.NoError(t, err)
	assert.Equal(t, points, got)
}

func TestStoreUpsertOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Append("ahr999", []model.HistoryPoint{{Date: "2026-08-01", Value: 1.0}}))
	// 同一(指标,日期)重算后覆盖，不产生重复行
	require.NoError(t, store.Append("ahr999", []model.HistoryPoint{{Date: "2026-08-01", Value: 2.0}}))

	got, err := store.Query("ahr999", 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2.0, got[0].Value)
}

func TestStoreQueryLimitAndOrder(t *testing.T) {
	store := newTestStore(t)

	var points []model.HistoryPoint
	for d := 1; d <= 20; d++ {
		points = append(points, model.HistoryPoint{
			Date:  fmt.Sprintf("2026-08-%02d", d),
			Value: float64(d),
		})
	}
	require.NoError(t, store.Append("mayer_multiple", points))

	got, err := store.Query("mayer_multiple", 7)
	require.NoError(t, err)
	require.Len(t, got, 7)
	// 取最近7天且升序返回
	assert.Equal(t, "2026-08-14", got[0].Date)
	assert.Equal(t, "2026-08-20", got[6].Date)
	assert.Equal(t, 20.0, got[6].Value)
}

func TestStoreQueryUnknownName(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Query("nonexistent", 30)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreIsolatesIndicators(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append("ahr999", []model.HistoryPoint{{Date: "2026-08-01", Value: 1.0}}))
	require.NoError(t, store.Append("nupl", []model.HistoryPoint{{Date: "2026-08-01", Value: 0.5}}))

	got, err := store.Query("nupl", 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 0.5, got[0].Value)
}

