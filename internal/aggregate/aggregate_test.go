package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btcpulse/internal/model"
)

func scoredIndicator(p model.Priority, score float64) model.Indicator {
	return model.Indicator{
		Priority: p,
		Value:    model.Float(score),
		Score:    model.Float(score),
	}
}

func grayIndicator(p model.Priority) model.Indicator {
	return model.Indicator{Priority: p, Color: model.ColorGray}
}

func TestTotalScoreWeighting(t *testing.T) {
	// P0权重3、P1权重2：(1*3 + -1*2) / 5 = 0.2
	indicators := map[string]model.Indicator{
		"a": scoredIndicator(model.PriorityP0, 1),
		"b": scoredIndicator(model.PriorityP1, -1),
	}
	score, ok := TotalScore(indicators)
	require.True(t, ok)
	assert.InDelta(t, 0.2, score, 1e-9)
}

func TestTotalScoreExcludesGray(t *testing.T) {
	// gray指标既不计分子也不计分母，不能把无数据稀释成中性
	indicators := map[string]model.Indicator{
		"a": scoredIndicator(model.PriorityP1, 0.8),
		"b": grayIndicator(model.PriorityP0),
		"c": grayIndicator(model.PriorityP0),
	}
	score, ok := TotalScore(indicators)
	require.True(t, ok)
	assert.InDelta(t, 0.8, score, 1e-9)
}

func TestTotalScoreAllGray(t *testing.T) {
	indicators := map[string]model.Indicator{
		"a": grayIndicator(model.PriorityP0),
		"b": grayIndicator(model.PriorityP2),
	}
	_, ok := TotalScore(indicators)
	assert.False(t, ok)

	score, rec := Summarize(indicators)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, RecNoData, rec)
}

func TestTotalScoreIdempotent(t *testing.T) {
	indicators := map[string]model.Indicator{
		"a": scoredIndicator(model.PriorityP0, 0.4),
		"b": scoredIndicator(model.PriorityP1, -0.3),
		"c": scoredIndicator(model.PriorityP2, 0.9),
	}
	first, _ := TotalScore(indicators)
	second, _ := TotalScore(indicators)
	assert.Equal(t, first, second)
}

func TestRecommendBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1, RecStrongBuy},
		{0.5, RecStrongBuy},
		{0.49, RecBuy},
		{0.2, RecBuy},
		{0.19, RecHold},
		{0, RecHold},
		{-0.29, RecHold},
		{-0.3, RecReduce},
		{-0.79, RecReduce},
		{-0.8, RecStrongSell},
		{-1, RecStrongSell},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Recommend(tc.score), "score=%f", tc.score)
	}
}

func TestRecommendCoversRange(t *testing.T) {
	// [-1,1]上每个点都要有建议，且不会是"数据不足"
	for s := -1.0; s <= 1.0; s += 0.01 {
		rec := Recommend(s)
		assert.NotEmpty(t, rec)
		assert.NotEqual(t, RecNoData, rec)
	}
}
