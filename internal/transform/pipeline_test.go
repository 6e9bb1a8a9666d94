package transform

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscore/internal/artifacts"
	"fraudscore/pkg/logger"
)

func TestPipelineRun(t *testing.T) {
	bundle := &artifacts.Bundle{
		Features: []string{"amount", "hour", "dow", "is_weekend", "dist_km", "cat_id"},
		Medians:  map[string]float64{"amount": 42.0},
		RareMaps: map[string]map[string]string{
			"cat_id": {"grocery pos": "grocery pos"},
		},
		Threshold: 0.5,
	}

	raw := dataframe.New(
		series.New([]string{"1", "2"}, series.String, "id"),
		series.New([]string{"2023-07-15T23:30:00", "garbage"}, series.String, "transaction_time"),
		series.New([]string{"40.0", "40.0"}, series.String, "lat"),
		series.New([]string{"-75.0", "-75.0"}, series.String, "lon"),
		series.New([]string{"40.0", "41.0"}, series.String, "merchant_lat"),
		series.New([]string{"-75.0", "-75.0"}, series.String, "merchant_lon"),
		series.New([]string{"", "19.9"}, series.String, "amount"),
		series.New([]string{" Grocery POS ", "electronics"}, series.String, "cat_id"),
	)

	p := NewPipeline(DefaultSchema(), bundle, logger.Get())
	out, err := p.Run(raw)
	require.NoError(t, err)

	// Output schema is exactly id + the ordered feature list
	assert.Equal(t, []string{"id", "amount", "hour", "dow", "is_weekend", "dist_km", "cat_id"}, out.Names())
	assert.Equal(t, []string{"1", "2"}, out.Col("id").Records())

	// Missing amount filled with the artifact median, not the batch one
	assert.Equal(t, []float64{42.0, 19.9}, out.Col("amount").Float())

	// Saturday 23:30 and an unparseable timestamp
	assert.Equal(t, []float64{23, -1}, out.Col("hour").Float())
	assert.Equal(t, []float64{5, -1}, out.Col("dow").Float())
	assert.Equal(t, []float64{1, 0}, out.Col("is_weekend").Float())

	// Same point distance is exactly zero
	dist := out.Col("dist_km").Float()
	assert.Equal(t, 0.0, dist[0])
	assert.Greater(t, dist[1], 100.0)

	// Normalized category kept, unseen category collapsed
	assert.Equal(t, []string{"grocery pos", SentinelRare}, out.Col("cat_id").Records())
}

func TestPipelineRunWithoutOptionalArtifacts(t *testing.T) {
	bundle := &artifacts.Bundle{
		Features:  []string{"amount", "dist_km"},
		Threshold: 0.5,
	}

	raw := dataframe.New(
		series.New([]string{"7"}, series.String, "id"),
		series.New([]string{"12.0"}, series.String, "amount"),
	)

	p := NewPipeline(DefaultSchema(), bundle, logger.Get())
	out, err := p.Run(raw)
	require.NoError(t, err)

	// No coordinates: dist_km synthesized by the imputer, zero-filled
	// by the batch-median fallback over an all-missing column
	assert.Equal(t, []string{"id", "amount", "dist_km"}, out.Names())
	assert.Equal(t, []float64{0.0}, out.Col("dist_km").Float())
	assert.Equal(t, []float64{12.0}, out.Col("amount").Float())
}
