package transform

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFeatures(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a1", "a2"}, series.String, "id"),
		series.New([]float64{10, 20}, series.Float, "amount"),
		series.New([]float64{1, 2}, series.Float, "dist_km"),
		series.New([]string{"40.0", "41.0"}, series.String, "lat"),
	)

	out, synthesized := SelectFeatures(df, DefaultSchema(), []string{"amount", "dist_km"})
	require.NoError(t, out.Err)

	assert.Equal(t, []string{"id", "amount", "dist_km"}, out.Names())
	assert.Equal(t, 0, synthesized)
	assert.Equal(t, []string{"a1", "a2"}, out.Col("id").Records())
	assert.Equal(t, []float64{10, 20}, out.Col("amount").Float())
}

func TestSelectFeaturesSynthesizesMissing(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a1", "a2"}, series.String, "id"),
		series.New([]float64{10, 20}, series.Float, "amount"),
	)

	out, synthesized := SelectFeatures(df, DefaultSchema(), []string{"amount", "dist_km", "hour"})
	require.NoError(t, out.Err)

	assert.Equal(t, []string{"id", "amount", "dist_km", "hour"}, out.Names())
	assert.Equal(t, 2, synthesized)
	assert.Equal(t, []float64{0, 0}, out.Col("dist_km").Float())
	assert.Equal(t, []float64{0, 0}, out.Col("hour").Float())
}

func TestSelectFeaturesColumnOrderFollowsFeatureList(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"a1"}, series.String, "id"),
		series.New([]float64{1}, series.Float, "b"),
		series.New([]float64{2}, series.Float, "a"),
		series.New([]float64{3}, series.Float, "c"),
	)

	out, _ := SelectFeatures(df, DefaultSchema(), []string{"c", "a", "b"})
	assert.Equal(t, []string{"id", "c", "a", "b"}, out.Names())
}

func TestSelectFeaturesSynthesizesPositionalID(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{10, 20, 30}, series.Float, "amount"),
	)

	out, _ := SelectFeatures(df, DefaultSchema(), []string{"amount"})

	assert.Equal(t, []string{"id", "amount"}, out.Names())
	assert.Equal(t, []string{"0", "1", "2"}, out.Col("id").Records())
}
