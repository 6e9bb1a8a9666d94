package transform

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversine(t *testing.T) {
	t.Run("identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(40.0, -75.0, 40.0, -75.0))
	})

	t.Run("known distance", func(t *testing.T) {
		// New York to Los Angeles, roughly 3936 km
		d := Haversine(40.7128, -74.0060, 34.0522, -118.2437)
		assert.InDelta(t, 3936, d, 10)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(51.5, -0.12, 48.85, 2.35)
		b := Haversine(48.85, 2.35, 51.5, -0.12)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(Haversine(math.NaN(), -75.0, 40.0, -75.0)))
	})
}

func TestComputeDistance(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"40.0", "40.7128"}, series.String, "lat"),
		series.New([]string{"-75.0", "-74.0060"}, series.String, "lon"),
		series.New([]string{"40.0", "34.0522"}, series.String, "merchant_lat"),
		series.New([]string{"-75.0", "-118.2437"}, series.String, "merchant_lon"),
	)

	out := ComputeDistance(df, DefaultSchema())
	require.Contains(t, out.Names(), DistanceColumn)

	dist := out.Col(DistanceColumn).Float()
	assert.Equal(t, 0.0, dist[0])
	assert.InDelta(t, 3936, dist[1], 10)
}

func TestComputeDistanceUnparseableCoordinates(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"oops"}, series.String, "lat"),
		series.New([]string{"-75.0"}, series.String, "lon"),
		series.New([]string{"40.0"}, series.String, "merchant_lat"),
		series.New([]string{"-75.0"}, series.String, "merchant_lon"),
	)

	out := ComputeDistance(df, DefaultSchema())
	dist := out.Col(DistanceColumn).Float()
	assert.True(t, math.IsNaN(dist[0]), "bad coordinate should yield NaN for the imputer")
}

func TestComputeDistanceSkippedWithoutCoordinates(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"40.0"}, series.String, "lat"),
		series.New([]string{"-75.0"}, series.String, "lon"),
	)

	out := ComputeDistance(df, DefaultSchema())
	assert.NotContains(t, out.Names(), DistanceColumn)
}
