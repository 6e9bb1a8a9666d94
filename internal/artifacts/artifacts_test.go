package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscore/pkg/errors"
	"fraudscore/pkg/logger"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Features:  writeFile(t, dir, "features.json", `["amount","dist_km","cat_id"]`),
		Medians:   writeFile(t, dir, "medians.json", `{"amount": 42.0, "dist_km": 12.5}`),
		RareMaps:  writeFile(t, dir, "rare_maps.json", `{"cat_id": {"grocery": "grocery"}}`),
		Threshold: writeFile(t, dir, "threshold.txt", "0.42\n"),
	}

	b, err := Load(paths, logger.Get())
	require.NoError(t, err)

	assert.Equal(t, []string{"amount", "dist_km", "cat_id"}, b.Features)
	assert.Equal(t, 0.42, b.Threshold)

	median, ok := b.Median("amount")
	require.True(t, ok)
	assert.Equal(t, 42.0, median)

	_, ok = b.Median("population_city")
	assert.False(t, ok)

	mapping, ok := b.RareMap("cat_id")
	require.True(t, ok)
	assert.Equal(t, "grocery", mapping["grocery"])
}

func TestLoadOptionalArtifactsAbsent(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Features:  writeFile(t, dir, "features.json", `["amount"]`),
		Medians:   filepath.Join(dir, "medians.json"),
		RareMaps:  filepath.Join(dir, "rare_maps.json"),
		Threshold: filepath.Join(dir, "threshold.txt"),
	}

	b, err := Load(paths, logger.Get())
	require.NoError(t, err)

	assert.Nil(t, b.Medians)
	assert.Nil(t, b.RareMaps)
	assert.Equal(t, DefaultThreshold, b.Threshold)
}

func TestLoadFeatureListRequired(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(Paths{Features: filepath.Join(dir, "nope.json")}, logger.Get())
		assert.True(t, errors.Is(err, errors.ErrFeatureListMissing))
	})

	t.Run("malformed json", func(t *testing.T) {
		paths := Paths{Features: writeFile(t, dir, "bad.json", `{"not":"a list"}`)}
		_, err := Load(paths, logger.Get())
		assert.True(t, errors.Is(err, errors.ErrFeatureListMissing))
	})

	t.Run("empty list", func(t *testing.T) {
		paths := Paths{Features: writeFile(t, dir, "empty.json", `[]`)}
		_, err := Load(paths, logger.Get())
		assert.True(t, errors.Is(err, errors.ErrFeatureListMissing))
	})
}

func TestLoadThreshold(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"plain value", "0.7", 0.7},
		{"trailing newline", "0.35\n", 0.35},
		{"padded", "  0.5  ", 0.5},
		{"zero boundary", "0", 0.0},
		{"one boundary", "1", 1.0},
		{"above range", "5.0", DefaultThreshold},
		{"below range", "-1", DefaultThreshold},
		{"malformed", "not-a-number", DefaultThreshold},
		{"empty", "", DefaultThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "threshold_"+tt.name+".txt", tt.content)
			assert.Equal(t, tt.want, LoadThreshold(path))
		})
	}

	t.Run("absent file", func(t *testing.T) {
		assert.Equal(t, DefaultThreshold, LoadThreshold(filepath.Join(dir, "missing.txt")))
	})
}
