package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudscore/pkg/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "id,amount,cat_id\n1,10.5,grocery\n2,,gas\n")

	df, err := ReadCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"id", "amount", "cat_id"}, df.Names())
	// Cells stay raw strings; coercion belongs to the pipeline
	assert.Equal(t, []string{"10.5", ""}, df.Col("amount").Records()[:2])
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.Is(err, errors.ErrInputNotFound))
}

func TestReadCSVEmptyFrame(t *testing.T) {
	path := writeCSV(t, "id,amount\n")
	_, err := ReadCSV(path)
	assert.True(t, errors.Is(err, errors.ErrEmptyFrame))
}

func TestHasColumn(t *testing.T) {
	path := writeCSV(t, "id,amount\n1,2\n")
	df, err := ReadCSV(path)
	require.NoError(t, err)

	assert.True(t, HasColumn(df, "amount"))
	assert.False(t, HasColumn(df, "velocity"))
}
