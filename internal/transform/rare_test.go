package transform

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"

	"fraudscore/internal/artifacts"
)

func rareBundle() *artifacts.Bundle {
	return &artifacts.Bundle{
		RareMaps: map[string]map[string]string{
			"cat_id": {
				"grocery":  "grocery",
				"gas":      "gas",
				"misc pos": SentinelRare,
			},
		},
	}
}

func TestMapRareCategories(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"grocery", "electronics", "misc pos", "gas"}, series.String, "cat_id"),
	)

	out := MapRareCategories(df, DefaultSchema(), rareBundle())

	assert.Equal(t,
		[]string{"grocery", SentinelRare, SentinelRare, "gas"},
		out.Col("cat_id").Records(),
	)
}

func TestMapRareCategoriesCoversAllStringColumns(t *testing.T) {
	// Train-time maps may key on any string column, not just the
	// categorical group
	bundle := &artifacts.Bundle{
		RareMaps: map[string]map[string]string{
			"merch":     {"corner shop": "corner shop"},
			"post_code": {"28654": "28654"},
		},
	}
	df := dataframe.New(
		series.New([]string{"corner shop", "never seen merchant"}, series.String, "merch"),
		series.New([]string{"28654", "99999"}, series.String, "post_code"),
	)

	out := MapRareCategories(df, DefaultSchema(), bundle)

	assert.Equal(t, []string{"corner shop", SentinelRare}, out.Col("merch").Records())
	assert.Equal(t, []string{"28654", SentinelRare}, out.Col("post_code").Records())
}

func TestMapRareCategoriesIdempotent(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"grocery", "electronics"}, series.String, "cat_id"),
	)
	bundle := rareBundle()
	schema := DefaultSchema()

	once := MapRareCategories(df, schema, bundle)
	twice := MapRareCategories(once, schema, bundle)

	assert.Equal(t, once.Col("cat_id").Records(), twice.Col("cat_id").Records())
}

func TestMapRareCategoriesNoArtifact(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"grocery", "electronics"}, series.String, "cat_id"),
	)

	out := MapRareCategories(df, DefaultSchema(), &artifacts.Bundle{})

	assert.Equal(t, []string{"grocery", "electronics"}, out.Col("cat_id").Records())
}

func TestMapRareCategoriesSkipsUnmappedColumns(t *testing.T) {
	df := dataframe.New(
		series.New([]string{"f", "m"}, series.String, "gender"),
	)

	out := MapRareCategories(df, DefaultSchema(), rareBundle())

	assert.Equal(t, []string{"f", "m"}, out.Col("gender").Records())
}
