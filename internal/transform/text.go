package transform

import (
	"regexp"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/dataset"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\p{L}\p{N}_\s\-.,/&()]`)
	fraudPrefix   = regexp.MustCompile(`(?i)^fraud[\s_\-:]*`)
	nonDigit      = regexp.MustCompile(`\D`)
)

// Clean canonicalizes a free-text or categorical value: whitespace runs
// collapse to a single space, characters outside the allowed set are
// stripped, the result is trimmed and lowercased. Missing values and
// values that clean down to nothing become the na sentinel. Never fails;
// a value that cannot be coerced degrades to the sentinel.
func Clean(value string) string {
	s := whitespaceRun.ReplaceAllString(value, " ")
	s = disallowed.ReplaceAllString(s, "")
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SentinelNA
	}
	return s
}

// CleanMerchant cleans a merchant-name value, first stripping a leading
// case-insensitive fraud token. Raw exports occasionally carry the
// training label as a prefix; leaving it in would leak the target.
func CleanMerchant(value string) string {
	s := fraudPrefix.ReplaceAllString(strings.TrimSpace(value), "")
	return Clean(s)
}

// CleanPostal reduces a postal code to at most 9 digits
func CleanPostal(value string) string {
	s := nonDigit.ReplaceAllString(value, "")
	if len(s) > 9 {
		s = s[:9]
	}
	if s == "" {
		return SentinelNA
	}
	return s
}

// NormalizeText canonicalizes every configured string column that is
// present in the frame. Absent columns are skipped here; the imputer
// synthesizes the categorical ones later.
func NormalizeText(df dataframe.DataFrame, schema Schema) dataframe.DataFrame {
	df = applyText(df, schema.Text, Clean)
	df = applyText(df, schema.Categorical, Clean)
	df = applyText(df, schema.Merchant, CleanMerchant)
	df = applyText(df, schema.Postal, CleanPostal)
	return df
}

func applyText(df dataframe.DataFrame, columns []string, clean func(string) string) dataframe.DataFrame {
	for _, col := range columns {
		if !dataset.HasColumn(df, col) {
			continue
		}
		records := df.Col(col).Records()
		cleaned := make([]string, len(records))
		for i, v := range records {
			cleaned[i] = clean(v)
		}
		df = df.Mutate(series.New(cleaned, series.String, col))
	}
	return df
}
