package transform

import (
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/dataset"
)

// Timestamp layouts accepted in raw exports, tried in order
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DeriveTemporal expands the timestamp column into hour (0..23), dow
// (Monday=0) and is_weekend (dow in {5,6}). Unparseable or missing
// timestamps yield the -1 sentinel for hour and dow. A sentinel dow
// evaluates to not-weekend; the model was trained with that behavior,
// so it is preserved rather than corrected.
func DeriveTemporal(df dataframe.DataFrame, schema Schema) dataframe.DataFrame {
	n := df.Nrow()
	hours := make([]int, n)
	dows := make([]int, n)
	weekends := make([]int, n)

	var records []string
	if dataset.HasColumn(df, schema.Time) {
		records = df.Col(schema.Time).Records()
	}

	for i := 0; i < n; i++ {
		hour, dow := SentinelNoTime, SentinelNoTime
		if records != nil {
			if t, ok := parseTimestamp(records[i]); ok {
				hour = t.Hour()
				dow = mondayIndexed(t.Weekday())
			}
		}
		hours[i] = hour
		dows[i] = dow
		if dow >= 5 {
			weekends[i] = 1
		}
	}

	df = df.Mutate(series.New(hours, series.Int, HourColumn))
	df = df.Mutate(series.New(dows, series.Int, DayOfWeekColumn))
	df = df.Mutate(series.New(weekends, series.Int, WeekendColumn))
	return df
}

func parseTimestamp(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// mondayIndexed converts Go's Sunday=0 weekday to Monday=0
func mondayIndexed(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
