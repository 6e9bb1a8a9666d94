package transform

// Sentinels substituted for missing or malformed values. These exact
// literals were used when the model was trained; changing them breaks
// train/serve parity.
const (
	SentinelNA      = "na"
	SentinelRare    = "rare"
	SentinelNoTime  = -1
	DistanceColumn  = "dist_km"
	HourColumn      = "hour"
	DayOfWeekColumn = "dow"
	WeekendColumn   = "is_weekend"
)

// Schema names the raw columns a deployment feeds into the pipeline.
// Columns vary by deployment; a column named here but absent from the
// input frame is handled by each stage's own absence policy.
type Schema struct {
	ID   string
	Time string

	// Coordinate pairs for the transaction and the merchant
	Lat         string
	Lon         string
	MerchantLat string
	MerchantLon string

	// Numeric columns imputed with medians (derived time/geo features
	// are appended to this set by the pipeline)
	Numeric []string

	// Categorical columns filled with the na sentinel and rare-mapped
	Categorical []string

	// Free-text columns cleaned with the plain normalizer
	Text []string

	// Merchant-name columns cleaned with the fraud-prefix variant
	Merchant []string

	// Postal-code columns cleaned with the digits-only variant
	Postal []string
}

// StringColumns returns every column the pipeline treats as a string
// feature, across the categorical, free-text, merchant and postal
// groups. Rare-map artifacts may key on any of them.
func (s Schema) StringColumns() []string {
	columns := make([]string, 0, len(s.Categorical)+len(s.Text)+len(s.Merchant)+len(s.Postal))
	columns = append(columns, s.Categorical...)
	columns = append(columns, s.Text...)
	columns = append(columns, s.Merchant...)
	columns = append(columns, s.Postal...)
	return columns
}

// DefaultSchema matches the conventional raw export layout
func DefaultSchema() Schema {
	return Schema{
		ID:          "id",
		Time:        "transaction_time",
		Lat:         "lat",
		Lon:         "lon",
		MerchantLat: "merchant_lat",
		MerchantLon: "merchant_lon",
		Numeric:     []string{"amount", "population_city", HourColumn, DayOfWeekColumn, WeekendColumn, DistanceColumn},
		Categorical: []string{"cat_id", "gender"},
		Text:        []string{"name_1", "name_2", "street", "one_city", "us_state"},
		Merchant:    []string{"merch"},
		Postal:      []string{"post_code"},
	}
}
