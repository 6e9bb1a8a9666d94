package transform

import (
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"fraudscore/internal/dataset"
)

// earthRadiusKm is the radius used at train time
const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// points given in degrees. Inputs are not range-validated: out-of-range
// coordinates produce a distance as given, matching the pipeline-wide
// no-raise policy. NaN inputs propagate to a NaN distance, which the
// imputer resolves.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rlat1 := lat1 * math.Pi / 180
	rlon1 := lon1 * math.Pi / 180
	rlat2 := lat2 * math.Pi / 180
	rlon2 := lon2 * math.Pi / 180

	dlat := rlat2 - rlat1
	dlon := rlon2 - rlon1

	sinLat := math.Sin(dlat / 2)
	sinLon := math.Sin(dlon / 2)
	a := sinLat*sinLat + math.Cos(rlat1)*math.Cos(rlat2)*sinLon*sinLon
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// ComputeDistance derives dist_km from the transaction and merchant
// coordinate pairs. When any of the four columns is absent the feature
// is not computed at all; the imputer synthesizes and fills it instead.
func ComputeDistance(df dataframe.DataFrame, schema Schema) dataframe.DataFrame {
	coords := []string{schema.Lat, schema.Lon, schema.MerchantLat, schema.MerchantLon}
	for _, col := range coords {
		if !dataset.HasColumn(df, col) {
			return df
		}
	}

	lat1 := df.Col(schema.Lat).Float()
	lon1 := df.Col(schema.Lon).Float()
	lat2 := df.Col(schema.MerchantLat).Float()
	lon2 := df.Col(schema.MerchantLon).Float()

	dist := make([]float64, df.Nrow())
	for i := range dist {
		dist[i] = Haversine(lat1[i], lon1[i], lat2[i], lon2[i])
	}
	return df.Mutate(series.New(dist, series.Float, DistanceColumn))
}
