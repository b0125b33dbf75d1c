package domain

// Poi is one ranked hit from the point-of-interest search index. The
// field names mirror the geonames documents stored in the index.
type Poi struct {
	Name        string  `json:"name"`
	Admin1Name  string  `json:"admin1_name"`
	Admin2Name  string  `json:"admin2_name"`
	CountryCode string  `json:"country_code"`
	GeonameID   int64   `json:"geonameid"`
	Score       float64 `json:"score,omitempty"`
}
