package model

import "strings"

// NotAvailable is the display and raw value used for a measure the server
// returned without a value.
const NotAvailable = "N/A"

// ratingSuffix marks metric keys whose values are letter-grade ratings.
const ratingSuffix = "_rating"

// MetricKeys is the fixed list of metrics requested by the metrics export.
var MetricKeys = []string{
	"ncloc",
	"complexity",
	"cognitive_complexity",
	"duplicated_lines_density",
	"coverage",
	"bugs",
	"vulnerabilities",
	"security_hotspots",
	"code_smells",
	"sqale_rating",
	"reliability_rating",
	"security_rating",
	"sqale_index",
	"alert_status",
}

var ratingLetters = map[string]string{
	"1": "A",
	"2": "B",
	"3": "C",
	"4": "D",
	"5": "E",
}

// IsRatingMetric reports whether key names a rating metric.
func IsRatingMetric(key string) bool {
	return strings.HasSuffix(key, ratingSuffix)
}

// RatingLetter returns the letter grade for a raw rating digit "1"-"5".
func RatingLetter(raw string) (string, bool) {
	letter, ok := ratingLetters[raw]
	return letter, ok
}

// DisplayValue returns the human-facing value of a measure. Rating metrics
// with a known digit render as "A (1)"; everything else is returned as-is.
func DisplayValue(key, raw string) string {
	if !IsRatingMetric(key) {
		return raw
	}
	letter, ok := RatingLetter(raw)
	if !ok {
		return raw
	}
	return letter + " (" + raw + ")"
}

// RatingColor returns a color name for a rating letter.
func RatingColor(letter string) string {
	switch letter {
	case "A":
		return "green"
	case "B":
		return "blue"
	case "C":
		return "yellow"
	case "D", "E":
		return "red"
	default:
		return "white"
	}
}

// MetricRecord is the flat, export-ready form of a single measure.
type MetricRecord struct {
	Metric   string `json:"metric"`
	Value    string `json:"value"`
	RawValue string `json:"raw_value"`
}
