package model

// Stats holds the summary statistics computed over a closing price series.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
}

// StatsRecord is the persisted unit: one ticker and its latest statistics.
type StatsRecord struct {
	Ticker string `json:"ticker"`
	Stats
}

// Fields returns the statistic values keyed by their persisted field names.
func (s Stats) Fields() map[string]float64 {
	return map[string]float64{
		"min":    s.Min,
		"max":    s.Max,
		"avg":    s.Avg,
		"median": s.Median,
	}
}
