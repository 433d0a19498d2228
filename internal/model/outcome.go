package model

// Status classifies how processing a ticker ended.
type Status string

const (
	StatusOK          Status = "ok"
	StatusFetchFailed Status = "fetch_failed"
	StatusBadShape    Status = "bad_shape"
	StatusNoPrices    Status = "no_prices"
	StatusSaveFailed  Status = "save_failed"
	StatusSkipped     Status = "skipped"
)

// Outcome is the per-ticker result of a run. Stats is nil unless statistics
// were computed; Err is nil only for StatusOK.
type Outcome struct {
	Ticker string
	Status Status
	Stats  *Stats
	Err    error
}
