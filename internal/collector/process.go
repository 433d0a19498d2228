package collector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnexpectedShape means the payload lacks data.tradesTable.rows.
	ErrUnexpectedShape = errors.New("unexpected response shape")
	// ErrNoPrices means no row carried a parsable close price.
	ErrNoPrices = errors.New("no valid closing prices")
)

var closeCleaner = strings.NewReplacer("$", "", ",", "")

// ExtractCloses walks data -> tradesTable -> rows and returns every close
// price that parses. Rows without a usable close field are dropped.
func ExtractCloses(raw map[string]any) ([]float64, error) {
	data, ok := raw["data"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing data", ErrUnexpectedShape)
	}
	table, ok := data["tradesTable"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing data.tradesTable", ErrUnexpectedShape)
	}
	rows, ok := table["rows"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: missing data.tradesTable.rows", ErrUnexpectedShape)
	}

	closes := make([]float64, 0, len(rows))
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if price, ok := parseClose(row["close"]); ok {
			closes = append(closes, price)
		}
	}
	if len(closes) == 0 {
		return nil, ErrNoPrices
	}
	return closes, nil
}

// parseClose converts a currency string such as "$1,234.56" to a float.
// ok is false for missing, non-string or malformed values.
func parseClose(v any) (float64, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(closeCleaner.Replace(s))
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	f, _ := d.Float64()
	return f, true
}
