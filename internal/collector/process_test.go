package collector

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockStats/internal/calculator"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestExtractCloses_SkipsMalformedAndMissing(t *testing.T) {
	raw := decode(t, `{"data":{"tradesTable":{"rows":[{"close":"$10.00"},{"close":"$20.00"},{"close":"bad"},{}]}}}`)

	closes, err := ExtractCloses(raw)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, closes)

	stats, err := calculator.Summarize(closes)
	require.NoError(t, err)
	assert.Equal(t, 10.0, stats.Min)
	assert.Equal(t, 20.0, stats.Max)
	assert.Equal(t, 15.0, stats.Avg)
	assert.Equal(t, 15.0, stats.Median)
}

func TestExtractCloses_MissingTradesTable(t *testing.T) {
	raw := decode(t, `{"data":{"headers":{}}}`)
	_, err := ExtractCloses(raw)
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestExtractCloses_DataIsNull(t *testing.T) {
	raw := decode(t, `{"data":null,"status":{"rCode":400}}`)
	_, err := ExtractCloses(raw)
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestExtractCloses_RowsWrongType(t *testing.T) {
	raw := decode(t, `{"data":{"tradesTable":{"rows":"none"}}}`)
	_, err := ExtractCloses(raw)
	assert.ErrorIs(t, err, ErrUnexpectedShape)
}

func TestExtractCloses_NoParsableRows(t *testing.T) {
	raw := decode(t, `{"data":{"tradesTable":{"rows":[{"close":"N/A"},{"open":"$1.00"},{"close":12.5},"x"]}}}`)
	_, err := ExtractCloses(raw)
	assert.ErrorIs(t, err, ErrNoPrices)
	assert.NotErrorIs(t, err, ErrUnexpectedShape)
}

func TestExtractCloses_EmptyRows(t *testing.T) {
	raw := decode(t, `{"data":{"tradesTable":{"rows":[]}}}`)
	_, err := ExtractCloses(raw)
	assert.ErrorIs(t, err, ErrNoPrices)
}

func TestParseClose(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"$123.45", 123.45, true},
		{" $1,234.50 ", 1234.5, true},
		{"$ 7", 7, true},
		{"", 0, false},
		{"$", 0, false},
		{"abc", 0, false},
		{nil, 0, false},
		{99.0, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseClose(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %v", tc.in)
		}
	}
}
