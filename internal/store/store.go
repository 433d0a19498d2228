package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"StockStats/internal/model"
)

// DefaultPath is the store file used when none is configured.
const DefaultPath = "stock_stats.json"

// Store is a file-backed collection of per-ticker statistics entries.
// Entries are kept as generic objects so fields written by other tools survive
// an upsert. The file is not locked; concurrent writers can lose updates.
type Store struct {
	path    string
	entries []map[string]any
}

// Load reads the JSON array at path. A missing or unreadable file, or content
// that is not an array of objects, yields an empty store.
func Load(path string) *Store {
	s := &Store{path: path, entries: []map[string]any{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("read store failed, starting empty")
		}
		return s
	}

	entries, err := decodeEntries(data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("store is not a JSON array of objects, starting empty")
		return s
	}
	for _, e := range entries {
		if e != nil {
			s.entries = append(s.entries, e)
		}
	}
	return s
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// Entries returns the entries in file order.
func (s *Store) Entries() []map[string]any { return s.entries }

// Get returns the entry whose ticker field equals ticker exactly.
func (s *Store) Get(ticker string) (map[string]any, bool) {
	i := s.index(ticker)
	if i < 0 {
		return nil, false
	}
	return s.entries[i], true
}

// Upsert merges rec's statistics into the existing entry for rec.Ticker, or
// appends a new entry. Fields not written by this tool are preserved.
func (s *Store) Upsert(rec model.StatsRecord) {
	if i := s.index(rec.Ticker); i >= 0 {
		for k, v := range rec.Stats.Fields() {
			s.entries[i][k] = v
		}
		return
	}
	entry := map[string]any{"ticker": rec.Ticker}
	for k, v := range rec.Stats.Fields() {
		entry[k] = v
	}
	s.entries = append(s.entries, entry)
}

// Save overwrites the backing file with the indented JSON array.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

// decodeEntries keeps numbers as json.Number so fields written by other tools
// are saved back byte-for-byte, including integers beyond float64 precision.
func decodeEntries(data []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var entries []map[string]any
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("trailing data after JSON array")
	}
	return entries, nil
}

func (s *Store) index(ticker string) int {
	for i, e := range s.entries {
		if t, ok := e["ticker"].(string); ok && t == ticker {
			return i
		}
	}
	return -1
}
