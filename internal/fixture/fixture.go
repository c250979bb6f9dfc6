// Package fixture builds small name archives in memory for tests and offline demos.
package fixture

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Entry names carry exactly four year digits.
const (
	MinYear = 0
	MaxYear = 9999
)

// ErrYearRange reports a synthetic year range the loader could not read back.
var ErrYearRange = errors.New("invalid year range")

// Entry is one file inside a generated archive.
type Entry struct {
	Name string
	Body string
}

// Archive zips entries in the given order.
func Archive(entries ...Entry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// MustArchive is Archive for tests; it panics on error.
func MustArchive(entries ...Entry) []byte {
	b, err := Archive(entries...)
	if err != nil {
		panic(err)
	}
	return b
}

// YearFile returns the conventional entry for year built from "name,sex,count" lines.
func YearFile(year int, lines ...string) Entry {
	return Entry{
		Name: fmt.Sprintf("yob%04d.txt", year),
		Body: strings.Join(lines, "\r\n") + "\r\n",
	}
}

// Config shapes a synthetic archive.
type Config struct {
	FromYear int
	ToYear   int
	Female   []string
	Male     []string
}

// DefaultConfig is a small two-sex dataset spanning 1900-2000.
func DefaultConfig() Config {
	return Config{
		FromYear: 1900,
		ToYear:   2000,
		Female:   []string{"Mary", "Anna", "Emma", "Elizabeth", "Minnie", "Jordan"},
		Male:     []string{"John", "William", "James", "Charles", "George", "Jordan"},
	}
}

// Synthetic builds one yobYYYY.txt entry per year of cfg. Counts are
// deterministic so repeated builds yield identical bytes.
func Synthetic(cfg Config) ([]byte, error) {
	switch {
	case cfg.FromYear < MinYear || cfg.ToYear > MaxYear:
		return nil, fmt.Errorf("%w: years %d-%d outside %04d-%04d", ErrYearRange, cfg.FromYear, cfg.ToYear, MinYear, MaxYear)
	case cfg.FromYear > cfg.ToYear:
		return nil, fmt.Errorf("%w: from year %d after to year %d", ErrYearRange, cfg.FromYear, cfg.ToYear)
	}
	entries := make([]Entry, 0, cfg.ToYear-cfg.FromYear+1)
	for year := cfg.FromYear; year <= cfg.ToYear; year++ {
		lines := make([]string, 0, len(cfg.Female)+len(cfg.Male))
		for i, name := range cfg.Female {
			lines = append(lines, fmt.Sprintf("%s,F,%d", name, syntheticCount(year, i, 0)))
		}
		for i, name := range cfg.Male {
			lines = append(lines, fmt.Sprintf("%s,M,%d", name, syntheticCount(year, i, 1)))
		}
		entries = append(entries, YearFile(year, lines...))
	}
	return Archive(entries...)
}

// syntheticCount gives each name a rising or falling popularity curve.
func syntheticCount(year, rank, sex int) int {
	base := 5000 / (rank + 1)
	drift := (year - 1900) * (rank%3 - 1) * (10 + 5*sex)
	n := base + drift + (year*31+rank*17+sex*7)%97
	if n < 5 {
		n = 5
	}
	return n
}
