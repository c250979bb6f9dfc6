// Package dedupe folds duplicate (name, sex, year) records of the unified table.
//
// The dataset is additive by default: repeated rows are kept verbatim and each
// gets its own share of the group. Merging is opt-in and sums the counts of
// repeats into the first occurrence.
package dedupe

import (
	"context"

	"github.com/okian/babynames/internal/domain/model"
)

// Key identifies a record for duplicate detection. Name is compared exactly.
type Key struct {
	Name string
	Sex  model.Sex
	Year int
}

// KeyOf returns the duplicate key of r.
func KeyOf(r model.Record) Key {
	return Key{Name: r.Name, Sex: r.Sex, Year: r.Year}
}

// Deduper folds duplicate records.
type Deduper interface {
	// Merge returns records with duplicates folded into their first occurrence
	// and the number of rows that were folded away. Order of first
	// occurrences is preserved.
	Merge(ctx context.Context, records []model.Record) ([]model.Record, int)
}

// Passthrough keeps duplicates as separate rows.
type Passthrough struct{}

// Merge returns records unchanged.
func (Passthrough) Merge(_ context.Context, records []model.Record) ([]model.Record, int) {
	return records, 0
}

// Summing merges duplicates by adding their counts.
type Summing struct{}

// Merge folds repeats into the first row with the same key.
func (Summing) Merge(_ context.Context, records []model.Record) ([]model.Record, int) {
	index := make(map[Key]int, len(records))
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		k := KeyOf(r)
		if i, seen := index[k]; seen {
			out[i].Count += r.Count
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out, len(records) - len(out)
}

// New returns Summing when merge is true and Passthrough otherwise.
func New(merge bool) Deduper {
	if merge {
		return Summing{}
	}
	return Passthrough{}
}
