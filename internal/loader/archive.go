package loader

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/okian/babynames/internal/domain/model"
)

// Record file naming: yob<YYYY>.txt. The year sits at fixed offsets.
const (
	entryPrefix    = "yob"
	entrySuffix    = ".txt"
	yearStart      = len(entryPrefix)
	yearEnd        = yearStart + 4
	entryNameLen   = yearEnd + len(entrySuffix)
	fieldsPerRow   = 3
	archiveContext = "archive"
)

// IsRecordEntry reports whether an archive entry follows the per-year naming
// prefix and suffix. Matching entries must also carry a valid year.
func IsRecordEntry(name string) bool {
	base := path.Base(name)
	return strings.HasPrefix(base, entryPrefix) && strings.HasSuffix(base, entrySuffix)
}

// YearFromEntry extracts the 4-digit year of a yobYYYY.txt entry name.
func YearFromEntry(name string) (int, error) {
	base := path.Base(name)
	if len(base) != entryNameLen || !IsRecordEntry(base) {
		return 0, &ParseError{Entry: name, Reason: "entry name is not yobYYYY.txt"}
	}
	digits := base[yearStart:yearEnd]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, &ParseError{Entry: name, Reason: "year " + strconv.Quote(digits) + " is not a 4-digit number"}
		}
	}
	year, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &ParseError{Entry: name, Reason: "invalid year", Err: err}
	}
	return year, nil
}

// ParseEntry reads one headerless name,sex,count file and tags every row with year.
func ParseEntry(name string, year int, r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldsPerRow
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var out []model.Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			var line int
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				line = perr.Line
			}
			return nil, &ParseError{Entry: name, Line: line, Reason: "malformed row", Err: err}
		}
		line, _ := cr.FieldPos(0)

		rec, reason := parseRow(fields, year)
		if reason != "" {
			return nil, &ParseError{Entry: name, Line: line, Reason: reason}
		}
		out = append(out, rec)
	}
}

func parseRow(fields []string, year int) (model.Record, string) {
	name := strings.TrimSpace(fields[0])
	if name == "" {
		return model.Record{}, "empty name"
	}
	sex := model.Sex(strings.TrimSpace(fields[1]))
	if sex != model.Female && sex != model.Male {
		return model.Record{}, "sex " + strconv.Quote(fields[1]) + " is not F or M"
	}
	raw := strings.TrimSpace(fields[2])
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return model.Record{}, "count " + strconv.Quote(raw) + " is not a non-negative integer"
	}
	return model.Record{Name: name, Sex: sex, Count: count, Year: year}, ""
}

// ParseArchive parses every yobYYYY.txt entry of a zip archive and
// concatenates the rows in archive order. Other entries are ignored.
func ParseArchive(data []byte) ([]model.Record, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ParseError{Entry: archiveContext, Reason: "not a zip archive", Err: err}
	}

	var (
		out     []model.Record
		matched int
	)
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !IsRecordEntry(f.Name) {
			continue
		}
		matched++
		year, err := YearFromEntry(f.Name)
		if err != nil {
			return nil, err
		}
		recs, err := parseZipEntry(f, year)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	if matched == 0 {
		return nil, &ParseError{Entry: archiveContext, Reason: "no yobYYYY.txt entries found"}
	}
	return out, nil
}

func parseZipEntry(f *zip.File, year int) ([]model.Record, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, &ParseError{Entry: f.Name, Reason: "open entry", Err: err}
	}
	defer func() { _ = rc.Close() }()
	return ParseEntry(f.Name, year, rc)
}
