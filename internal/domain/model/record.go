// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// Sex is the categorical sex column of the dataset.
type Sex string

// Known sex categories.
const (
	Female Sex = "F"
	Male   Sex = "M"
)

// Sexes lists the known categories in display order.
var Sexes = []Sex{Female, Male}

// ParseSex accepts "F"/"M" and the long forms, case-insensitively.
func ParseSex(s string) (Sex, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "F", "FEMALE":
		return Female, nil
	case "M", "MALE":
		return Male, nil
	}
	return "", fmt.Errorf("unknown sex %q", s)
}

// Label returns the human readable name used on charts.
func (s Sex) Label() string {
	switch s {
	case Female:
		return "Female"
	case Male:
		return "Male"
	}
	return string(s)
}

// Record is one row of the unified table as ingested.
type Record struct {
	Name  string `json:"name"`
	Sex   Sex    `json:"sex"`
	Count int    `json:"count"`
	Year  int    `json:"year"`
}

// GroupKey identifies the (year, sex) group a record belongs to.
type GroupKey struct {
	Year int
	Sex  Sex
}

// Key returns the record's group key.
func (r Record) Key() GroupKey {
	return GroupKey{Year: r.Year, Sex: r.Sex}
}

// Row is a record enriched with its share of the group total.
type Row struct {
	Record
	Proportion float64 `json:"prop"`
}
