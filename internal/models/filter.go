// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package models

import (
	"errors"
	"fmt"
	"slices"
)

// Filter validation errors.
var (
	ErrInvalidYear        = errors.New("invalid year")
	ErrInvalidGranularity = errors.New("invalid granularity")
)

// Reference years compared throughout the dashboard.
const (
	Year2019 = 2019
	Year2023 = 2023
)

// ReferenceYears lists every year a filter may select, in ascending order.
var ReferenceYears = []int{Year2019, Year2023}

// IsReferenceYear reports whether year is one of ReferenceYears.
func IsReferenceYear(year int) bool {
	return slices.Contains(ReferenceYears, year)
}

// City identifies the city focus for map and spotlight panels.
type City string

const (
	CityChicago City = "Chicago"
	CityNYC     City = "NYC"
)

// Cities lists the selectable city focus values in display order.
var Cities = []City{CityChicago, CityNYC}

// Granularity is the time aggregation selected for trend panels.
type Granularity string

const (
	GranularityHourly  Granularity = "Hourly"
	GranularityDaily   Granularity = "Daily"
	GranularityWeekly  Granularity = "Weekly"
	GranularityMonthly Granularity = "Monthly"
)

// Granularities lists the selectable aggregations in display order.
var Granularities = []Granularity{GranularityHourly, GranularityDaily, GranularityWeekly, GranularityMonthly}

// TruncUnit returns the DATE_TRUNC unit for the granularity.
func (g Granularity) TruncUnit() (string, error) {
	switch g {
	case GranularityHourly:
		return "hour", nil
	case GranularityDaily:
		return "day", nil
	case GranularityWeekly:
		return "week", nil
	case GranularityMonthly:
		return "month", nil
	default:
		return "", fmt.Errorf("%w %q: must be Hourly, Daily, Weekly, or Monthly", ErrInvalidGranularity, string(g))
	}
}

// DashboardFilter carries the shared control state for one dashboard render.
// Years is a subset of ReferenceYears; an empty slice selects no years.
type DashboardFilter struct {
	Years       []int       `json:"years"`
	City        City        `json:"city"`
	Granularity Granularity `json:"granularity"`
	TopN        int         `json:"top_n"`
}

// HasYear reports whether the filter selects year.
func (f DashboardFilter) HasYear(year int) bool {
	return slices.Contains(f.Years, year)
}

// Validate checks that every selected year is a reference year and the
// granularity is known. An empty year selection is valid.
func (f DashboardFilter) Validate() error {
	for _, year := range f.Years {
		if !IsReferenceYear(year) {
			return fmt.Errorf("%w %d: must be one of %v", ErrInvalidYear, year, ReferenceYears)
		}
	}
	_, err := f.Granularity.TruncUnit()
	return err
}
