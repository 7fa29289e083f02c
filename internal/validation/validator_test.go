// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package validation

import (
	"net/url"
	"slices"
	"strings"
	"testing"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/models"
)

func testDefaults() DashboardDefaults {
	return DashboardDefaults{
		Years:       []int{2019, 2023},
		City:        models.CityChicago,
		Granularity: models.GranularityMonthly,
		TopN:        8,
		TopNMin:     3,
		TopNMax:     20,
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

func TestParseDashboardQuery_Defaults(t *testing.T) {
	filter, verr := ParseDashboardQuery(url.Values{}, testDefaults())
	if verr != nil {
		t.Fatalf("unexpected validation error: %v", verr)
	}
	if !slices.Equal(filter.Years, []int{2019, 2023}) {
		t.Errorf("Years = %v, want [2019 2023]", filter.Years)
	}
	if filter.City != models.CityChicago || filter.Granularity != models.GranularityMonthly || filter.TopN != 8 {
		t.Errorf("unexpected defaults: %+v", filter)
	}
}

func TestParseDashboardQuery_Valid(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.DashboardFilter
	}{
		{
			name:  "single year NYC hourly",
			query: "year=2023&city=NYC&granularity=Hourly&top_n=20",
			want:  models.DashboardFilter{Years: []int{2023}, City: models.CityNYC, Granularity: models.GranularityHourly, TopN: 20},
		},
		{
			name:  "explicitly empty selection",
			query: "year=&city=Chicago&granularity=Weekly&top_n=3",
			want:  models.DashboardFilter{Years: []int{}, City: models.CityChicago, Granularity: models.GranularityWeekly, TopN: 3},
		},
		{
			name:  "both years",
			query: "year=2019&year=2023",
			want:  models.DashboardFilter{Years: []int{2019, 2023}, City: models.CityChicago, Granularity: models.GranularityMonthly, TopN: 8},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			got, verr := ParseDashboardQuery(values, testDefaults())
			if verr != nil {
				t.Fatalf("unexpected validation error: %v", verr)
			}
			if !slices.Equal(got.Years, tt.want.Years) || got.City != tt.want.City ||
				got.Granularity != tt.want.Granularity || got.TopN != tt.want.TopN {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDashboardQuery_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
		wantText  string
	}{
		{"unknown year", "year=2020", ParamYear, "2019 or 2023"},
		{"non-numeric year", "year=abc", ParamYear, "integer"},
		{"repeated year", "year=2019&year=2019", ParamYear, "repeat"},
		{"unknown city", "city=Boston", ParamCity, "Chicago, NYC"},
		{"unknown granularity", "granularity=Yearly", ParamGranularity, "Hourly, Daily, Weekly, Monthly"},
		{"top-N too small", "top_n=2", ParamTopN, "greater than or equal to 3"},
		{"top-N too large", "top_n=21", ParamTopN, "less than or equal to 20"},
		{"top-N not a number", "top_n=ten", ParamTopN, "integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			_, verr := ParseDashboardQuery(values, testDefaults())
			if verr == nil {
				t.Fatal("expected validation error")
			}
			msg, ok := verr.FieldMessages()[tt.wantField]
			if !ok {
				t.Fatalf("no error for field %s: %v", tt.wantField, verr)
			}
			if !strings.Contains(msg, tt.wantText) {
				t.Errorf("message %q should contain %q", msg, tt.wantText)
			}
		})
	}
}

func TestParseDashboardQuery_CollectsAllErrors(t *testing.T) {
	values := url.Values{"city": {"Boston"}, "top_n": {"99"}}
	_, verr := ParseDashboardQuery(values, testDefaults())
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(verr.Errors()), verr)
	}
	if !strings.Contains(verr.Error(), "; ") {
		t.Errorf("combined message should join errors: %q", verr.Error())
	}
}

func TestDefaultsFromConfig(t *testing.T) {
	cfg := config.DashboardConfig{
		DefaultYears:       []int{2023},
		DefaultCity:        "NYC",
		DefaultGranularity: "Weekly",
		TopNMin:            3,
		TopNMax:            20,
		TopNDefault:        5,
	}
	d := DefaultsFromConfig(cfg)
	if d.City != models.CityNYC || d.Granularity != models.GranularityWeekly || d.TopN != 5 {
		t.Errorf("DefaultsFromConfig() = %+v", d)
	}
	d.Years[0] = 2019
	if cfg.DefaultYears[0] != 2023 {
		t.Error("defaults share the config's year slice")
	}
}
