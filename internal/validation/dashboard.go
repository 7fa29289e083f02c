// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package validation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/models"
)

// Query parameter names of the dashboard controls.
const (
	ParamYear        = "year"
	ParamCity        = "city"
	ParamGranularity = "granularity"
	ParamTopN        = "top_n"
)

// DashboardDefaults are the control values used when a parameter is absent,
// plus the configured top-N bounds.
type DashboardDefaults struct {
	Years       []int
	City        models.City
	Granularity models.Granularity
	TopN        int
	TopNMin     int
	TopNMax     int
}

// DefaultsFromConfig maps the dashboard config section onto control defaults.
func DefaultsFromConfig(cfg config.DashboardConfig) DashboardDefaults {
	return DashboardDefaults{
		Years:       append([]int(nil), cfg.DefaultYears...),
		City:        models.City(cfg.DefaultCity),
		Granularity: models.Granularity(cfg.DefaultGranularity),
		TopN:        cfg.TopNDefault,
		TopNMin:     cfg.TopNMin,
		TopNMax:     cfg.TopNMax,
	}
}

// DashboardRequest is the decoded form of the dashboard query string.
type DashboardRequest struct {
	Years       []int  `query:"year" validate:"max=2,unique,dive,reference_year"`
	City        string `query:"city" validate:"required,oneof=Chicago NYC"`
	Granularity string `query:"granularity" validate:"required,oneof=Hourly Daily Weekly Monthly"`
	TopN        int    `query:"top_n"`
}

// ParseDashboardQuery decodes and validates the dashboard controls.
//
// The year parameter may repeat. When the key is absent the default years
// apply; when present with only empty values the selection is empty, which
// is valid and renders the year-filtered panels as "no data".
func ParseDashboardQuery(values url.Values, defaults DashboardDefaults) (models.DashboardFilter, *RequestValidationError) {
	req := DashboardRequest{
		Years:       defaults.Years,
		City:        string(defaults.City),
		Granularity: string(defaults.Granularity),
		TopN:        defaults.TopN,
	}

	var parseErrs []ValidationError

	if raw, ok := values[ParamYear]; ok {
		req.Years = make([]int, 0, len(raw))
		for _, v := range raw {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			year, err := strconv.Atoi(v)
			if err != nil {
				parseErrs = append(parseErrs, parseError(ParamYear, v))
				continue
			}
			req.Years = append(req.Years, year)
		}
	}
	if v := values.Get(ParamCity); v != "" {
		req.City = v
	}
	if v := values.Get(ParamGranularity); v != "" {
		req.Granularity = v
	}
	if v := values.Get(ParamTopN); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			parseErrs = append(parseErrs, parseError(ParamTopN, v))
		} else {
			req.TopN = n
		}
	}

	var all []ValidationError
	all = append(all, parseErrs...)
	if verr := ValidateStruct(&req); verr != nil {
		all = append(all, verr.errors...)
	}
	if verr := ValidateVar(ParamTopN, req.TopN, fmt.Sprintf("gte=%d,lte=%d", defaults.TopNMin, defaults.TopNMax)); verr != nil {
		all = append(all, verr.errors...)
	}
	if len(all) > 0 {
		return models.DashboardFilter{}, &RequestValidationError{errors: all}
	}

	return models.DashboardFilter{
		Years:       req.Years,
		City:        models.City(req.City),
		Granularity: models.Granularity(req.Granularity),
		TopN:        req.TopN,
	}, nil
}

func parseError(field, value string) ValidationError {
	return ValidationError{
		field:   field,
		tag:     "integer",
		value:   value,
		message: fmt.Sprintf("%s must be an integer, got %q", field, value),
	}
}
