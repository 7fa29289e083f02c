// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/commutepulse/internal/models"
)

// granularityStep approximates the width of one trend bucket.
func granularityStep(g models.Granularity) time.Duration {
	switch g {
	case models.GranularityHourly:
		return time.Hour
	case models.GranularityDaily:
		return 24 * time.Hour
	case models.GranularityWeekly:
		return 7 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

func cityName(city models.City) string {
	return string(city)
}

// sortedYears returns the distinct years in ascending order.
func sortedYears[T any](rows []T, year func(T) int) []int {
	seen := make(map[int]struct{})
	for _, r := range rows {
		seen[year(r)] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// undatedNote reports trips that have no pickup timestamp and so cannot be
// placed on a time axis.
func undatedNote(years []int, undated map[int]int64) string {
	var parts []string
	for _, y := range years {
		if n := undated[y]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d: %s", y, formatWithCommas(n)))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " Trips without a pickup time (not plotted): " + strings.Join(parts, ", ") + "."
}

func (s *Service) tripTrendPanel(ctx context.Context, id string, city models.City, filter models.DashboardFilter) Panel {
	title := fmt.Sprintf("%s: %s Taxi Trips (2019 vs 2023)", cityName(city), filter.Granularity)
	noData := fmt.Sprintf("No %s data for selected year(s).", cityName(city))

	return runPanel(ctx, id, title, noData, func(ctx context.Context, p *Panel) (bool, error) {
		rows, err := s.q.GetTripTrend(ctx, city, filter.Years, filter.Granularity)
		if err != nil {
			return false, err
		}
		if len(rows) == 0 {
			return false, nil
		}

		byYear := make(map[int]*timeLine)
		undated := make(map[int]int64)
		for _, r := range rows {
			if r.Undated {
				undated[r.Year] += r.Trips
				continue
			}
			l, ok := byYear[r.Year]
			if !ok {
				l = &timeLine{Name: strconv.Itoa(r.Year), Color: YearColor(r.Year)}
				byYear[r.Year] = l
			}
			l.X = append(l.X, r.Bucket)
			l.Y = append(l.Y, float64(r.Trips))
		}
		years := sortedYears(rows, func(r models.YearBucketCount) int { return r.Year })
		p.Caption = "Trips per " + string(filter.Granularity) + " bucket, colored by year." + undatedNote(years, undated)
		lines := make([]timeLine, 0, len(byYear))
		for _, y := range years {
			if l, ok := byYear[y]; ok {
				lines = append(lines, *l)
			}
		}
		if len(lines) == 0 {
			return true, nil
		}

		svg, err := renderTimeLines(lines, "Trips", granularityStep(filter.Granularity))
		if err != nil {
			return false, err
		}
		p.Charts = []ChartSVG{{SVG: svg}}
		return true, nil
	})
}

func (s *Service) hourlyPanel(ctx context.Context, id string, city models.City, filter models.DashboardFilter) Panel {
	title := cityName(city) + ": Hourly Demand"
	noData := fmt.Sprintf("No %s hourly data.", cityName(city))

	return runPanel(ctx, id, title, noData, func(ctx context.Context, p *Panel) (bool, error) {
		rows, err := s.q.GetHourlyDemand(ctx, city, filter.Years)
		if err != nil {
			return false, err
		}
		if len(rows) == 0 {
			return false, nil
		}

		// Index 24 holds trips without a pickup timestamp
		counts := make(map[int]*[25]float64)
		var all []float64
		anyUndated := false
		for _, r := range rows {
			slot := r.Hour
			switch {
			case r.Undated:
				slot = 24
				anyUndated = true
			case r.Hour < 0 || r.Hour > 23:
				continue
			}
			c, ok := counts[r.Year]
			if !ok {
				c = new([25]float64)
				counts[r.Year] = c
			}
			c[slot] += float64(r.Trips)
			all = append(all, float64(r.Trips))
		}

		yRange := valueRange(all)
		for _, y := range sortedYears(rows, func(r models.HourlyCount) int { return r.Year }) {
			c := counts[y]
			if c == nil {
				continue
			}
			bars := make([]bar, 24, 25)
			for h := range bars {
				bars[h] = bar{Label: strconv.Itoa(h), Value: c[h]}
			}
			if anyUndated {
				bars = append(bars, bar{Label: models.UndatedLabel, Value: c[24]})
			}
			svg, err := renderBars(strconv.Itoa(y), bars, YearColor(y), yRange)
			if err != nil {
				return false, err
			}
			p.Charts = append(p.Charts, ChartSVG{Label: strconv.Itoa(y), SVG: svg})
		}
		p.Caption = "Trips by hour of day (0-23), one chart per year."
		return len(p.Charts) > 0, nil
	})
}

func (s *Service) weekdayPanel(ctx context.Context, id string, city models.City, filter models.DashboardFilter) Panel {
	title := cityName(city) + ": Day-of-Week Demand"
	noData := fmt.Sprintf("No %s day-of-week data.", cityName(city))

	return runPanel(ctx, id, title, noData, func(ctx context.Context, p *Panel) (bool, error) {
		rows, err := s.q.GetWeekdayDemand(ctx, city, filter.Years)
		if err != nil {
			return false, err
		}
		if len(rows) == 0 {
			return false, nil
		}

		// Index 7 holds trips without a pickup timestamp
		counts := make(map[int]*[8]float64)
		var all []float64
		anyUndated := false
		for _, r := range rows {
			slot := r.Weekday - 1
			switch {
			case r.Undated:
				slot = 7
				anyUndated = true
			case r.Weekday < 1 || r.Weekday > 7:
				continue
			}
			c, ok := counts[r.Year]
			if !ok {
				c = new([8]float64)
				counts[r.Year] = c
			}
			c[slot] += float64(r.Trips)
			all = append(all, float64(r.Trips))
		}

		yRange := valueRange(all)
		for _, y := range sortedYears(rows, func(r models.WeekdayCount) int { return r.Year }) {
			c := counts[y]
			if c == nil {
				continue
			}
			bars := make([]bar, 7, 8)
			for i := range bars {
				bars[i] = bar{Label: models.WeekdayLabel(i + 1), Value: c[i]}
			}
			if anyUndated {
				bars = append(bars, bar{Label: models.UndatedLabel, Value: c[7]})
			}
			svg, err := renderBars(strconv.Itoa(y), bars, YearColor(y), yRange)
			if err != nil {
				return false, err
			}
			p.Charts = append(p.Charts, ChartSVG{Label: strconv.Itoa(y), SVG: svg})
		}
		p.Caption = "Trips by ISO day of week, Monday first."
		return len(p.Charts) > 0, nil
	})
}
