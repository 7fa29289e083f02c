// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/tomtom215/commutepulse/internal/models"
)

func (s *Service) trafficSpeedPanel(ctx context.Context, filter models.DashboardFilter) Panel {
	return runPanel(ctx, PanelTrafficSpeed, "Chicago Traffic: Avg Speed by Hour (2019 vs 2023)",
		"No traffic data for selected year(s).",
		func(ctx context.Context, p *Panel) (bool, error) {
			rows, err := s.q.GetTrafficSpeedByHour(ctx, filter.Years)
			if err != nil {
				return false, err
			}
			if len(rows) == 0 {
				return false, nil
			}

			byYear := make(map[int]*lineSeries)
			var speeds []float64
			for _, r := range rows {
				l, ok := byYear[r.Year]
				if !ok {
					l = &lineSeries{Name: strconv.Itoa(r.Year), Color: YearColor(r.Year)}
					byYear[r.Year] = l
				}
				l.X = append(l.X, float64(r.Hour))
				l.Y = append(l.Y, r.AvgSpeed)
				speeds = append(speeds, r.AvgSpeed)
			}
			lines := make([]lineSeries, 0, len(byYear))
			for _, y := range sortedYears(rows, func(r models.HourlySpeed) int { return r.Year }) {
				lines = append(lines, *byYear[y])
			}

			svg, err := renderLines(lines, "Avg Speed (mph)", hourTicks(), valueRange(speeds))
			if err != nil {
				return false, err
			}
			p.Caption = "Average segment speed by hour of day (0-23)."
			p.Charts = []ChartSVG{{SVG: svg}}
			return true, nil
		})
}

func (s *Service) topStationsPanel(ctx context.Context, filter models.DashboardFilter) Panel {
	return runPanel(ctx, PanelTopStations, "CTA: L Stations Daily Entries (Top Stations)",
		"CTA rides not available.",
		func(ctx context.Context, p *Panel) (bool, error) {
			top, err := s.q.GetTopStations(ctx, filter.TopN)
			if err != nil {
				return false, err
			}
			if top == nil || len(top.Ranking) == 0 {
				return false, nil
			}

			table := &Table{Headers: []string{"Rank", "Station", "Total Entries"}}
			index := make(map[string]int, len(top.Ranking))
			lines := make([]timeLine, len(top.Ranking))
			for i, r := range top.Ranking {
				index[r.Station] = i
				lines[i] = timeLine{Name: r.Station, Color: stationColor(i)}
				table.Rows = append(table.Rows, []string{
					strconv.Itoa(i + 1),
					r.Station,
					formatWithCommas(r.TotalRides),
				})
			}
			for _, d := range top.Daily {
				i, ok := index[d.Station]
				if !ok {
					continue
				}
				lines[i].X = append(lines[i].X, d.Date)
				lines[i].Y = append(lines[i].Y, float64(d.Rides))
			}

			p.Caption = fmt.Sprintf("Top %d stations by total recorded entries.", len(top.Ranking))
			p.Table = table
			if len(top.Daily) > 0 {
				svg, err := renderTimeLines(lines, "Rides", 24*time.Hour)
				if err != nil {
					return false, err
				}
				p.Charts = []ChartSVG{{SVG: svg}}
			}
			return true, nil
		})
}
