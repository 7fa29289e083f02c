// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tomtom215/commutepulse/internal/models"
)

func (s *Service) hotspotsPanel(ctx context.Context, filter models.DashboardFilter) Panel {
	return runPanel(ctx, PanelNYCHotspots, "NYC: Pickup Hotspots (PULocationID)",
		"No NYC pickup data for selected year(s).",
		func(ctx context.Context, p *Panel) (bool, error) {
			rows, err := s.q.GetPickupHotspots(ctx, filter.Years, s.cfg.HotspotLimit)
			if err != nil {
				return false, err
			}
			if len(rows) == 0 {
				return false, nil
			}

			table := &Table{Headers: []string{"Year", "Location ID", "Borough", "Zone", "Trips"}}
			for _, r := range rows {
				table.Rows = append(table.Rows, []string{
					strconv.Itoa(r.Year),
					strconv.Itoa(r.LocationID),
					r.Borough,
					r.Zone,
					formatWithCommas(r.Trips),
				})
			}
			p.Caption = fmt.Sprintf("Busiest pickup zones by year, first %d rows.", len(rows))
			p.Table = table
			return true, nil
		})
}

func (s *Service) pickupPointsPanel(ctx context.Context) Panel {
	return runPanel(ctx, PanelChicagoPoints, "Chicago: Pickup Points (sample)",
		"No Chicago pickup coordinates available.",
		func(ctx context.Context, p *Panel) (bool, error) {
			points, err := s.q.GetPickupPoints(ctx, s.cfg.PointMapLimit)
			if err != nil {
				return false, err
			}
			if len(points) == 0 {
				return false, nil
			}

			group := scatterSeries{Name: "2023 pickups", Color: YearColor(models.Year2023)}
			for _, pt := range points {
				group.X = append(group.X, pt.Longitude)
				group.Y = append(group.Y, pt.Latitude)
			}
			svg, err := renderScatter([]scatterSeries{group}, "Longitude", "Latitude")
			if err != nil {
				return false, err
			}
			p.Caption = fmt.Sprintf("%s pickup centroids from 2023 trips.", formatWithCommas(int64(len(points))))
			p.Charts = []ChartSVG{{SVG: svg}}
			return true, nil
		})
}

func (s *Service) paymentPanel(ctx context.Context, filter models.DashboardFilter) Panel {
	return s.categoryPanel(ctx, PanelNYCPayment, "NYC: Payment Types", "No NYC payment data for selected year(s).",
		func(ctx context.Context) ([]models.CategoryCount, error) {
			return s.q.GetPaymentBreakdown(ctx, filter.Years)
		})
}

func (s *Service) vendorPanel(ctx context.Context, filter models.DashboardFilter) Panel {
	return s.categoryPanel(ctx, PanelNYCVendor, "NYC: Vendors", "No NYC vendor data for selected year(s).",
		func(ctx context.Context) ([]models.CategoryCount, error) {
			return s.q.GetVendorBreakdown(ctx, filter.Years)
		})
}

// categoryPanel renders one bar chart per year over decoded category labels.
func (s *Service) categoryPanel(ctx context.Context, id, title, noData string, query func(context.Context) ([]models.CategoryCount, error)) Panel {
	return runPanel(ctx, id, title, noData, func(ctx context.Context, p *Panel) (bool, error) {
		rows, err := query(ctx)
		if err != nil {
			return false, err
		}
		if len(rows) == 0 {
			return false, nil
		}

		byYear := make(map[int][]bar)
		var all []float64
		for _, r := range rows {
			byYear[r.Year] = append(byYear[r.Year], bar{Label: r.Label, Value: float64(r.Trips)})
			all = append(all, float64(r.Trips))
		}

		yRange := valueRange(all)
		for _, y := range sortedYears(rows, func(r models.CategoryCount) int { return r.Year }) {
			svg, err := renderBars(strconv.Itoa(y), byYear[y], YearColor(y), yRange)
			if err != nil {
				return false, err
			}
			p.Charts = append(p.Charts, ChartSVG{Label: strconv.Itoa(y), SVG: svg})
		}
		p.Caption = "Trips per category, one chart per year. Unlisted codes are grouped as Other."
		return true, nil
	})
}

func (s *Service) fareScatterPanel(ctx context.Context, filter models.DashboardFilter) Panel {
	return runPanel(ctx, PanelNYCFareScatter, "NYC: Trip Distance vs Fare (sample)",
		"No NYC trips to sample for selected year(s).",
		func(ctx context.Context, p *Panel) (bool, error) {
			rows, err := s.q.GetFareSample(ctx, filter.Years, s.cfg.ScatterSampleSize, float64(s.cfg.MaxFare))
			if err != nil {
				return false, err
			}
			if len(rows) == 0 {
				return false, nil
			}

			byYear := make(map[int]*scatterSeries)
			for _, r := range rows {
				g, ok := byYear[r.Year]
				if !ok {
					g = &scatterSeries{Name: strconv.Itoa(r.Year), Color: YearColor(r.Year)}
					byYear[r.Year] = g
				}
				g.X = append(g.X, r.Distance)
				g.Y = append(g.Y, r.Fare)
			}
			groups := make([]scatterSeries, 0, len(byYear))
			for _, y := range sortedYears(rows, func(r models.FareSample) int { return r.Year }) {
				groups = append(groups, *byYear[y])
			}

			svg, err := renderScatter(groups, "Trip Distance (mi)", "Fare ($)")
			if err != nil {
				return false, err
			}
			p.Caption = fmt.Sprintf("Random sample of up to %d trips with a positive distance and a fare under $%d.",
				s.cfg.ScatterSampleSize, s.cfg.MaxFare)
			p.Charts = []ChartSVG{{SVG: svg}}
			return true, nil
		})
}
