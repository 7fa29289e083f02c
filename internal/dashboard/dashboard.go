// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/models"
)

// Querier runs the analytical queries behind the dashboard.
// *database.DB implements it.
type Querier interface {
	GetRecoveryKPI(ctx context.Context, city models.City) (*models.RecoveryKPI, error)
	GetCTATotalRides(ctx context.Context) (int64, bool, error)
	GetTrafficSpeedKPI(ctx context.Context) (*models.TrafficSpeedKPI, error)
	GetTripTrend(ctx context.Context, city models.City, years []int, granularity models.Granularity) ([]models.YearBucketCount, error)
	GetHourlyDemand(ctx context.Context, city models.City, years []int) ([]models.HourlyCount, error)
	GetWeekdayDemand(ctx context.Context, city models.City, years []int) ([]models.WeekdayCount, error)
	GetTrafficSpeedByHour(ctx context.Context, years []int) ([]models.HourlySpeed, error)
	GetTopStations(ctx context.Context, n int) (*models.TopStations, error)
	GetPickupHotspots(ctx context.Context, years []int, limit int) ([]models.PickupHotspot, error)
	GetPickupPoints(ctx context.Context, limit int) ([]models.PickupPoint, error)
	GetPaymentBreakdown(ctx context.Context, years []int) ([]models.CategoryCount, error)
	GetVendorBreakdown(ctx context.Context, years []int) ([]models.CategoryCount, error)
	GetFareSample(ctx context.Context, years []int, sampleSize int, maxFare float64) ([]models.FareSample, error)
}

// Page header text.
const (
	PageTitle    = "Chicago & NYC Transportation Analytics"
	PageSubtitle = "Operational insights for CTA & NYC: taxi demand, traffic congestion, and L ridership, 2019 vs 2023 recovery."
)

// Option is one choice of a form control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Controls is the state of the filter form.
type Controls struct {
	Years         []Option
	Cities        []Option
	Granularities []Option
	TopN          int
	TopNMin       int
	TopNMax       int
}

// Page is everything the template needs for one render.
type Page struct {
	Title       string
	Subtitle    string
	Filter      models.DashboardFilter
	Controls    Controls
	KPIs        []KPI
	Panels      []Panel
	Spotlight   []Panel
	Insights    []Insight
	Errors      map[string]string
	GeneratedAt time.Time
}

// Invalid reports whether the page carries request validation errors.
func (p *Page) Invalid() bool { return len(p.Errors) > 0 }

// Service builds dashboard pages. Each Build is a stateless cycle that runs
// every query again for the given filter.
type Service struct {
	q   Querier
	cfg config.DashboardConfig
	now func() time.Time
}

// NewService creates a dashboard service over q.
func NewService(q Querier, cfg config.DashboardConfig) *Service {
	return &Service{q: q, cfg: cfg, now: time.Now}
}

// Build runs the KPI row and every panel sequentially for filter. Failures
// are confined to the KPI or panel that produced them. A filter that fails
// Validate yields the Invalid page and runs no queries.
func (s *Service) Build(ctx context.Context, filter models.DashboardFilter) *Page {
	if err := filter.Validate(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Rejected dashboard filter")
		return s.Invalid(filter, filterErrors(err))
	}

	page := s.shell(filter)
	page.KPIs = s.buildKPIs(ctx)

	page.Panels = []Panel{
		s.tripTrendPanel(ctx, PanelNYCTrend, models.CityNYC, filter),
		s.tripTrendPanel(ctx, PanelChicagoTrend, models.CityChicago, filter),
		s.hourlyPanel(ctx, PanelNYCHourly, models.CityNYC, filter),
		s.hourlyPanel(ctx, PanelChicagoHourly, models.CityChicago, filter),
		s.weekdayPanel(ctx, PanelNYCWeekday, models.CityNYC, filter),
		s.weekdayPanel(ctx, PanelChicagoWeekday, models.CityChicago, filter),
		s.trafficSpeedPanel(ctx, filter),
		s.topStationsPanel(ctx, filter),
	}

	if filter.City == models.CityNYC {
		page.Spotlight = []Panel{
			s.hotspotsPanel(ctx, filter),
			s.paymentPanel(ctx, filter),
			s.vendorPanel(ctx, filter),
			s.fareScatterPanel(ctx, filter),
		}
	} else {
		page.Spotlight = []Panel{
			s.pickupPointsPanel(ctx),
		}
	}

	page.Insights = Insights()
	return page
}

// filterErrors keys a Validate error by the query parameter it concerns.
func filterErrors(err error) map[string]string {
	field := "filter"
	switch {
	case errors.Is(err, models.ErrInvalidYear):
		field = "year"
	case errors.Is(err, models.ErrInvalidGranularity):
		field = "granularity"
	}
	return map[string]string{field: err.Error()}
}

// Invalid builds a page that shows the form with field errors and runs no
// queries.
func (s *Service) Invalid(filter models.DashboardFilter, fieldErrors map[string]string) *Page {
	page := s.shell(filter)
	page.Errors = fieldErrors
	return page
}

func (s *Service) shell(filter models.DashboardFilter) *Page {
	return &Page{
		Title:       PageTitle,
		Subtitle:    PageSubtitle,
		Filter:      filter,
		Controls:    s.controls(filter),
		GeneratedAt: s.now().UTC(),
	}
}

func (s *Service) controls(filter models.DashboardFilter) Controls {
	c := Controls{
		TopN:    filter.TopN,
		TopNMin: s.cfg.TopNMin,
		TopNMax: s.cfg.TopNMax,
	}
	for _, year := range models.ReferenceYears {
		label := strconv.Itoa(year)
		c.Years = append(c.Years, Option{Value: label, Label: label, Selected: filter.HasYear(year)})
	}
	for _, city := range models.Cities {
		c.Cities = append(c.Cities, Option{Value: string(city), Label: string(city), Selected: city == filter.City})
	}
	for _, g := range models.Granularities {
		c.Granularities = append(c.Granularities, Option{Value: string(g), Label: string(g), Selected: g == filter.Granularity})
	}
	return c
}
