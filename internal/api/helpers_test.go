// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/commutepulse/internal/config"
	"github.com/tomtom215/commutepulse/internal/dashboard"
	"github.com/tomtom215/commutepulse/internal/models"
	"github.com/tomtom215/commutepulse/internal/validation"
)

// stubQuerier answers every dashboard query with an empty result, or with
// err when set. It counts calls so tests can assert no query ran.
type stubQuerier struct {
	err   error
	calls int
}

func (s *stubQuerier) hit() error {
	s.calls++
	return s.err
}

func (s *stubQuerier) GetRecoveryKPI(context.Context, models.City) (*models.RecoveryKPI, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &models.RecoveryKPI{Trips2019: 200, Trips2023: 150}, nil
}

func (s *stubQuerier) GetCTATotalRides(context.Context) (int64, bool, error) {
	return 0, false, s.hit()
}

func (s *stubQuerier) GetTrafficSpeedKPI(context.Context) (*models.TrafficSpeedKPI, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &models.TrafficSpeedKPI{}, nil
}

func (s *stubQuerier) GetTripTrend(context.Context, models.City, []int, models.Granularity) ([]models.YearBucketCount, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetHourlyDemand(context.Context, models.City, []int) ([]models.HourlyCount, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetWeekdayDemand(context.Context, models.City, []int) ([]models.WeekdayCount, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetTrafficSpeedByHour(context.Context, []int) ([]models.HourlySpeed, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetTopStations(context.Context, int) (*models.TopStations, error) {
	if err := s.hit(); err != nil {
		return nil, err
	}
	return &models.TopStations{}, nil
}

func (s *stubQuerier) GetPickupHotspots(context.Context, []int, int) ([]models.PickupHotspot, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetPickupPoints(context.Context, int) ([]models.PickupPoint, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetPaymentBreakdown(context.Context, []int) ([]models.CategoryCount, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetVendorBreakdown(context.Context, []int) ([]models.CategoryCount, error) {
	return nil, s.hit()
}

func (s *stubQuerier) GetFareSample(context.Context, []int, int, float64) ([]models.FareSample, error) {
	return nil, s.hit()
}

// stubHealth is a HealthChecker with a fixed ping result.
type stubHealth struct {
	err error
}

func (s stubHealth) Ping(context.Context) error { return s.err }
func (s stubHealth) Source() string             { return "local" }

var errCatalogDown = errors.New("IO Error: connection to md: refused")

func testDashboardConfig() config.DashboardConfig {
	return config.DashboardConfig{
		DefaultYears:       []int{2019, 2023},
		DefaultCity:        "Chicago",
		DefaultGranularity: "Monthly",
		TopNMin:            3,
		TopNMax:            20,
		TopNDefault:        8,
		HotspotLimit:       50,
		PointMapLimit:      5000,
		ScatterSampleSize:  2000,
		MaxFare:            100,
	}
}

func newTestHandler(t *testing.T, q dashboard.Querier, db HealthChecker) *Handler {
	t.Helper()
	engine, err := dashboard.NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine() error: %v", err)
	}
	cfg := testDashboardConfig()
	return NewHandler(HandlerOptions{
		Dashboard:    dashboard.NewService(q, cfg),
		Engine:       engine,
		DB:           db,
		Defaults:     validation.DefaultsFromConfig(cfg),
		Version:      "test",
		ReadyTimeout: time.Second,
	})
}

// newTestRouter builds the full route tree with rate limiting disabled
// unless mwCfg says otherwise.
func newTestRouter(t *testing.T, q dashboard.Querier, db HealthChecker, mwCfg *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}
	return NewRouter(newTestHandler(t, q, db), NewChiMiddleware(mwCfg)).SetupChi()
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}
