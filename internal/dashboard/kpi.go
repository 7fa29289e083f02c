// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"fmt"

	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
	"github.com/tomtom215/commutepulse/internal/models"
)

// KPI trend classes, matching the page stylesheet.
const (
	TrendUp   = "kpi-up"
	TrendDown = "kpi-down"
)

// kpiPlaceholder is shown as the value when a KPI cannot be computed.
const kpiPlaceholder = "-"

// KPI is one card of the headline row.
type KPI struct {
	ID      string
	Label   string
	Value   string
	Delta   string
	Trend   string
	Caption string
	Err     string
}

func (s *Service) buildKPIs(ctx context.Context) []KPI {
	return []KPI{
		s.recoveryKPI(ctx, "kpi_nyc_recovery", models.CityNYC),
		s.recoveryKPI(ctx, "kpi_chicago_recovery", models.CityChicago),
		s.ctaTotalKPI(ctx),
		s.trafficSpeedKPI(ctx),
	}
}

// finishKPI records the outcome of one card and fills the error state.
func finishKPI(ctx context.Context, k KPI, empty bool, err error) KPI {
	outcome := metrics.PanelOK
	switch {
	case err != nil:
		logging.Ctx(ctx).Warn().Err(err).Str("kpi", k.ID).Msg("KPI failed")
		outcome = metrics.PanelError
		k.Value = kpiPlaceholder
		k.Delta = ""
		k.Trend = ""
		k.Err = err.Error()
	case empty:
		outcome = metrics.PanelEmpty
	}
	metrics.RecordPanel(k.ID, outcome)
	return k
}

func (s *Service) recoveryKPI(ctx context.Context, id string, city models.City) KPI {
	k := KPI{ID: id, Label: fmt.Sprintf("%s Taxi Trips (Recovery)", city)}

	r, err := s.q.GetRecoveryKPI(ctx, city)
	if err != nil {
		return finishKPI(ctx, k, false, err)
	}
	k.Value = fmt.Sprintf("%s / %s", formatWithCommas(r.Trips2023), formatWithCommas(r.Trips2019))
	k.Delta = r.RecoveryLabel()
	if r.RecoveryPct != nil {
		k.Trend = TrendDown
		if r.Recovered() {
			k.Trend = TrendUp
		}
	}
	empty := r.Trips2019 == 0 && r.Trips2023 == 0
	if empty {
		k.Caption = fmt.Sprintf("No %s trips recorded.", city)
	}
	return finishKPI(ctx, k, empty, nil)
}

func (s *Service) ctaTotalKPI(ctx context.Context) KPI {
	k := KPI{ID: "kpi_cta_total", Label: "CTA: Total Recorded L Entries", Caption: "All dates available in source"}

	total, ok, err := s.q.GetCTATotalRides(ctx)
	if err != nil {
		return finishKPI(ctx, k, false, err)
	}
	if !ok {
		k.Value = kpiPlaceholder
		k.Caption = "CTA rides not available."
		return finishKPI(ctx, k, true, nil)
	}
	k.Value = formatWithCommas(total)
	return finishKPI(ctx, k, false, nil)
}

func (s *Service) trafficSpeedKPI(ctx context.Context) KPI {
	k := KPI{ID: "kpi_traffic_speed", Label: "Chicago Traffic Avg Speed"}

	t, err := s.q.GetTrafficSpeedKPI(ctx)
	if err != nil {
		return finishKPI(ctx, k, false, err)
	}
	if !t.Complete() {
		k.Value = kpiPlaceholder
		k.Caption = "Insufficient data"
		return finishKPI(ctx, k, true, nil)
	}
	delta := t.Delta()
	k.Value = fmt.Sprintf("%.1f mph", *t.Speed2023)
	k.Delta = fmt.Sprintf("%+.1f vs 2019", delta)
	k.Trend = TrendDown
	if delta >= 0 {
		k.Trend = TrendUp
	}
	return finishKPI(ctx, k, false, nil)
}
