// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"errors"

	"github.com/tomtom215/commutepulse/internal/logging"
	"github.com/tomtom215/commutepulse/internal/metrics"
)

// errNoSeries is returned by the chart renderers when every series is empty.
var errNoSeries = errors.New("chart has no data")

// Panel identifiers, also used as metric labels and HTML anchors.
const (
	PanelNYCTrend       = "nyc_trend"
	PanelChicagoTrend   = "chicago_trend"
	PanelNYCHourly      = "nyc_hourly"
	PanelChicagoHourly  = "chicago_hourly"
	PanelNYCWeekday     = "nyc_weekday"
	PanelChicagoWeekday = "chicago_weekday"
	PanelTrafficSpeed   = "traffic_speed_hourly"
	PanelTopStations    = "cta_top_stations"
	PanelNYCHotspots    = "nyc_hotspots"
	PanelChicagoPoints  = "chicago_pickup_points"
	PanelNYCPayment     = "nyc_payment_types"
	PanelNYCVendor      = "nyc_vendors"
	PanelNYCFareScatter = "nyc_fare_scatter"
)

// Table is a simple header plus rows grid rendered as an HTML table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Panel is one independent visualization. Exactly one of its states applies:
// ok (Charts and/or Table set), empty (Message holds the no-data notice) or
// error (Message holds the engine error text).
type Panel struct {
	ID      string
	Title   string
	Caption string
	State   string
	Charts  []ChartSVG
	Table   *Table
	Message string
}

// OK reports whether the panel rendered data.
func (p Panel) OK() bool { return p.State == metrics.PanelOK }

// Empty reports whether the panel shows its no-data notice.
func (p Panel) Empty() bool { return p.State == metrics.PanelEmpty }

// Failed reports whether the panel query or render failed.
func (p Panel) Failed() bool { return p.State == metrics.PanelError }

// panelFunc fills p and reports whether it had any data.
type panelFunc func(ctx context.Context, p *Panel) (hasData bool, err error)

// runPanel executes one panel in isolation. A failure is confined to the
// panel: its error text is shown in place of the chart and the page goes on.
func runPanel(ctx context.Context, id, title, noData string, fn panelFunc) Panel {
	p := Panel{ID: id, Title: title}

	hasData, err := fn(ctx, &p)
	switch {
	case errors.Is(err, errNoSeries):
		p.State = metrics.PanelEmpty
	case err != nil:
		logging.Ctx(ctx).Warn().Err(err).Str("panel", id).Msg("Panel failed")
		p.State = metrics.PanelError
		p.Message = err.Error()
		p.Charts = nil
		p.Table = nil
	case !hasData:
		p.State = metrics.PanelEmpty
	default:
		p.State = metrics.PanelOK
	}
	if p.State == metrics.PanelEmpty {
		p.Message = noData
		p.Charts = nil
		p.Table = nil
	}

	metrics.RecordPanel(id, p.State)
	return p
}
