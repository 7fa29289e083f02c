// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/commutepulse/internal/models"
)

func renderPage(t *testing.T, page *Page) string {
	t.Helper()
	te, err := NewTemplateEngine()
	if err != nil {
		t.Fatalf("NewTemplateEngine() error: %v", err)
	}
	body, err := te.Execute(page)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	return string(body)
}

func TestRender_FullPage(t *testing.T) {
	svc := NewService(&fakeQuerier{}, testDashboardConfig())
	html := renderPage(t, svc.Build(context.Background(), testFilter(models.CityNYC, 2019, 2023)))

	for _, want := range []string{
		PageTitle,
		"NYC Taxi Trips (Recovery)",
		"150.0% vs 2019",
		`class="kpi-up"`,
		`id="` + PanelTopStations + `"`,
		`id="` + PanelNYCFareScatter + `"`,
		"<svg",
		"JFK Airport",
		"Insights &amp; Recommendations",
		"Subsidy Tuning",
		`<input type="hidden" name="year" value="">`,
		`value="2019" checked`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}

	// Station names from the catalog are escaped in the ranking table.
	if strings.Contains(html, "<b>Lake</b>") {
		t.Error("station name rendered unescaped")
	}
	if !strings.Contains(html, "&lt;b&gt;Lake&lt;/b&gt;") {
		t.Error("escaped station name missing from table")
	}
}

func TestRender_PanelStates(t *testing.T) {
	q := &fakeQuerier{errs: map[string]error{"GetTrafficSpeedByHour": errors.New(`Catalog Error: Table "chicago_traffic_2023" does not exist`)}}
	svc := NewService(q, testDashboardConfig())
	page := svc.Build(context.Background(), testFilter(models.CityChicago))

	html := renderPage(t, page)

	if !strings.Contains(html, "Query failed: Catalog Error: Table &#34;chicago_traffic_2023&#34; does not exist") {
		t.Error("engine error text not shown in failed panel")
	}
	if !strings.Contains(html, "No NYC data for selected year(s).") {
		t.Error("no-data notice missing for empty year selection")
	}
	if !strings.Contains(html, "Spotlight: Chicago") {
		t.Error("spotlight heading missing")
	}
}

func TestRender_InvalidPage(t *testing.T) {
	svc := NewService(&fakeQuerier{}, testDashboardConfig())
	page := svc.Invalid(testFilter(models.CityChicago, 2019), map[string]string{
		"granularity": "granularity must be one of [Hourly Daily Weekly Monthly]",
	})

	html := renderPage(t, page)

	if !strings.Contains(html, "Invalid filter") {
		t.Error("validation block missing")
	}
	if !strings.Contains(html, "granularity must be one of") {
		t.Error("field message missing")
	}
	if strings.Contains(html, "Insights &amp; Recommendations") {
		t.Error("invalid page rendered the dashboard body")
	}
}
