// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package dashboard turns query results into the rendered dashboard page.

A Service runs the KPI row and every panel sequentially for one
models.DashboardFilter. Each panel is independent and ends in exactly one
state:

  - ok: one or more SVG charts (go-chart) and/or a table
  - empty: a per-panel "no data" notice
  - error: the engine error text, shown in place of the chart

A failing panel never affects the others. Outcomes are counted in the
dashboard_panel_renders_total metric.

Encodings are fixed: 2019 is orange (#FF7A00) and 2023 is blue (#0A84FF) in
every panel. Hourly, weekday and categorical panels render one bar chart per
selected year.

The TemplateEngine renders a Page with the embedded html/template files in
templates/. Chart SVG is embedded inline; every label passed to go-chart is
stripped of markup characters first.
*/
package dashboard
