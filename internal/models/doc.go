// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

/*
Package models defines the data structures shared by the query layer, the
dashboard renderer and the HTTP handlers.

Key Components:

  - DashboardFilter: the user-selected controls (years, city focus, time
    aggregation, top-N) applied before any query runs
  - RecoveryKPI, TrafficSpeedKPI: headline numbers for the KPI row
  - YearBucketCount, HourlyCount, WeekdayCount, HourlySpeed: bucketed
    aggregations compared across reference years
  - StationRank, StationDailyEntry: CTA top-N station ranking and detail rows
  - PickupHotspot, PickupPoint: NYC zone ranking and Chicago pickup sample
  - CategoryCount, FareSample: categorical breakdowns and sampled scatter rows

All types are plain values. Nothing here talks to the database.
*/
package models
