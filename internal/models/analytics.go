// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package models

import (
	"fmt"
	"time"
)

// RecoveryUndefined is displayed when the earlier-year count is zero.
const RecoveryUndefined = "undefined"

// RecoveryKPI compares trip volume between the two reference years.
// RecoveryPct is nil when Trips2019 is zero.
type RecoveryKPI struct {
	Trips2019   int64    `json:"trips_2019"`
	Trips2023   int64    `json:"trips_2023"`
	RecoveryPct *float64 `json:"recovery_pct"`
}

// RecoveryLabel formats the recovery percentage for display.
func (k RecoveryKPI) RecoveryLabel() string {
	if k.RecoveryPct == nil {
		return RecoveryUndefined
	}
	return fmt.Sprintf("%.1f%% vs 2019", *k.RecoveryPct)
}

// Recovered reports whether 2023 volume reached 2019 volume.
// An undefined recovery is never considered recovered.
func (k RecoveryKPI) Recovered() bool {
	return k.RecoveryPct != nil && *k.RecoveryPct >= 100
}

// TrafficSpeedKPI holds the Chicago average traffic speed per reference year.
// A nil value means the year had no speed samples.
type TrafficSpeedKPI struct {
	Speed2019 *float64 `json:"speed_2019"`
	Speed2023 *float64 `json:"speed_2023"`
}

// Complete reports whether both years have a speed.
func (k TrafficSpeedKPI) Complete() bool {
	return k.Speed2019 != nil && k.Speed2023 != nil
}

// Delta returns the 2023 speed minus the 2019 speed, or 0 when not Complete.
func (k TrafficSpeedKPI) Delta() float64 {
	if !k.Complete() {
		return 0
	}
	return *k.Speed2023 - *k.Speed2019
}

// YearBucketCount is a trip count for one (year, truncated timestamp) bucket.
// Undated marks the bucket of trips with no pickup timestamp; Bucket is zero.
type YearBucketCount struct {
	Year    int       `json:"year"`
	Bucket  time.Time `json:"bucket"`
	Undated bool      `json:"undated,omitempty"`
	Trips   int64     `json:"trips"`
}

// HourlyCount is a trip count for one (year, hour-of-day) bucket.
type HourlyCount struct {
	Year    int   `json:"year"`
	Hour    int   `json:"hour"` // 0-23, -1 when Undated
	Undated bool  `json:"undated,omitempty"`
	Trips   int64 `json:"trips"`
}

// WeekdayCount is a trip count for one (year, ISO day-of-week) bucket.
type WeekdayCount struct {
	Year    int    `json:"year"`
	Weekday int    `json:"weekday"` // 1 = Monday ... 7 = Sunday, 0 when Undated
	Undated bool   `json:"undated,omitempty"`
	Label   string `json:"label"`
	Trips   int64  `json:"trips"`
}

// UndatedLabel names the bucket of trips without a pickup timestamp.
const UndatedLabel = "n/a"

// HourlySpeed is the average traffic speed for one (year, hour-of-day) bucket.
type HourlySpeed struct {
	Year     int     `json:"year"`
	Hour     int     `json:"hour"`
	AvgSpeed float64 `json:"avg_speed"`
}

// StationRank is a CTA station with its total recorded entries.
type StationRank struct {
	Station    string `json:"station"`
	TotalRides int64  `json:"total_rides"`
}

// StationDailyEntry is one day of entries at a CTA station.
type StationDailyEntry struct {
	Station string    `json:"station"`
	Date    time.Time `json:"date"`
	Rides   int64     `json:"rides"`
}

// TopStations is the result of a top-N station ranking: the ranking itself,
// ordered by descending total, and the daily rows for the ranked stations only.
type TopStations struct {
	Ranking []StationRank       `json:"ranking"`
	Daily   []StationDailyEntry `json:"daily"`
}

// PickupHotspot is the trip count for one NYC taxi zone in one year.
type PickupHotspot struct {
	Year       int    `json:"year"`
	LocationID int    `json:"location_id"`
	Borough    string `json:"borough"`
	Zone       string `json:"zone"`
	Trips      int64  `json:"trips"`
}

// PickupPoint is a single pickup coordinate.
type PickupPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CategoryCount is a trip count for one (year, decoded category label).
type CategoryCount struct {
	Year  int    `json:"year"`
	Label string `json:"label"`
	Trips int64  `json:"trips"`
}

// FareSample is one sampled trip for the distance vs fare scatter.
type FareSample struct {
	Year     int     `json:"year"`
	Distance float64 `json:"trip_distance"`
	Fare     float64 `json:"fare_amount"`
}

var weekdayLabels = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayLabel returns the short name for an ISO day of week (1 = Mon ... 7 = Sun).
func WeekdayLabel(isodow int) string {
	if isodow < 1 || isodow > len(weekdayLabels) {
		return "?"
	}
	return weekdayLabels[isodow-1]
}
