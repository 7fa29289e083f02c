// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tomtom215/commutepulse/internal/models"
)

// GetTripTrend counts the trips of a city per (year, time bucket), truncating
// pickup timestamps to the selected granularity. Rows with no pickup
// timestamp form one Undated bucket per year, sorted last, so the buckets of
// a year always sum to its trip count.
func (db *DB) GetTripTrend(ctx context.Context, city models.City, years []int, granularity models.Granularity) ([]models.YearBucketCount, error) {
	unit, err := granularity.TruncUnit()
	if err != nil {
		return nil, err
	}
	sources, tsExpr, err := db.cityTrips(city)
	if err != nil {
		return nil, err
	}
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.YearBucketCount{}, nil
	}

	bucketExpr := fmt.Sprintf("DATE_TRUNC('%s', %s) AS bucket", unit, tsExpr)
	query := fmt.Sprintf(`
		WITH base AS (
		%s
		)
		SELECT year, bucket, COUNT(*) AS trips
		FROM base
		WHERE %s
		GROUP BY 1, 2
		ORDER BY 2, 1`,
		db.unionByYear(sources, bucketExpr), yearCond)

	results := make([]models.YearBucketCount, 0)
	err = db.queryAndScan(ctx, trendOperation(city), query, args, func(rows *sql.Rows) error {
		var r models.YearBucketCount
		var bucket sql.NullTime
		if err := rows.Scan(&r.Year, &bucket, &r.Trips); err != nil {
			return err
		}
		r.Bucket, r.Undated = bucket.Time, !bucket.Valid
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetHourlyDemand counts the trips of a city per (year, hour of day). Trips
// with no pickup timestamp are counted in an Undated row with hour -1.
func (db *DB) GetHourlyDemand(ctx context.Context, city models.City, years []int) ([]models.HourlyCount, error) {
	sources, tsExpr, err := db.cityTrips(city)
	if err != nil {
		return nil, err
	}
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.HourlyCount{}, nil
	}

	query := fmt.Sprintf(`
		WITH base AS (
		%s
		)
		SELECT year, hour::INTEGER AS hour, COUNT(*) AS trips
		FROM base
		WHERE %s
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		db.unionByYear(sources, fmt.Sprintf("EXTRACT(hour FROM %s) AS hour", tsExpr)), yearCond)

	results := make([]models.HourlyCount, 0, 48)
	err = db.queryAndScan(ctx, "hourly_"+cityKey(city), query, args, func(rows *sql.Rows) error {
		var r models.HourlyCount
		var hour sql.NullInt64
		if err := rows.Scan(&r.Year, &hour, &r.Trips); err != nil {
			return err
		}
		r.Hour, r.Undated = int(hour.Int64), !hour.Valid
		if r.Undated {
			r.Hour = -1
		}
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetWeekdayDemand counts the trips of a city per (year, ISO day of week).
// Weekday 1 is Monday and 7 is Sunday; trips with no pickup timestamp are
// counted in an Undated row with weekday 0.
func (db *DB) GetWeekdayDemand(ctx context.Context, city models.City, years []int) ([]models.WeekdayCount, error) {
	sources, tsExpr, err := db.cityTrips(city)
	if err != nil {
		return nil, err
	}
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.WeekdayCount{}, nil
	}

	query := fmt.Sprintf(`
		WITH base AS (
		%s
		)
		SELECT year, dow::INTEGER AS dow, COUNT(*) AS trips
		FROM base
		WHERE %s
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		db.unionByYear(sources, fmt.Sprintf("ISODOW(%s) AS dow", tsExpr)), yearCond)

	results := make([]models.WeekdayCount, 0, 14)
	err = db.queryAndScan(ctx, "weekday_"+cityKey(city), query, args, func(rows *sql.Rows) error {
		var r models.WeekdayCount
		var dow sql.NullInt64
		if err := rows.Scan(&r.Year, &dow, &r.Trips); err != nil {
			return err
		}
		r.Weekday, r.Undated = int(dow.Int64), !dow.Valid
		r.Label = models.WeekdayLabel(r.Weekday)
		if r.Undated {
			r.Label = models.UndatedLabel
		}
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// cityKey is the metric-safe form of a city name.
func cityKey(city models.City) string {
	return strings.ToLower(string(city))
}

func trendOperation(city models.City) string {
	return "trend_" + cityKey(city)
}
