// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tomtom215/commutepulse/internal/models"
)

// GetRecoveryKPI counts the trips of a city in both reference years and
// computes recovery = 100 x trips_2023 / trips_2019. Recovery is NULL (and
// RecoveryPct nil) when there were no 2019 trips; the engine never divides by
// zero.
func (db *DB) GetRecoveryKPI(ctx context.Context, city models.City) (*models.RecoveryKPI, error) {
	sources, _, err := db.cityTrips(city)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		WITH y19 AS (SELECT COUNT(*) AS trips_2019 FROM %s),
		     y23 AS (SELECT COUNT(*) AS trips_2023 FROM %s)
		SELECT
			trips_2019,
			trips_2023,
			CASE WHEN trips_2019 > 0 THEN 100.0::DOUBLE * trips_2023 / trips_2019 ELSE NULL END AS recovery_pct
		FROM y19, y23`,
		db.table(sources[0].Table), db.table(sources[1].Table))

	var kpi models.RecoveryKPI
	var pct sql.NullFloat64
	if err := db.queryRowWithContext(ctx, "recovery_kpi", query, nil, &kpi.Trips2019, &kpi.Trips2023, &pct); err != nil {
		return nil, err
	}
	kpi.RecoveryPct = nullFloatPtr(pct)
	return &kpi, nil
}

// GetCTATotalRides sums every recorded L station entry. ok is false when the
// table has no rows.
func (db *DB) GetCTATotalRides(ctx context.Context) (total int64, ok bool, err error) {
	query := fmt.Sprintf(`SELECT SUM(rides)::BIGINT AS total_rides FROM %s`, db.table(db.tables.CTAStationEntries))

	var sum sql.NullInt64
	if err := db.queryRowWithContext(ctx, "cta_total", query, nil, &sum); err != nil {
		return 0, false, err
	}
	return sum.Int64, sum.Valid, nil
}

// GetTrafficSpeedKPI returns the Chicago average traffic speed per reference year.
// A year with no readings leaves its speed nil.
func (db *DB) GetTrafficSpeedKPI(ctx context.Context) (*models.TrafficSpeedKPI, error) {
	query := db.unionByYear(db.trafficReadings(), "AVG(speed)::DOUBLE AS avg_speed")

	kpi := &models.TrafficSpeedKPI{}
	err := db.queryAndScan(ctx, "traffic_speed_kpi", query, nil, func(rows *sql.Rows) error {
		var year int
		var speed sql.NullFloat64
		if err := rows.Scan(&year, &speed); err != nil {
			return err
		}
		switch year {
		case models.Year2019:
			kpi.Speed2019 = nullFloatPtr(speed)
		case models.Year2023:
			kpi.Speed2023 = nullFloatPtr(speed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return kpi, nil
}
