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

// GetTrafficSpeedByHour averages Chicago traffic speed per (year, hour of
// day), a congestion proxy. Readings without a time or speed are ignored.
func (db *DB) GetTrafficSpeedByHour(ctx context.Context, years []int) ([]models.HourlySpeed, error) {
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.HourlySpeed{}, nil
	}

	query := fmt.Sprintf(`
		WITH unioned AS (
		%s
		)
		SELECT year, EXTRACT(hour FROM "time")::INTEGER AS hour, AVG(speed)::DOUBLE AS avg_speed
		FROM unioned
		WHERE "time" IS NOT NULL AND speed IS NOT NULL AND %s
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		db.unionByYear(db.trafficReadings(), `"time", speed`), yearCond)

	results := make([]models.HourlySpeed, 0, 48)
	err := db.queryAndScan(ctx, "traffic_speed_hourly", query, args, func(rows *sql.Rows) error {
		var r models.HourlySpeed
		if err := rows.Scan(&r.Year, &r.Hour, &r.AvgSpeed); err != nil {
			return err
		}
		results = append(results, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
