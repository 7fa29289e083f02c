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

// GetFareSample draws a random sample of at most sampleSize NYC trips with
// trip_distance > 0 and 0 < fare_amount < maxFare for the selected years.
//
// USING SAMPLE is applied before WHERE in DuckDB, so the bounds are applied
// in a CTE and the sample is drawn from the filtered rows.
func (db *DB) GetFareSample(ctx context.Context, years []int, sampleSize int, maxFare float64) ([]models.FareSample, error) {
	if sampleSize <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", sampleSize)
	}
	if maxFare <= 0 {
		return nil, fmt.Errorf("max fare must be positive, got %v", maxFare)
	}
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.FareSample{}, nil
	}

	query := fmt.Sprintf(`
		WITH base AS (
		%s
		),
		filtered AS (
			SELECT year, trip_distance::DOUBLE AS trip_distance, fare_amount::DOUBLE AS fare_amount
			FROM base
			WHERE %s
				AND trip_distance IS NOT NULL AND fare_amount IS NOT NULL
				AND trip_distance > 0
				AND fare_amount > 0 AND fare_amount < ?
		)
		SELECT year, trip_distance, fare_amount
		FROM filtered
		USING SAMPLE reservoir(%d ROWS)`,
		db.unionByYear(db.nycTrips(), "trip_distance, fare_amount"), yearCond, sampleSize)
	args = append(args, maxFare)

	results := make([]models.FareSample, 0, sampleSize)
	err := db.queryAndScan(ctx, "nyc_fare_sample", query, args, func(rows *sql.Rows) error {
		var r models.FareSample
		if err := rows.Scan(&r.Year, &r.Distance, &r.Fare); err != nil {
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
