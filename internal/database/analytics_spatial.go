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

// unknownZone labels pickup locations missing from the zone lookup.
const unknownZone = "Unknown"

// GetPickupHotspots counts NYC trips per (year, pickup location) and resolves
// borough and zone names from the zone lookup table. Rows are ordered by year,
// then trips descending, and the limit applies to that order, so an earlier
// year fills the result first.
func (db *DB) GetPickupHotspots(ctx context.Context, years []int, limit int) ([]models.PickupHotspot, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("hotspot limit must be positive, got %d", limit)
	}
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.PickupHotspot{}, nil
	}

	query := fmt.Sprintf(`
		WITH base AS (
		%s
		),
		counts AS (
			SELECT year, location_id, COUNT(*) AS trips
			FROM base
			WHERE location_id IS NOT NULL AND %s
			GROUP BY 1, 2
			ORDER BY year, trips DESC, location_id
			LIMIT %d
		)
		SELECT
			c.year,
			c.location_id,
			COALESCE(z.Borough, '%[4]s') AS borough,
			COALESCE(z.Zone, '%[4]s') AS zone,
			c.trips
		FROM counts c
		LEFT JOIN %s z ON z.LocationID = c.location_id
		ORDER BY c.year, c.trips DESC, c.location_id`,
		db.unionByYear(db.nycTrips(), "PULocationID::INTEGER AS location_id"),
		yearCond, limit, unknownZone, db.table(db.tables.NYCZoneLookup))

	results := make([]models.PickupHotspot, 0, limit)
	err := db.queryAndScan(ctx, "nyc_hotspots", query, args, func(rows *sql.Rows) error {
		var r models.PickupHotspot
		if err := rows.Scan(&r.Year, &r.LocationID, &r.Borough, &r.Zone, &r.Trips); err != nil {
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

// GetPickupPoints returns up to limit Chicago 2023 pickup centroids with both
// coordinates present.
func (db *DB) GetPickupPoints(ctx context.Context, limit int) ([]models.PickupPoint, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("point limit must be positive, got %d", limit)
	}

	query := fmt.Sprintf(`
		SELECT pickup_centroid_latitude::DOUBLE AS lat, pickup_centroid_longitude::DOUBLE AS lon
		FROM %s
		WHERE pickup_centroid_latitude IS NOT NULL AND pickup_centroid_longitude IS NOT NULL
		LIMIT %d`,
		db.table(db.tables.ChicagoTaxi2023), limit)

	results := make([]models.PickupPoint, 0)
	err := db.queryAndScan(ctx, "chicago_points", query, nil, func(rows *sql.Rows) error {
		var p models.PickupPoint
		if err := rows.Scan(&p.Latitude, &p.Longitude); err != nil {
			return err
		}
		results = append(results, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
