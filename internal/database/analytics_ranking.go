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

// GetTopStations ranks CTA L stations by total recorded entries and returns
// the daily entries of the top n stations only. A ranked station with no dated
// entries keeps its rank and contributes no daily points.
//
// Ties on total rides are broken by station name, so the top-n set is always
// a prefix of the top-m set for n < m.
func (db *DB) GetTopStations(ctx context.Context, n int) (*models.TopStations, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top-N must be positive, got %d", n)
	}

	cta := db.table(db.tables.CTAStationEntries)
	query := fmt.Sprintf(`
		WITH agg AS (
			SELECT stationname, SUM(rides)::BIGINT AS total_rides
			FROM %[1]s
			WHERE stationname IS NOT NULL
			GROUP BY 1
		),
		top AS (
			SELECT stationname, total_rides
			FROM agg
			ORDER BY total_rides DESC, stationname
			LIMIT %[2]d
		)
		SELECT top.stationname, top.total_rides, t.date::DATE AS date, COALESCE(t.rides, 0)::BIGINT AS rides
		FROM top
		LEFT JOIN %[1]s t ON t.stationname = top.stationname AND t.date IS NOT NULL
		ORDER BY top.total_rides DESC, top.stationname, date`,
		cta, n)

	result := &models.TopStations{
		Ranking: make([]models.StationRank, 0, n),
		Daily:   make([]models.StationDailyEntry, 0),
	}
	err := db.queryAndScan(ctx, "cta_top_stations", query, nil, func(rows *sql.Rows) error {
		var entry models.StationDailyEntry
		var total int64
		var date sql.NullTime
		if err := rows.Scan(&entry.Station, &total, &date, &entry.Rides); err != nil {
			return err
		}
		// Rows arrive grouped by station in ranking order
		if len(result.Ranking) == 0 || result.Ranking[len(result.Ranking)-1].Station != entry.Station {
			result.Ranking = append(result.Ranking, models.StationRank{Station: entry.Station, TotalRides: total})
		}
		if date.Valid {
			entry.Date = date.Time
			result.Daily = append(result.Daily, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
