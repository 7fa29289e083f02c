// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/commutepulse/internal/models"
)

// yearSource binds one reference year to its source table.
type yearSource struct {
	Year  int
	Table string
}

// nycTrips and chicagoTrips return the per-year trip tables of a city.
func (db *DB) nycTrips() []yearSource {
	return []yearSource{
		{Year: models.Year2019, Table: db.tables.NYCTaxi2019},
		{Year: models.Year2023, Table: db.tables.NYCTaxi2023},
	}
}

func (db *DB) chicagoTrips() []yearSource {
	return []yearSource{
		{Year: models.Year2019, Table: db.tables.ChicagoTaxi2019},
		{Year: models.Year2023, Table: db.tables.ChicagoTaxi2023},
	}
}

func (db *DB) trafficReadings() []yearSource {
	return []yearSource{
		{Year: models.Year2019, Table: db.tables.ChicagoTraffic2019},
		{Year: models.Year2023, Table: db.tables.ChicagoTraffic2023},
	}
}

// cityTrips resolves a city to its trip tables and pickup timestamp expression.
func (db *DB) cityTrips(city models.City) ([]yearSource, string, error) {
	switch city {
	case models.CityNYC:
		return db.nycTrips(), "CAST(tpep_pickup_datetime AS TIMESTAMP)", nil
	case models.CityChicago:
		return db.chicagoTrips(), "trip_start_timestamp", nil
	default:
		return nil, "", fmt.Errorf("unknown city %q", string(city))
	}
}

// unionByYear builds a UNION ALL over the per-year tables, tagging each row
// with its year. columns is the select list after the year column.
//
//	SELECT 2019 AS year, <columns> FROM alias.main."t2019"
//	UNION ALL
//	SELECT 2023 AS year, <columns> FROM alias.main."t2023"
func (db *DB) unionByYear(sources []yearSource, columns string) string {
	parts := make([]string, len(sources))
	for i, src := range sources {
		parts[i] = fmt.Sprintf("SELECT %d AS year, %s FROM %s", src.Year, columns, db.table(src.Table))
	}
	return strings.Join(parts, "\n\t\tUNION ALL\n\t\t")
}

// buildYearCondition returns "year IN (?, ...)" and its args for the selected
// years, deduplicated and sorted. ok is false when no year is selected; the
// caller then skips the query and reports an empty result.
func buildYearCondition(years []int) (clause string, args []interface{}, ok bool) {
	selected := slices.Clone(years)
	slices.Sort(selected)
	selected = slices.Compact(selected)
	if len(selected) == 0 {
		return "", nil, false
	}

	placeholders := make([]string, len(selected))
	args = make([]interface{}, len(selected))
	for i, year := range selected {
		placeholders[i] = "?"
		args[i] = year
	}
	return fmt.Sprintf("year IN (%s)", strings.Join(placeholders, ", ")), args, true
}
