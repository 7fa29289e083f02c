// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"context"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/commutepulse/internal/models"
)

// yearSubsets enumerates every subset of the reference years.
var yearSubsets = [][]int{
	{},
	{models.Year2019},
	{models.Year2023},
	{models.Year2019, models.Year2023},
}

// fixtureTotals are the trip counts seeded by setupTestDB.
var fixtureTotals = map[models.City]map[int]int64{
	models.CityNYC:     {models.Year2019: 4, models.Year2023: 6},
	models.CityChicago: {models.Year2019: 100, models.Year2023: 150},
}

func assertYears(t *testing.T, selected []int, year int) {
	t.Helper()
	if !slices.Contains(selected, year) {
		t.Errorf("row for year %d returned, selection was %v", year, selected)
	}
}

func assertTotals(t *testing.T, city models.City, selected []int, sums map[int]int64) {
	t.Helper()
	for _, year := range selected {
		if want := fixtureTotals[city][year]; sums[year] != want {
			t.Errorf("%s %d: summed buckets = %d, want %d", city, year, sums[year], want)
		}
	}
}

func TestGetRecoveryKPI(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, city := range models.Cities {
		kpi, err := db.GetRecoveryKPI(ctx, city)
		if err != nil {
			t.Fatalf("GetRecoveryKPI(%s) error: %v", city, err)
		}
		if kpi.Trips2019 != fixtureTotals[city][models.Year2019] || kpi.Trips2023 != fixtureTotals[city][models.Year2023] {
			t.Errorf("%s counts = %d/%d", city, kpi.Trips2019, kpi.Trips2023)
		}
		if kpi.RecoveryPct == nil || math.Abs(*kpi.RecoveryPct-150.0) > 1e-9 {
			t.Errorf("%s recovery = %v, want 150.0", city, kpi.RecoveryPct)
		}
		if got := kpi.RecoveryLabel(); got != "150.0% vs 2019" {
			t.Errorf("%s label = %q", city, got)
		}
	}
}

func TestGetRecoveryKPI_ZeroBaseline(t *testing.T) {
	db := setupEmptyDB(t)
	db.mustExec(t, `INSERT INTO %s VALUES ('2023-05-01 10:00:00', 161, 1, 2, 1.0, 9.0)`, db.tables.NYCTaxi2023)

	kpi, err := db.GetRecoveryKPI(context.Background(), models.CityNYC)
	if err != nil {
		t.Fatalf("GetRecoveryKPI() error: %v", err)
	}
	if kpi.Trips2019 != 0 || kpi.Trips2023 != 1 {
		t.Errorf("counts = %d/%d, want 0/1", kpi.Trips2019, kpi.Trips2023)
	}
	if kpi.RecoveryPct != nil {
		t.Errorf("recovery = %v, want undefined", *kpi.RecoveryPct)
	}
	if kpi.RecoveryLabel() != models.RecoveryUndefined {
		t.Errorf("label = %q, want %q", kpi.RecoveryLabel(), models.RecoveryUndefined)
	}
}

func TestGetCTATotalRides(t *testing.T) {
	db := setupTestDB(t)

	total, ok, err := db.GetCTATotalRides(context.Background())
	if err != nil {
		t.Fatalf("GetCTATotalRides() error: %v", err)
	}
	if !ok || total != 9075 {
		t.Errorf("total = %d (ok=%v), want 9075", total, ok)
	}
}

func TestGetTrafficSpeedKPI(t *testing.T) {
	db := setupTestDB(t)

	kpi, err := db.GetTrafficSpeedKPI(context.Background())
	if err != nil {
		t.Fatalf("GetTrafficSpeedKPI() error: %v", err)
	}
	if !kpi.Complete() {
		t.Fatal("expected both years")
	}
	if *kpi.Speed2019 != 20 || *kpi.Speed2023 != 15 {
		t.Errorf("speeds = %v/%v, want 20/15", *kpi.Speed2019, *kpi.Speed2023)
	}
	if kpi.Delta() != -5 {
		t.Errorf("Delta() = %v, want -5", kpi.Delta())
	}
}

func TestGetTripTrend_YearsAndTotals(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, city := range models.Cities {
		for _, granularity := range models.Granularities {
			for _, years := range yearSubsets {
				rows, err := db.GetTripTrend(ctx, city, years, granularity)
				if err != nil {
					t.Fatalf("GetTripTrend(%s, %v, %s) error: %v", city, years, granularity, err)
				}
				if len(years) == 0 && len(rows) != 0 {
					t.Errorf("empty selection returned %d rows", len(rows))
				}

				sums := map[int]int64{}
				for _, r := range rows {
					assertYears(t, years, r.Year)
					sums[r.Year] += r.Trips
				}
				assertTotals(t, city, years, sums)
			}
		}
	}
}

func TestGetTripTrend_MonthlyBuckets(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.GetTripTrend(context.Background(), models.CityNYC, []int{models.Year2019}, models.GranularityMonthly)
	if err != nil {
		t.Fatalf("GetTripTrend() error: %v", err)
	}
	want := []models.YearBucketCount{
		{Year: 2019, Bucket: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), Trips: 2},
		{Year: 2019, Bucket: time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC), Trips: 1},
		{Year: 2019, Undated: true, Trips: 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d buckets, want %d: %+v", len(rows), len(want), rows)
	}
	for i := range want {
		if !rows[i].Bucket.Equal(want[i].Bucket) || rows[i].Undated != want[i].Undated || rows[i].Trips != want[i].Trips {
			t.Errorf("bucket %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestGetTripTrend_InvalidGranularity(t *testing.T) {
	db := setupEmptyDB(t)

	if _, err := db.GetTripTrend(context.Background(), models.CityNYC, []int{2019}, "Yearly"); err == nil {
		t.Error("expected error for unknown granularity")
	}
}

func TestGetHourlyDemand(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, city := range models.Cities {
		for _, years := range yearSubsets {
			rows, err := db.GetHourlyDemand(ctx, city, years)
			if err != nil {
				t.Fatalf("GetHourlyDemand(%s, %v) error: %v", city, years, err)
			}
			sums := map[int]int64{}
			for _, r := range rows {
				assertYears(t, years, r.Year)
				if r.Undated && r.Hour != -1 {
					t.Errorf("undated row has hour %d", r.Hour)
				}
				if !r.Undated && (r.Hour < 0 || r.Hour > 23) {
					t.Errorf("hour %d out of range", r.Hour)
				}
				sums[r.Year] += r.Trips
			}
			assertTotals(t, city, years, sums)
		}
	}
}

func TestGetWeekdayDemand(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, city := range models.Cities {
		for _, years := range yearSubsets {
			rows, err := db.GetWeekdayDemand(ctx, city, years)
			if err != nil {
				t.Fatalf("GetWeekdayDemand(%s, %v) error: %v", city, years, err)
			}
			sums := map[int]int64{}
			for _, r := range rows {
				assertYears(t, years, r.Year)
				if r.Undated && r.Label != models.UndatedLabel {
					t.Errorf("undated row labelled %q", r.Label)
				}
				if !r.Undated && (r.Weekday < 1 || r.Weekday > 7) {
					t.Errorf("weekday %d out of range", r.Weekday)
				}
				sums[r.Year] += r.Trips
			}
			assertTotals(t, city, years, sums)
		}
	}

	// 2019-01-07 was a Monday
	rows, err := db.GetWeekdayDemand(ctx, models.CityNYC, []int{models.Year2019})
	if err != nil {
		t.Fatalf("GetWeekdayDemand() error: %v", err)
	}
	if len(rows) == 0 || rows[0].Weekday != 1 || rows[0].Label != "Mon" || rows[0].Trips != 2 {
		t.Errorf("first row = %+v, want Mon with 2 trips", rows)
	}
}

func TestTemporalBuckets_MatchTripCounts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	years := models.ReferenceYears

	for _, city := range models.Cities {
		kpi, err := db.GetRecoveryKPI(ctx, city)
		if err != nil {
			t.Fatalf("GetRecoveryKPI(%s) error: %v", city, err)
		}
		flat := map[int]int64{models.Year2019: kpi.Trips2019, models.Year2023: kpi.Trips2023}

		trend, err := db.GetTripTrend(ctx, city, years, models.GranularityDaily)
		if err != nil {
			t.Fatalf("GetTripTrend(%s) error: %v", city, err)
		}
		hourly, err := db.GetHourlyDemand(ctx, city, years)
		if err != nil {
			t.Fatalf("GetHourlyDemand(%s) error: %v", city, err)
		}
		weekday, err := db.GetWeekdayDemand(ctx, city, years)
		if err != nil {
			t.Fatalf("GetWeekdayDemand(%s) error: %v", city, err)
		}

		sums := map[string]map[int]int64{"trend": {}, "hourly": {}, "weekday": {}}
		undated := map[string]int64{}
		for _, r := range trend {
			sums["trend"][r.Year] += r.Trips
			if r.Undated {
				undated["trend"] += r.Trips
			}
		}
		for _, r := range hourly {
			sums["hourly"][r.Year] += r.Trips
			if r.Undated {
				undated["hourly"] += r.Trips
			}
		}
		for _, r := range weekday {
			sums["weekday"][r.Year] += r.Trips
			if r.Undated {
				undated["weekday"] += r.Trips
			}
		}

		for name, byYear := range sums {
			for year, want := range flat {
				if byYear[year] != want {
					t.Errorf("%s %s %d: summed buckets = %d, flat count = %d", city, name, year, byYear[year], want)
				}
			}
			if undated[name] != 1 {
				t.Errorf("%s %s: undated trips = %d, want 1", city, name, undated[name])
			}
		}

		// The undated bucket sorts after every dated bucket
		if last := trend[len(trend)-1]; !last.Undated || !last.Bucket.IsZero() {
			t.Errorf("%s trend: last bucket = %+v, want the undated bucket", city, last)
		}
	}
}

func TestGetTrafficSpeedByHour(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.GetTrafficSpeedByHour(context.Background(), []int{models.Year2019, models.Year2023})
	if err != nil {
		t.Fatalf("GetTrafficSpeedByHour() error: %v", err)
	}
	want := map[[2]int]float64{
		{2019, 8}: 25, {2019, 17}: 10,
		{2023, 8}: 18, {2023, 17}: 12,
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for _, r := range rows {
		if w := want[[2]int{r.Year, r.Hour}]; r.AvgSpeed != w {
			t.Errorf("%d h%d = %v, want %v", r.Year, r.Hour, r.AvgSpeed, w)
		}
	}

	rows, err = db.GetTrafficSpeedByHour(context.Background(), []int{models.Year2023})
	if err != nil {
		t.Fatalf("GetTrafficSpeedByHour() error: %v", err)
	}
	for _, r := range rows {
		assertYears(t, []int{models.Year2023}, r.Year)
	}
}

func TestGetTopStations_Subset(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	top8, err := db.GetTopStations(ctx, 8)
	if err != nil {
		t.Fatalf("GetTopStations(8) error: %v", err)
	}
	top20, err := db.GetTopStations(ctx, 20)
	if err != nil {
		t.Fatalf("GetTopStations(20) error: %v", err)
	}

	if len(top8.Ranking) != 8 || len(top20.Ranking) != 20 {
		t.Fatalf("ranking sizes = %d/%d, want 8/20", len(top8.Ranking), len(top20.Ranking))
	}
	for _, ranking := range [][]models.StationRank{top8.Ranking, top20.Ranking} {
		for i := 1; i < len(ranking); i++ {
			if ranking[i].TotalRides > ranking[i-1].TotalRides {
				t.Errorf("ranking not descending at %d: %+v", i, ranking)
			}
		}
	}
	for i, rank := range top8.Ranking {
		if top20.Ranking[i] != rank {
			t.Errorf("top-8 entry %d (%+v) is not in the top-20 prefix", i, rank)
		}
	}
	if top8.Ranking[0].Station != "Station 24" || top8.Ranking[0].TotalRides != 723 {
		t.Errorf("leader = %+v, want Station 24 with 723", top8.Ranking[0])
	}

	// Daily rows exist only for ranked stations
	ranked := map[string]bool{}
	for _, r := range top8.Ranking {
		ranked[r.Station] = true
	}
	if len(top8.Daily) != 8*3 {
		t.Errorf("daily rows = %d, want 24", len(top8.Daily))
	}
	for _, d := range top8.Daily {
		if !ranked[d.Station] {
			t.Errorf("daily row for unranked station %s", d.Station)
		}
	}
}

func TestGetTopStations_UndatedLeaderKeepsRank(t *testing.T) {
	db := setupTestDB(t)
	db.mustExec(t, `INSERT INTO %s VALUES ('Busiest', NULL, 100000)`, db.tables.CTAStationEntries)

	top, err := db.GetTopStations(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetTopStations(3) error: %v", err)
	}
	if len(top.Ranking) != 3 {
		t.Fatalf("ranking = %+v, want 3 stations", top.Ranking)
	}
	want := []models.StationRank{
		{Station: "Busiest", TotalRides: 100000},
		{Station: "Station 24", TotalRides: 723},
		{Station: "Station 23", TotalRides: 693},
	}
	for i := range want {
		if top.Ranking[i] != want[i] {
			t.Errorf("rank %d = %+v, want %+v", i+1, top.Ranking[i], want[i])
		}
	}
	if len(top.Daily) != 2*3 {
		t.Errorf("daily rows = %d, want 6", len(top.Daily))
	}
	for _, d := range top.Daily {
		if d.Station == "Busiest" {
			t.Errorf("undated station produced a daily point: %+v", d)
		}
	}
}

func TestGetTopStations_InvalidN(t *testing.T) {
	db := setupEmptyDB(t)
	if _, err := db.GetTopStations(context.Background(), 0); err == nil {
		t.Error("expected error for N=0")
	}
}

func TestGetPickupHotspots(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rows, err := db.GetPickupHotspots(ctx, []int{models.Year2019, models.Year2023}, 50)
	if err != nil {
		t.Fatalf("GetPickupHotspots() error: %v", err)
	}
	if len(rows) != 6 {
		t.Fatalf("got %d hotspots, want 6: %+v", len(rows), rows)
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Year < prev.Year || (cur.Year == prev.Year && cur.Trips > prev.Trips) {
			t.Errorf("hotspots not ordered by year then trips at %d: %+v after %+v", i, cur, prev)
		}
	}

	var unknown *models.PickupHotspot
	for i := range rows {
		if rows[i].LocationID == 999 {
			unknown = &rows[i]
		}
		if rows[i].LocationID == 132 && rows[i].Zone != "JFK Airport" {
			t.Errorf("zone 132 = %q, want JFK Airport", rows[i].Zone)
		}
	}
	if unknown == nil || unknown.Borough != "Unknown" || unknown.Zone != "Unknown" {
		t.Errorf("location 999 should resolve to Unknown, got %+v", unknown)
	}

	limited, err := db.GetPickupHotspots(ctx, []int{models.Year2023}, 2)
	if err != nil {
		t.Fatalf("GetPickupHotspots() error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit 2 returned %d rows", len(limited))
	}
	for _, r := range limited {
		assertYears(t, []int{models.Year2023}, r.Year)
	}
}

func TestGetPickupHotspots_LimitFillsEarlierYearFirst(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.GetPickupHotspots(context.Background(), []int{models.Year2023, models.Year2019}, 3)
	if err != nil {
		t.Fatalf("GetPickupHotspots() error: %v", err)
	}
	want := []struct {
		year, location int
		trips          int64
	}{
		{2019, 161, 2},
		{2019, 237, 1},
		{2019, 999, 1},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(rows), len(want), rows)
	}
	for i, w := range want {
		if rows[i].Year != w.year || rows[i].LocationID != w.location || rows[i].Trips != w.trips {
			t.Errorf("row %d = %+v, want %d/%d/%d", i, rows[i], w.year, w.location, w.trips)
		}
	}
}

func TestGetPickupPoints(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	points, err := db.GetPickupPoints(ctx, 5000)
	if err != nil {
		t.Fatalf("GetPickupPoints() error: %v", err)
	}
	if len(points) != 135 {
		t.Errorf("got %d points, want 135 (nulls excluded)", len(points))
	}

	points, err = db.GetPickupPoints(ctx, 10)
	if err != nil {
		t.Fatalf("GetPickupPoints() error: %v", err)
	}
	if len(points) != 10 {
		t.Errorf("limit 10 returned %d points", len(points))
	}
}

func TestCategoryBreakdowns(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	queries := map[string]func(context.Context, []int) ([]models.CategoryCount, error){
		"payment": db.GetPaymentBreakdown,
		"vendor":  db.GetVendorBreakdown,
	}
	for name, query := range queries {
		for _, years := range yearSubsets {
			rows, err := query(ctx, years)
			if err != nil {
				t.Fatalf("%s(%v) error: %v", name, years, err)
			}
			sums := map[int]int64{}
			for _, r := range rows {
				assertYears(t, years, r.Year)
				sums[r.Year] += r.Trips
			}
			assertTotals(t, models.CityNYC, years, sums)
		}
	}

	payments, err := db.GetPaymentBreakdown(ctx, []int{models.Year2019})
	if err != nil {
		t.Fatalf("GetPaymentBreakdown() error: %v", err)
	}
	got := map[string]int64{}
	for _, r := range payments {
		got[r.Label] = r.Trips
	}
	// Code 9 and NULL are not in the lookup
	if got[OtherLabel] != 2 || got["Credit card"] != 1 || got["Cash"] != 1 {
		t.Errorf("2019 payments = %v", got)
	}

	vendors, err := db.GetVendorBreakdown(ctx, []int{models.Year2023})
	if err != nil {
		t.Fatalf("GetVendorBreakdown() error: %v", err)
	}
	got = map[string]int64{}
	for _, r := range vendors {
		got[r.Label] = r.Trips
	}
	if got["Curb Mobility"] != 3 || got["Myle Technologies"] != 1 || got["Helix"] != 1 || got["Creative Mobile Technologies"] != 1 {
		t.Errorf("2023 vendors = %v", got)
	}
}

func TestCodeLookupCaseSQL(t *testing.T) {
	sql := codeLookup{2: "B", 1: "A's"}.caseSQL("code")
	want := "CASE TRY_CAST(code AS BIGINT) WHEN 1 THEN 'A''s' WHEN 2 THEN 'B' ELSE 'Other' END"
	if sql != want {
		t.Errorf("caseSQL() = %s, want %s", sql, want)
	}
}

func TestGetFareSample(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		years   []int
		bound   int
		wantLen int
	}{
		{"both years, loose bound", []int{2019, 2023}, 2000, 5},
		{"2019 only", []int{2019}, 2000, 2},
		{"tight bound", []int{2019, 2023}, 2, 2},
		{"no years", []int{}, 2000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := db.GetFareSample(ctx, tt.years, tt.bound, 100)
			if err != nil {
				t.Fatalf("GetFareSample() error: %v", err)
			}
			if len(rows) != tt.wantLen {
				t.Errorf("got %d rows, want %d", len(rows), tt.wantLen)
			}
			if len(rows) > tt.bound {
				t.Errorf("sample of %d exceeds bound %d", len(rows), tt.bound)
			}
			for _, r := range rows {
				assertYears(t, tt.years, r.Year)
				if r.Distance <= 0 || r.Fare <= 0 || r.Fare >= 100 {
					t.Errorf("row outside bounds: %+v", r)
				}
			}
		})
	}
}

func TestEmptyTables_NoData(t *testing.T) {
	db := setupEmptyDB(t)
	ctx := context.Background()
	years := models.ReferenceYears

	if _, ok, err := db.GetCTATotalRides(ctx); err != nil || ok {
		t.Errorf("CTA total on empty table: ok=%v err=%v", ok, err)
	}
	if kpi, err := db.GetTrafficSpeedKPI(ctx); err != nil || kpi.Complete() {
		t.Errorf("traffic KPI on empty tables: %+v err=%v", kpi, err)
	}

	lengths := map[string]func() (int, error){
		"trend": func() (int, error) {
			r, err := db.GetTripTrend(ctx, models.CityChicago, years, models.GranularityMonthly)
			return len(r), err
		},
		"hourly": func() (int, error) {
			r, err := db.GetHourlyDemand(ctx, models.CityNYC, years)
			return len(r), err
		},
		"weekday": func() (int, error) {
			r, err := db.GetWeekdayDemand(ctx, models.CityNYC, years)
			return len(r), err
		},
		"speed": func() (int, error) {
			r, err := db.GetTrafficSpeedByHour(ctx, years)
			return len(r), err
		},
		"stations": func() (int, error) {
			r, err := db.GetTopStations(ctx, 8)
			if err != nil {
				return 0, err
			}
			return len(r.Ranking) + len(r.Daily), nil
		},
		"hotspots": func() (int, error) {
			r, err := db.GetPickupHotspots(ctx, years, 50)
			return len(r), err
		},
		"points": func() (int, error) {
			r, err := db.GetPickupPoints(ctx, 5000)
			return len(r), err
		},
		"payment": func() (int, error) {
			r, err := db.GetPaymentBreakdown(ctx, years)
			return len(r), err
		},
		"scatter": func() (int, error) {
			r, err := db.GetFareSample(ctx, years, 2000, 100)
			return len(r), err
		},
	}
	for name, fn := range lengths {
		n, err := fn()
		if err != nil {
			t.Errorf("%s: unexpected error on empty tables: %v", name, err)
		}
		if n != 0 {
			t.Errorf("%s: got %d rows from empty tables", name, n)
		}
	}
}

func TestSchemaMismatch_IsolatedToQuery(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	db.mustExec(t, `ALTER TABLE %s DROP COLUMN speed`, db.tables.ChicagoTraffic2023)

	_, err := db.GetTrafficSpeedByHour(ctx, models.ReferenceYears)
	if err == nil {
		t.Fatal("expected engine error for missing column")
	}
	if !strings.Contains(strings.ToLower(err.Error()), "speed") {
		t.Errorf("error should carry the engine message, got: %v", err)
	}

	if _, err := db.GetRecoveryKPI(ctx, models.CityChicago); err != nil {
		t.Errorf("unrelated query failed after schema mismatch: %v", err)
	}
}
