// CommutePulse - Transportation Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/commutepulse

package database

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/tomtom215/commutepulse/internal/models"
)

// OtherLabel is the label for codes missing from a lookup.
const OtherLabel = "Other"

// codeLookup maps coded integer fields to display labels.
type codeLookup map[int]string

// PaymentTypes is the NYC TLC payment_type lookup.
var PaymentTypes = codeLookup{
	1: "Credit card",
	2: "Cash",
	3: "No charge",
	4: "Dispute",
	5: "Unknown",
	6: "Voided trip",
}

// Vendors is the NYC TLC VendorID lookup.
var Vendors = codeLookup{
	1: "Creative Mobile Technologies",
	2: "Curb Mobility",
	6: "Myle Technologies",
	7: "Helix",
}

// caseSQL renders the lookup as a CASE expression over column. NULL and
// unmapped codes fall through to OtherLabel.
func (l codeLookup) caseSQL(column string) string {
	codes := make([]int, 0, len(l))
	for code := range l {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	var b strings.Builder
	fmt.Fprintf(&b, "CASE TRY_CAST(%s AS BIGINT)", column)
	for _, code := range codes {
		fmt.Fprintf(&b, " WHEN %d THEN %s", code, quoteLiteral(l[code]))
	}
	fmt.Fprintf(&b, " ELSE %s END", quoteLiteral(OtherLabel))
	return b.String()
}

// GetPaymentBreakdown counts NYC trips per (year, payment type label).
func (db *DB) GetPaymentBreakdown(ctx context.Context, years []int) ([]models.CategoryCount, error) {
	return db.getCategoryBreakdown(ctx, "nyc_payment", "payment_type", PaymentTypes, years)
}

// GetVendorBreakdown counts NYC trips per (year, vendor label).
func (db *DB) GetVendorBreakdown(ctx context.Context, years []int) ([]models.CategoryCount, error) {
	return db.getCategoryBreakdown(ctx, "nyc_vendor", "VendorID", Vendors, years)
}

func (db *DB) getCategoryBreakdown(ctx context.Context, operation, column string, lookup codeLookup, years []int) ([]models.CategoryCount, error) {
	yearCond, args, ok := buildYearCondition(years)
	if !ok {
		return []models.CategoryCount{}, nil
	}

	query := fmt.Sprintf(`
		WITH base AS (
		%s
		)
		SELECT year, %s AS label, COUNT(*) AS trips
		FROM base
		WHERE %s
		GROUP BY 1, 2
		ORDER BY 1, 3 DESC, 2`,
		db.unionByYear(db.nycTrips(), column+" AS code"), lookup.caseSQL("code"), yearCond)

	results := make([]models.CategoryCount, 0)
	err := db.queryAndScan(ctx, operation, query, args, func(rows *sql.Rows) error {
		var r models.CategoryCount
		if err := rows.Scan(&r.Year, &r.Label, &r.Trips); err != nil {
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
