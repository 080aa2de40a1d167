// Package repository implements the domain repositories on sqlx. Queries are written
// with '?' placeholders and rebound per driver; column aliases are quoted so Oracle
// returns lower-case names.
package repository

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000

	// GlobalStatsID is the single row of user_stats.
	GlobalStatsID = "global"
)

func isOracle(db *sqlx.DB) bool {
	return strings.EqualFold(db.DriverName(), "oracle")
}

// randomOrder is the ORDER BY expression for a random sample.
func randomOrder(db *sqlx.DB) string {
	if isOracle(db) {
		return "DBMS_RANDOM.VALUE"
	}
	return "RANDOM()"
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return min(limit, maxListLimit)
}
