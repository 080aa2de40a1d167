package models

import (
	"database/sql"
	"time"
)

// Question is a row of the questions table. Difficulty holds the storage label
// (Easy, Medium or Hard).
type Question struct {
	ID              string         `db:"id"`
	Question        string         `db:"question"`
	Options         StringSlice    `db:"options"`
	CorrectAnswer   int            `db:"correct_answer"`
	Explanation     sql.NullString `db:"explanation"`
	Hint            sql.NullString `db:"hint"`
	Category        string         `db:"category"`
	Difficulty      string         `db:"difficulty"`
	Reasoning       sql.NullString `db:"reasoning"`
	ComplexityScore int            `db:"complexity_score"`
	SourcePDF       string         `db:"source_pdf"`
	CreatedAt       time.Time      `db:"created_at"`
}
