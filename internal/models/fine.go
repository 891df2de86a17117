package models

import "time"

// FineTypes is the fixed set of disciplinary fine categories.
var FineTypes = []string{"No Uniform", "Late Entry", "No ID Card", "Misconduct"}

// ValidFineType reports whether the fine type is a known value.
func ValidFineType(fineType string) bool {
	for _, t := range FineTypes {
		if t == fineType {
			return true
		}
	}
	return false
}

// Fine is an append-only disciplinary record. Name and Department are
// snapshots of the student at fine time and never updated afterwards,
// so the record stays historically accurate.
type Fine struct {
	ID         string    `db:"id" json:"id"`
	StudentID  string    `db:"student_id" json:"studentId"`
	Name       string    `db:"name" json:"name"`
	Department string    `db:"department" json:"department"`
	FineType   string    `db:"fine_type" json:"fineType"`
	Amount     float64   `db:"amount" json:"amount"`
	Reason     string    `db:"reason" json:"reason"`
	Date       time.Time `db:"date" json:"date"`
	AddedBy    string    `db:"added_by" json:"addedBy"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FineFilter captures fine listing filters. StudentID matches as a
// case-insensitive substring, not exact.
type FineFilter struct {
	From       *time.Time
	To         *time.Time
	Department string
	StudentID  string
}
