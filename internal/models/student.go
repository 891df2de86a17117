package models

import "time"

// Departments is the fixed set of departments students belong to.
// Registration also accepts departments outside this list; they get a
// derived ID code instead of a mapped one.
var Departments = []string{"Radiology", "Cardiology", "MLT", "Emergency", "Dental", "Surgical", "Optometry"}

// Student is an identity record in the directory. StudentID follows the
// IHS-<DEPTCODE>-<NNN> format and QRCodeValue defaults to the student ID.
type Student struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"studentId"`
	Name        string    `db:"name" json:"name"`
	Department  string    `db:"department" json:"department"`
	QRCodeValue string    `db:"qr_code_value" json:"qrCodeValue"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter captures search parameters for listing students.
type StudentFilter struct {
	Search string
}

// StudentImportRow is the normalized shape of one bulk-import row.
// Format-specific key casings are folded into it before the row reaches
// the registration path.
type StudentImportRow struct {
	StudentID   string `json:"studentId"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	QRCodeValue string `json:"qrCodeValue"`
}

// BulkImportResult summarises a bulk student import. Rows are skipped
// individually; the import never fails wholesale.
type BulkImportResult struct {
	Created        int               `json:"created"`
	Skipped        int               `json:"skipped"`
	Total          int               `json:"total"`
	CreatedIDs     []string          `json:"createdIds"`
	SkippedDetails []SkippedImportRow `json:"skippedDetails"`
}

// SkippedImportRow records a rejected import row with the reason.
type SkippedImportRow struct {
	StudentImportRow
	Reason string `json:"reason"`
}
