package models

import "time"

// EntryLog is one student scan event. EntryDate is the local calendar
// day of EntryTime; the store enforces UNIQUE (student_id, entry_date)
// so a student can enter at most once per day.
type EntryLog struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	EntryTime time.Time `db:"entry_time" json:"entryTime"`
	EntryDate time.Time `db:"entry_date" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// EntryLogRecord extends the log with directory metadata for admin views.
type EntryLogRecord struct {
	EntryLog
	StudentCode string `db:"student_code" json:"studentId"`
	StudentName string `db:"student_name" json:"name"`
	Department  string `db:"department" json:"department"`
}

// EntryLogFilter defines admin log listing filters.
type EntryLogFilter struct {
	From       *time.Time
	To         *time.Time
	StudentID  string
	Department string
}
