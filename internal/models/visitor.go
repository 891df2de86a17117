package models

import "time"

// VisitorTypes is the fixed set of visitor categories.
var VisitorTypes = []string{"Guest", "Parent", "Vendor", "Student", "Staff", "Contractor", "Other"}

// DefaultVisitorType is assumed when check-in omits the type.
const DefaultVisitorType = "Guest"

// ValidVisitorType reports whether the type is a known value.
func ValidVisitorType(visitorType string) bool {
	for _, t := range VisitorTypes {
		if t == visitorType {
			return true
		}
	}
	return false
}

// Visitor is a visit record, not a persistent identity. A null
// CheckOutTime means the visitor is still inside. TokenNumber is the
// daily-reset sequence (V-001, ...) scoped by VisitDate.
type Visitor struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	CNIC         string     `db:"cnic" json:"cnic"`
	Phone        string     `db:"phone" json:"phone"`
	Purpose      string     `db:"purpose" json:"purpose"`
	PersonToMeet string     `db:"person_to_meet" json:"personToMeet"`
	VisitorType  string     `db:"visitor_type" json:"visitorType"`
	CheckInTime  time.Time  `db:"check_in_time" json:"checkInTime"`
	CheckOutTime *time.Time `db:"check_out_time" json:"checkOutTime"`
	PassID       string     `db:"pass_id" json:"passId"`
	QRCodeValue  string     `db:"qr_code_value" json:"qrCodeValue"`
	CardPrinted  bool       `db:"card_printed" json:"cardPrinted"`
	TokenNumber  string     `db:"token_number" json:"tokenNumber"`
	VisitDate    time.Time  `db:"visit_date" json:"visitDate"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// VisitorFilter captures admin listing filters.
type VisitorFilter struct {
	From   *time.Time
	To     *time.Time
	Search string
}
