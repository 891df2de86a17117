package models

import "time"

// TemplateStyles lists the supported card template styles.
var TemplateStyles = []string{"modern-glass", "minimal-clean", "dark-professional", "hospital-blue"}

// CardTheme is the single configuration object describing pass/card
// rendering. Consumed by the rendering client; the API only stores it.
type CardTheme struct {
	ID                  string    `db:"id" json:"id"`
	PrimaryColor        string    `db:"primary_color" json:"primaryColor"`
	SecondaryColor      string    `db:"secondary_color" json:"secondaryColor"`
	Gradient            string    `db:"gradient" json:"gradient"`
	TextColor           string    `db:"text_color" json:"textColor"`
	BorderRadius        int       `db:"border_radius" json:"borderRadius"`
	FontFamily          string    `db:"font_family" json:"fontFamily"`
	LogoURL             string    `db:"logo_url" json:"logoUrl"`
	TemplateStyle       string    `db:"template_style" json:"templateStyle"`
	AutoPrintOnCheckIn  bool      `db:"auto_print_on_check_in" json:"autoPrintOnCheckIn"`
	PlaySoundOnPrint    bool      `db:"play_sound_on_print" json:"playSoundOnPrint"`
	EnablePhotoOnCard   bool      `db:"enable_photo_on_card" json:"enablePhotoOnCard"`
	EnableBackSidePrint bool      `db:"enable_back_side_print" json:"enableBackSidePrint"`
	InstituteName       string    `db:"institute_name" json:"instituteName"`
	InstituteAddress    string    `db:"institute_address" json:"instituteAddress"`
	EmergencyContact    string    `db:"emergency_contact" json:"emergencyContact"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultCardTheme returns the theme used until an admin customises it.
func DefaultCardTheme() CardTheme {
	return CardTheme{
		PrimaryColor:        "#7c3aed",
		SecondaryColor:      "#5b21b6",
		Gradient:            "linear-gradient(135deg, #7c3aed 0%, #5b21b6 100%)",
		TextColor:           "#1e293b",
		BorderRadius:        16,
		FontFamily:          "Inter, sans-serif",
		TemplateStyle:       "modern-glass",
		AutoPrintOnCheckIn:  true,
		PlaySoundOnPrint:    true,
		EnableBackSidePrint: true,
		InstituteName:       "Institute of Health Sciences",
		InstituteAddress:    "Address line here",
		EmergencyContact:    "Emergency: 112",
	}
}
