package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

const themeColumns = `id, primary_color, secondary_color, gradient, text_color, border_radius, font_family,
        logo_url, template_style, auto_print_on_check_in, play_sound_on_print, enable_photo_on_card,
        enable_back_side_print, institute_name, institute_address, emergency_contact, created_at, updated_at`

// ThemeRepository persists the card theme configuration.
type ThemeRepository struct {
	db *sqlx.DB
}

// NewThemeRepository constructs a ThemeRepository.
func NewThemeRepository(db *sqlx.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

// Latest returns the most recently updated theme.
func (r *ThemeRepository) Latest(ctx context.Context) (*models.CardTheme, error) {
	query := fmt.Sprintf(`SELECT %s FROM card_themes ORDER BY updated_at DESC LIMIT 1`, themeColumns)
	var theme models.CardTheme
	if err := r.db.GetContext(ctx, &theme, query); err != nil {
		return nil, err
	}
	return &theme, nil
}

// Create inserts a theme row.
func (r *ThemeRepository) Create(ctx context.Context, theme *models.CardTheme) error {
	if theme.ID == "" {
		theme.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if theme.CreatedAt.IsZero() {
		theme.CreatedAt = now
	}
	theme.UpdatedAt = now
	const query = `INSERT INTO card_themes (id, primary_color, secondary_color, gradient, text_color, border_radius,
        font_family, logo_url, template_style, auto_print_on_check_in, play_sound_on_print, enable_photo_on_card,
        enable_back_side_print, institute_name, institute_address, emergency_contact, created_at, updated_at)
        VALUES (:id, :primary_color, :secondary_color, :gradient, :text_color, :border_radius,
        :font_family, :logo_url, :template_style, :auto_print_on_check_in, :play_sound_on_print, :enable_photo_on_card,
        :enable_back_side_print, :institute_name, :institute_address, :emergency_contact, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, theme); err != nil {
		return fmt.Errorf("create theme: %w", err)
	}
	return nil
}

// Update rewrites the theme row.
func (r *ThemeRepository) Update(ctx context.Context, theme *models.CardTheme) error {
	theme.UpdatedAt = time.Now().UTC()
	const query = `UPDATE card_themes SET primary_color = :primary_color, secondary_color = :secondary_color,
        gradient = :gradient, text_color = :text_color, border_radius = :border_radius, font_family = :font_family,
        logo_url = :logo_url, template_style = :template_style, auto_print_on_check_in = :auto_print_on_check_in,
        play_sound_on_print = :play_sound_on_print, enable_photo_on_card = :enable_photo_on_card,
        enable_back_side_print = :enable_back_side_print, institute_name = :institute_name,
        institute_address = :institute_address, emergency_contact = :emergency_contact, updated_at = :updated_at
        WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, theme); err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	return nil
}
