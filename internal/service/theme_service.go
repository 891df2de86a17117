package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type themeRepository interface {
	Latest(ctx context.Context) (*models.CardTheme, error)
	Create(ctx context.Context, theme *models.CardTheme) error
	Update(ctx context.Context, theme *models.CardTheme) error
}

// UpdateThemeRequest patches the stored card theme. Only non-nil fields
// are applied.
type UpdateThemeRequest struct {
	PrimaryColor        *string `json:"primaryColor"`
	SecondaryColor      *string `json:"secondaryColor"`
	Gradient            *string `json:"gradient"`
	TextColor           *string `json:"textColor"`
	BorderRadius        *int    `json:"borderRadius"`
	FontFamily          *string `json:"fontFamily"`
	LogoURL             *string `json:"logoUrl"`
	TemplateStyle       *string `json:"templateStyle"`
	AutoPrintOnCheckIn  *bool   `json:"autoPrintOnCheckIn"`
	PlaySoundOnPrint    *bool   `json:"playSoundOnPrint"`
	EnablePhotoOnCard   *bool   `json:"enablePhotoOnCard"`
	EnableBackSidePrint *bool   `json:"enableBackSidePrint"`
	InstituteName       *string `json:"instituteName"`
	InstituteAddress    *string `json:"instituteAddress"`
	EmergencyContact    *string `json:"emergencyContact"`
}

// ThemeService serves the card theme configuration. The theme is a
// singleton: the first read creates it with defaults.
type ThemeService struct {
	repo   themeRepository
	logger *zap.Logger
}

// NewThemeService constructs the theme service.
func NewThemeService(repo themeRepository, logger *zap.Logger) *ThemeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ThemeService{repo: repo, logger: logger}
}

// Get returns the current theme, creating the default on first use.
func (s *ThemeService) Get(ctx context.Context) (*models.CardTheme, error) {
	theme, err := s.repo.Latest(ctx)
	if err == nil {
		return theme, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load card theme")
	}

	created := models.DefaultCardTheme()
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create default card theme")
	}
	s.logger.Info("created default card theme", zap.String("id", created.ID))
	return &created, nil
}

// Update patches the theme with the supplied fields.
func (s *ThemeService) Update(ctx context.Context, req UpdateThemeRequest) (*models.CardTheme, error) {
	theme, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.TemplateStyle != nil {
		style := strings.TrimSpace(*req.TemplateStyle)
		if !validTemplateStyle(style) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown template style")
		}
		theme.TemplateStyle = style
	}
	if req.PrimaryColor != nil {
		theme.PrimaryColor = *req.PrimaryColor
	}
	if req.SecondaryColor != nil {
		theme.SecondaryColor = *req.SecondaryColor
	}
	if req.Gradient != nil {
		theme.Gradient = *req.Gradient
	}
	if req.TextColor != nil {
		theme.TextColor = *req.TextColor
	}
	if req.BorderRadius != nil {
		theme.BorderRadius = *req.BorderRadius
	}
	if req.FontFamily != nil {
		theme.FontFamily = *req.FontFamily
	}
	if req.LogoURL != nil {
		theme.LogoURL = *req.LogoURL
	}
	if req.AutoPrintOnCheckIn != nil {
		theme.AutoPrintOnCheckIn = *req.AutoPrintOnCheckIn
	}
	if req.PlaySoundOnPrint != nil {
		theme.PlaySoundOnPrint = *req.PlaySoundOnPrint
	}
	if req.EnablePhotoOnCard != nil {
		theme.EnablePhotoOnCard = *req.EnablePhotoOnCard
	}
	if req.EnableBackSidePrint != nil {
		theme.EnableBackSidePrint = *req.EnableBackSidePrint
	}
	if req.InstituteName != nil {
		theme.InstituteName = strings.TrimSpace(*req.InstituteName)
	}
	if req.InstituteAddress != nil {
		theme.InstituteAddress = *req.InstituteAddress
	}
	if req.EmergencyContact != nil {
		theme.EmergencyContact = *req.EmergencyContact
	}

	if err := s.repo.Update(ctx, theme); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update card theme")
	}
	return theme, nil
}

func validTemplateStyle(style string) bool {
	for _, s := range models.TemplateStyles {
		if s == style {
			return true
		}
	}
	return false
}
