package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type mockThemeRepo struct {
	theme   *models.CardTheme
	created bool
}

func (m *mockThemeRepo) Latest(ctx context.Context) (*models.CardTheme, error) {
	if m.theme == nil {
		return nil, sql.ErrNoRows
	}
	return m.theme, nil
}

func (m *mockThemeRepo) Create(ctx context.Context, theme *models.CardTheme) error {
	theme.ID = "theme-1"
	m.theme = theme
	m.created = true
	return nil
}

func (m *mockThemeRepo) Update(ctx context.Context, theme *models.CardTheme) error {
	m.theme = theme
	return nil
}

func TestThemeServiceGetCreatesDefault(t *testing.T) {
	repo := &mockThemeRepo{}
	svc := NewThemeService(repo, zap.NewNop())

	theme, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, repo.created)
	assert.Equal(t, "modern-glass", theme.TemplateStyle)
	assert.Equal(t, "#7c3aed", theme.PrimaryColor)

	repo.created = false
	again, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, repo.created)
	assert.Equal(t, theme.ID, again.ID)
}

func TestThemeServiceUpdatePatchesFields(t *testing.T) {
	repo := &mockThemeRepo{}
	svc := NewThemeService(repo, zap.NewNop())

	color := "#0ea5e9"
	style := "hospital-blue"
	updated, err := svc.Update(context.Background(), UpdateThemeRequest{PrimaryColor: &color, TemplateStyle: &style})
	require.NoError(t, err)
	assert.Equal(t, "#0ea5e9", updated.PrimaryColor)
	assert.Equal(t, "hospital-blue", updated.TemplateStyle)
	assert.Equal(t, "#5b21b6", updated.SecondaryColor)
}

func TestThemeServiceUpdateRejectsUnknownStyle(t *testing.T) {
	svc := NewThemeService(&mockThemeRepo{}, zap.NewNop())

	style := "retro-crt"
	_, err := svc.Update(context.Background(), UpdateThemeRequest{TemplateStyle: &style})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}
