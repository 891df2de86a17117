package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
	appErrors "github.com/noah-isme/ihs-frontdesk-api/pkg/errors"
)

type mockVisitorRepo struct {
	visitors  map[string]models.Visitor
	createErr error
}

func (m *mockVisitorRepo) FindByID(ctx context.Context, id string) (*models.Visitor, error) {
	if v, ok := m.visitors[id]; ok {
		return &v, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockVisitorRepo) FindActiveByCNIC(ctx context.Context, cnic string) (*models.Visitor, error) {
	for _, v := range m.visitors {
		if v.CNIC == cnic && v.CheckOutTime == nil {
			return &v, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockVisitorRepo) CountByVisitDate(ctx context.Context, day time.Time) (int, error) {
	count := 0
	for _, v := range m.visitors {
		if v.VisitDate.Equal(day) {
			count++
		}
	}
	return count, nil
}

func (m *mockVisitorRepo) ListActive(ctx context.Context) ([]models.Visitor, error) {
	var list []models.Visitor
	for _, v := range m.visitors {
		if v.CheckOutTime == nil {
			list = append(list, v)
		}
	}
	return list, nil
}

func (m *mockVisitorRepo) List(ctx context.Context, filter models.VisitorFilter) ([]models.Visitor, error) {
	var list []models.Visitor
	for _, v := range m.visitors {
		list = append(list, v)
	}
	return list, nil
}

func (m *mockVisitorRepo) Create(ctx context.Context, visitor *models.Visitor) error {
	if m.createErr != nil {
		err := m.createErr
		m.createErr = nil
		return err
	}
	if m.visitors == nil {
		m.visitors = make(map[string]models.Visitor)
	}
	if visitor.ID == "" {
		visitor.ID = visitor.PassID
	}
	m.visitors[visitor.ID] = *visitor
	return nil
}

func (m *mockVisitorRepo) Update(ctx context.Context, visitor *models.Visitor) error {
	m.visitors[visitor.ID] = *visitor
	return nil
}

func (m *mockVisitorRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.visitors[id]; !ok {
		return false, nil
	}
	delete(m.visitors, id)
	return true, nil
}

func checkInRequest() CheckInRequest {
	return CheckInRequest{Name: "Imran Malik", CNIC: "35202-1234567-1", Purpose: "Meeting"}
}

func TestVisitorServiceCheckIn(t *testing.T) {
	repo := &mockVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil, zap.NewNop(), 3)

	visitor, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)
	assert.Equal(t, "V-001", visitor.TokenNumber)
	assert.True(t, strings.HasPrefix(visitor.PassID, "VP-"))
	assert.True(t, strings.HasPrefix(visitor.QRCodeValue, "QR-"))
	assert.Equal(t, models.DefaultVisitorType, visitor.VisitorType)
	assert.Nil(t, visitor.CheckOutTime)
}

func TestVisitorServiceCheckInTokenSequence(t *testing.T) {
	repo := &mockVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil, zap.NewNop(), 3)

	_, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	second := checkInRequest()
	second.CNIC = "35202-7654321-2"
	visitor, err := svc.CheckIn(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "V-002", visitor.TokenNumber)
}

func TestVisitorServiceCheckInAlreadyActive(t *testing.T) {
	repo := &mockVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil, zap.NewNop(), 3)

	_, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), checkInRequest())
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrAlreadyActive))
}

func TestVisitorServiceCheckInValidation(t *testing.T) {
	svc := NewVisitorService(&mockVisitorRepo{}, nil, nil, zap.NewNop(), 3)

	_, err := svc.CheckIn(context.Background(), CheckInRequest{Name: "X", CNIC: "", Purpose: "Meeting"})
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestVisitorServiceCheckInUnknownType(t *testing.T) {
	svc := NewVisitorService(&mockVisitorRepo{}, nil, nil, zap.NewNop(), 3)

	req := checkInRequest()
	req.VisitorType = "Alien"
	_, err := svc.CheckIn(context.Background(), req)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestVisitorServiceCheckOut(t *testing.T) {
	repo := &mockVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil, zap.NewNop(), 3)

	visitor, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	out, err := svc.CheckOut(context.Background(), visitor.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)

	_, err = svc.CheckOut(context.Background(), visitor.ID)
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrAlreadyCheckedOut))
}

func TestVisitorServiceCheckOutNotFound(t *testing.T) {
	svc := NewVisitorService(&mockVisitorRepo{}, nil, nil, zap.NewNop(), 3)

	_, err := svc.CheckOut(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
}

func TestVisitorServiceCheckOutAllowsNewVisit(t *testing.T) {
	repo := &mockVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil, zap.NewNop(), 3)

	visitor, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)
	_, err = svc.CheckOut(context.Background(), visitor.ID)
	require.NoError(t, err)

	again, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)
	assert.Equal(t, "V-002", again.TokenNumber)
}

func TestVisitorServiceUpdateCardPrinted(t *testing.T) {
	repo := &mockVisitorRepo{}
	svc := NewVisitorService(repo, nil, nil, zap.NewNop(), 3)

	visitor, err := svc.CheckIn(context.Background(), checkInRequest())
	require.NoError(t, err)

	printed := true
	updated, err := svc.Update(context.Background(), visitor.ID, UpdateVisitorRequest{CardPrinted: &printed})
	require.NoError(t, err)
	assert.True(t, updated.CardPrinted)
}
