package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockVisitorCounter struct {
	checkIns map[string]int
	active   int
}

func (m *mockVisitorCounter) CountCheckInsBetween(ctx context.Context, from, to time.Time) (int, error) {
	return m.checkIns[from.Format("2006-01-02")], nil
}

func (m *mockVisitorCounter) CountActive(ctx context.Context) (int, error) {
	return m.active, nil
}

type mockEntryCounter struct {
	entries map[string]int
}

func (m *mockEntryCounter) CountBetween(ctx context.Context, from, to time.Time) (int, error) {
	return m.entries[from.Format("2006-01-02")], nil
}

func fixedClock() (func() time.Time, string) {
	fixed := time.Date(2025, time.March, 10, 14, 30, 0, 0, time.Local)
	return func() time.Time { return fixed }, "2025-03-10"
}

func TestReportServiceToday(t *testing.T) {
	clock, today := fixedClock()
	visitors := &mockVisitorCounter{checkIns: map[string]int{today: 4}, active: 2}
	entries := &mockEntryCounter{entries: map[string]int{today: 12}}
	svc := NewReportService(visitors, entries, nil, zap.NewNop(), 7)
	svc.now = clock

	stats, err := svc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, today, stats.Date)
	assert.Equal(t, 4, stats.VisitorCount)
	assert.Equal(t, 12, stats.StudentEntryCount)
	assert.Equal(t, 2, stats.ActiveVisitors)
}

func TestReportServiceDailyWithDate(t *testing.T) {
	clock, _ := fixedClock()
	visitors := &mockVisitorCounter{checkIns: map[string]int{"2025-03-08": 1}}
	entries := &mockEntryCounter{entries: map[string]int{"2025-03-08": 3}}
	svc := NewReportService(visitors, entries, nil, zap.NewNop(), 7)
	svc.now = clock

	stats, err := svc.Daily(context.Background(), "2025-03-08")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-08", stats.Date)
	assert.Equal(t, 1, stats.VisitorCount)
	assert.Equal(t, 3, stats.StudentEntryCount)
}

func TestReportServiceDailyBadDate(t *testing.T) {
	svc := NewReportService(&mockVisitorCounter{}, &mockEntryCounter{}, nil, zap.NewNop(), 7)

	_, err := svc.Daily(context.Background(), "08-03-2025")
	require.Error(t, err)
}

func TestReportServiceChartAscendingWithZeroDays(t *testing.T) {
	clock, today := fixedClock()
	visitors := &mockVisitorCounter{checkIns: map[string]int{today: 5, "2025-03-07": 2}}
	entries := &mockEntryCounter{entries: map[string]int{today: 9}}
	svc := NewReportService(visitors, entries, nil, zap.NewNop(), 7)
	svc.now = clock

	points, err := svc.Chart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, "2025-03-04", points[0].Date)
	assert.Equal(t, today, points[6].Date)
	assert.Equal(t, 5, points[6].Visitors)
	assert.Equal(t, 9, points[6].Students)
	assert.Equal(t, 2, points[3].Visitors)
	assert.Equal(t, 0, points[0].Visitors)
	assert.Equal(t, 0, points[0].Students)
	assert.Equal(t, "Mon Mar 10", points[6].Label)
}

func TestReportServiceChartDefaultsDays(t *testing.T) {
	clock, _ := fixedClock()
	svc := NewReportService(&mockVisitorCounter{}, &mockEntryCounter{}, nil, zap.NewNop(), 7)
	svc.now = clock

	points, err := svc.Chart(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, points, 7)
}
