package idgen

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeptCode(t *testing.T) {
	assert.Equal(t, "RAD", DeptCode("Radiology"))
	assert.Equal(t, "CAR", DeptCode("Cardiology"))
	assert.Equal(t, "MLT", DeptCode("MLT"))
	assert.Equal(t, "EMR", DeptCode("Emergency"))
	assert.Equal(t, "DNT", DeptCode("Dental"))
	assert.Equal(t, "SRG", DeptCode("Surgical"))
	assert.Equal(t, "OPT", DeptCode("Optometry"))
	assert.Equal(t, "NUR", DeptCode("Nursing"))
	assert.Equal(t, "IT", DeptCode("it"))
	assert.Equal(t, "GEN", DeptCode(""))
	assert.Equal(t, "GEN", DeptCode("   "))
}

func TestStudentIDPadding(t *testing.T) {
	assert.Equal(t, "IHS-CAR-001", StudentID("CAR", 0))
	assert.Equal(t, "IHS-CAR-002", StudentID("CAR", 1))
	assert.Equal(t, "IHS-CAR-100", StudentID("CAR", 99))
	// padding widens past three digits instead of truncating
	assert.Equal(t, "IHS-CAR-1000", StudentID("CAR", 999))
}

func TestMaxSequence(t *testing.T) {
	ids := []string{
		"IHS-CAR-001",
		"IHS-CAR-017",
		"IHS-CAR-9",
		"IHS-RAD-099",
		"IHS-CAR-",
		"IHS-CAR-abc",
		"not-an-id",
	}
	assert.Equal(t, 17, MaxSequence(ids, "CAR"))
	assert.Equal(t, 99, MaxSequence(ids, "RAD"))
	assert.Equal(t, 0, MaxSequence(ids, "DNT"))
}

func TestPassIDAndQRValueShapes(t *testing.T) {
	pass := PassID()
	qr := QRValue()

	assert.True(t, strings.HasPrefix(pass, "VP-"))
	assert.True(t, strings.HasPrefix(qr, "QR-"))
	assert.NotEqual(t, pass, qr)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		v := QRValue()
		_, dup := seen[v]
		require.False(t, dup, "qr payload repeated: %s", v)
		seen[v] = struct{}{}
	}
}

func TestDailyToken(t *testing.T) {
	assert.Equal(t, "V-001", DailyToken(0))
	assert.Equal(t, "V-002", DailyToken(1))
	assert.Equal(t, "V-100", DailyToken(99))
	assert.Equal(t, "V-1000", DailyToken(999))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("PKT", 5*3600)
	ts := time.Date(2026, 3, 14, 15, 9, 26, 535, loc)
	start := StartOfDay(ts)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}
