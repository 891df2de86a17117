// Package idgen produces the human-readable identifiers used at the
// front desk: student IDs, visitor pass IDs, QR payloads and daily
// tokens. None of the sequence-based generators are atomic; the next
// value is derived from current store content and the store's unique
// constraints arbitrate concurrent races.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const studentIDPrefix = "IHS"

// deptCodes maps the fixed departments to their 3-letter codes.
var deptCodes = map[string]string{
	"Radiology":  "RAD",
	"Cardiology": "CAR",
	"MLT":        "MLT",
	"Emergency":  "EMR",
	"Dental":     "DNT",
	"Surgical":   "SRG",
	"Optometry":  "OPT",
}

// DeptCode resolves the 3-letter code for a department. Unknown
// departments fall back to their first three letters uppercased, or GEN
// when empty.
func DeptCode(department string) string {
	d := strings.TrimSpace(department)
	if code, ok := deptCodes[d]; ok {
		return code
	}
	if d == "" {
		return "GEN"
	}
	runes := []rune(d)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	code := strings.ToUpper(string(runes))
	if code == "" {
		return "GEN"
	}
	return code
}

// StudentID formats the next student ID for a department code given the
// highest sequence currently in use. Padding is three digits minimum
// and widens naturally once the sequence passes 999.
func StudentID(deptCode string, maxUsed int) string {
	return fmt.Sprintf("%s-%s-%03d", studentIDPrefix, deptCode, maxUsed+1)
}

// MaxSequence scans existing student IDs and returns the highest numeric
// suffix among those matching IHS-<code>-<digits> exactly.
func MaxSequence(studentIDs []string, deptCode string) int {
	re := regexp.MustCompile(`^` + studentIDPrefix + `-` + regexp.QuoteMeta(deptCode) + `-(\d+)$`)
	max := 0
	for _, id := range studentIDs {
		m := re.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// PassID returns an opaque visitor pass identifier built from a
// high-resolution timestamp and a short random suffix. Uniqueness is
// probabilistic, not enforced.
func PassID() string {
	millis := time.Now().UnixMilli()
	return fmt.Sprintf("VP-%s-%s",
		strings.ToUpper(strconv.FormatInt(millis, 36)),
		strings.ToUpper(randomBase36(4)))
}

// QRValue returns an opaque QR payload for a visitor pass. The format
// is deliberately distinct from PassID so the two never collide.
func QRValue() string {
	return fmt.Sprintf("QR-%d-%s", time.Now().UnixMilli(), randomBase36(8))
}

// DailyToken formats the visitor token for the given number of
// check-ins already recorded today. Tokens reset to V-001 on the first
// check-in of a new day.
func DailyToken(countToday int) string {
	return fmt.Sprintf("V-%03d", countToday+1)
}

// StartOfDay truncates t to local midnight, the boundary used for
// duplicate-scan checks, token resets and report windows.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	var sb strings.Builder
	sb.Grow(n)
	maxIdx := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, maxIdx)
		if err != nil {
			// fall back to a time-derived digit when crypto/rand is unavailable
			sb.WriteByte(base36Alphabet[time.Now().UnixNano()%36])
			continue
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String()
}
