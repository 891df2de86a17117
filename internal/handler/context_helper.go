package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ihs-frontdesk-api/internal/middleware"
	"github.com/noah-isme/ihs-frontdesk-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// dateRangeFromQuery reads optional from/to query parameters as local
// calendar dates. The to bound is widened to the end of that day.
func dateRangeFromQuery(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return nil, nil, err
		}
		end := parsed.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
