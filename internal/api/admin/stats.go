// stats.go implements the organizer dashboard statistics handler.
package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// StatsHandler handles stats-related API requests
type StatsHandler struct {
	db *sqlx.DB
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(database *sqlx.DB) *StatsHandler {
	return &StatsHandler{
		db: database,
	}
}

// DayCount is the attendance count for a single event day.
type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// BucketCount is a count for one value of an enumerated field.
type BucketCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// DashboardStats represents the response for the organizer dashboard.
type DashboardStats struct {
	Total           int64         `json:"total"`
	SMSDelivered    int64         `json:"sms_delivered"`
	SMSPending      int64         `json:"sms_pending"`
	Sleeping        int64         `json:"sleeping"`
	ByDay           []DayCount    `json:"by_day"`
	ByAgeRange      []BucketCount `json:"by_age_range"`
	ByGender        []BucketCount `json:"by_gender"`
	ByStudentWorker []BucketCount `json:"by_student_or_worker"`
}

// GetDashboardStats returns aggregate registration statistics. Core counts are
// a single database round-trip; the breakdowns degrade to empty slices on
// query failure so a partially available dashboard still renders.
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	// Core counts — single round-trip.
	query := `
		SELECT
			(SELECT COUNT(*) FROM registrations) AS total,
			(SELECT COUNT(*) FROM registrations WHERE sms_sent) AS sms_delivered,
			(SELECT COUNT(*) FROM registrations WHERE NOT sms_sent) AS sms_pending,
			(SELECT COUNT(*) FROM registrations WHERE will_sleep) AS sleeping
	`

	var stats DashboardStats

	err := h.db.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.SMSDelivered,
		&stats.SMSPending,
		&stats.Sleeping,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard statistics"})
		return
	}

	// Per-day attendance. days_attending is a TEXT[]; unnest flattens it so a
	// multi-day registration counts once per selected day.
	stats.ByDay = []DayCount{}
	if dayRows, dayErr := h.db.QueryContext(ctx, `
		SELECT day, COUNT(*) AS count
		FROM registrations, unnest(days_attending) AS day
		GROUP BY day
		ORDER BY day
	`); dayErr == nil {
		defer dayRows.Close()
		for dayRows.Next() {
			var entry DayCount
			if scanErr := dayRows.Scan(&entry.Day, &entry.Count); scanErr == nil {
				stats.ByDay = append(stats.ByDay, entry)
			}
		}
	}

	stats.ByAgeRange = h.bucketCounts(c, "age_range")
	stats.ByGender = h.bucketCounts(c, "gender")
	stats.ByStudentWorker = h.bucketCounts(c, "student_or_worker")

	c.JSON(http.StatusOK, stats)
}

// bucketCounts groups registrations by one enumerated column. The column name
// comes from a fixed caller-side set, never from request input.
func (h *StatsHandler) bucketCounts(c *gin.Context, column string) []BucketCount {
	out := []BucketCount{}
	rows, err := h.db.QueryContext(c.Request.Context(), `
		SELECT `+column+`, COUNT(*) AS count
		FROM registrations
		GROUP BY `+column+`
		ORDER BY count DESC
	`)
	if err != nil {
		return out
	}
	defer rows.Close()

	for rows.Next() {
		var entry BucketCount
		if scanErr := rows.Scan(&entry.Value, &entry.Count); scanErr == nil {
			out = append(out, entry)
		}
	}
	return out
}
