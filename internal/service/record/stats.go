package record

import (
	"strings"
	"time"

	"github.com/medilink/records-api/internal/model"
)

// criticalKeywords flags diagnoses that need attention on the dashboards.
var criticalKeywords = []string{"critical", "emergency", "severe", "urgent", "acute"}

// IsCritical reports whether the diagnosis text matches the keyword
// heuristic. An empty diagnosis is never critical.
func IsCritical(diagnosis string) bool {
	if diagnosis == "" {
		return false
	}
	lower := strings.ToLower(diagnosis)
	for _, kw := range criticalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ComputeStats is a pure summary of records. "Added today" compares local
// calendar days, using the same location for both the record timestamp and
// now.
func ComputeStats(records []*model.PatientRecord, now time.Time) model.RecordStats {
	stats := model.RecordStats{Total: len(records)}

	y, m, d := now.Date()
	for _, r := range records {
		ry, rm, rd := r.CreatedAt.In(now.Location()).Date()
		if ry == y && rm == m && rd == d {
			stats.AddedToday++
		}
		if IsCritical(r.Diagnosis) {
			stats.Critical++
		}
	}
	return stats
}

// FilterRecords narrows records by a case-insensitive substring match over
// unique ID, full name and diagnosis. An empty term returns the input
// unchanged.
func FilterRecords(records []*model.PatientRecord, term string) []*model.PatientRecord {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}

	filtered := make([]*model.PatientRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.UniqueID), term) ||
			strings.Contains(strings.ToLower(r.FullName), term) ||
			strings.Contains(strings.ToLower(r.Diagnosis), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
