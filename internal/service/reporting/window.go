package reporting

import (
	"time"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

// MonthBounds returns the first and last instant of the given calendar
// month in loc. Day 0 of the following month normalizes to the correct
// last day, leap Februaries included.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, loc)
	return start, end
}

// FilterMonth selects the records whose creation timestamp falls inside
// the given calendar month, evaluated in loc. Records without a timestamp
// never match. Encounter order is preserved; the table's sequence numbers
// depend on it.
func FilterMonth(records []models.IncidentRecord, year int, month time.Month, loc *time.Location) []models.IncidentRecord {
	var matched []models.IncidentRecord
	for _, rec := range records {
		if rec.CreatedAt == nil {
			continue
		}
		local := rec.CreatedAt.In(loc)
		if local.Year() == year && local.Month() == month {
			matched = append(matched, rec)
		}
	}
	return matched
}
