package reporting

import (
	"math"
	"time"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

// Aggregate tallies the filtered records into a MonthlyAggregate. Every
// canonical category is present in the result even at zero, the counts
// always sum to len(records), and percentages are rounded to one decimal.
// An empty month yields 0.0 percentages across the board.
func Aggregate(records []models.IncidentRecord, year int, month time.Month, loc *time.Location) models.MonthlyAggregate {
	start, end := MonthBounds(year, month, loc)

	agg := models.MonthlyAggregate{
		PeriodStart: start,
		PeriodEnd:   end,
		TotalCount:  len(records),
		Counts:      make(map[models.Category]int, len(models.Categories)),
		Percents:    make(map[models.Category]float64, len(models.Categories)),
	}

	for _, cat := range models.Categories {
		agg.Counts[cat] = 0
	}
	for _, rec := range records {
		agg.Counts[rec.Category]++
	}

	for _, cat := range models.Categories {
		agg.Percents[cat] = percentage(agg.Counts[cat], agg.TotalCount)
	}

	return agg
}

func percentage(count, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}
