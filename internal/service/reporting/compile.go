package reporting

import (
	"fmt"
	"time"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

const (
	reportTitle = "ALERTHE - LOCAL ENGAGEMENT AND INCIDENT REGISTRY"

	descriptionBudget = 50
	dateLayout        = "02/01/2006"
)

// TableHeader is the fixed column set of the incident table.
var TableHeader = []string{"ID", "Reporter", "Contact", "Category", "Description", "Date", "Coordinates"}

// Filename derives the deterministic artifact name for a month. The same
// month always re-exports under the same name.
func Filename(year int, month time.Month) string {
	return fmt.Sprintf("report_%02d_%d.pdf", int(month), year)
}

// BuildDocument assembles the complete report description from the
// aggregate, the filtered records, and the already-obtained narrative.
// Everything here is in-memory data shaping; generatedAt is injected so
// regeneration from the same snapshot is reproducible.
func BuildDocument(agg models.MonthlyAggregate, records []models.IncidentRecord, narrative string, generatedAt time.Time) models.ReportDocument {
	month := agg.PeriodStart.Month()
	year := agg.PeriodStart.Year()

	doc := models.ReportDocument{
		Title:        reportTitle,
		ReportNumber: fmt.Sprintf("Monthly Technical Report - No. %02d/%d", int(month), year),
		PeriodLabel: fmt.Sprintf("Period: %s to %s",
			agg.PeriodStart.Format(dateLayout), agg.PeriodEnd.Format(dateLayout)),
		ExecutiveSummary: fmt.Sprintf(
			"During %s %d, %d urban incidents were recorded in the ALERTHE system, distributed across %d categories. This report is intended to support public and private agencies in prioritizing the demands reported by the population.",
			month, year, agg.TotalCount, len(models.Categories)),
		TableHeader: TableHeader,
		Rows:        buildRows(records, agg.PeriodStart.Location()),
		Narrative:   narrative,
		GeneratedAt: generatedAt,
		Filename:    Filename(year, month),
	}

	for _, cat := range models.Categories {
		doc.Breakdown = append(doc.Breakdown, models.BreakdownLine{
			Category: cat,
			Count:    agg.Counts[cat],
			Percent:  agg.Percents[cat],
		})
	}

	return doc
}

func buildRows(records []models.IncidentRecord, loc *time.Location) []models.ReportRow {
	rows := make([]models.ReportRow, 0, len(records))
	for i, rec := range records {
		rows = append(rows, models.ReportRow{
			Seq:         i + 1,
			Name:        displayName(rec),
			Contact:     displayContact(rec),
			Category:    string(rec.Category),
			Description: truncate(rec.Description, descriptionBudget),
			Date:        displayDate(rec.CreatedAt, loc),
			Coordinates: displayCoordinates(rec.Location),
		})
	}
	return rows
}

func displayName(rec models.IncidentRecord) string {
	if rec.IsAnonymous {
		return "Anonymous"
	}
	if rec.Reporter != nil && rec.Reporter.Name != "" {
		return rec.Reporter.Name
	}
	return "-"
}

func displayContact(rec models.IncidentRecord) string {
	if rec.IsAnonymous || rec.ContactNumber == "" {
		return "-"
	}
	return rec.ContactNumber
}

func displayDate(ts *time.Time, loc *time.Location) string {
	if ts == nil {
		return "-"
	}
	return ts.In(loc).Format(dateLayout)
}

func displayCoordinates(loc *models.GeoPoint) string {
	if loc == nil {
		return ""
	}
	return fmt.Sprintf("%.5f, %.5f", loc.Latitude, loc.Longitude)
}

// truncate cuts the text to at most budget runes with no ellipsis, so
// multi-byte descriptions are never split mid-character.
func truncate(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget])
}
