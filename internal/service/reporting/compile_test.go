package reporting

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

func marchFixture() ([]models.IncidentRecord, models.MonthlyAggregate) {
	records := []models.IncidentRecord{
		{
			ID:          "w",
			Description: "Water main leaking on Rua das Flores",
			Category:    models.CategoryWater,
			IsAnonymous: true,
			// Raw fields that must never surface once anonymous is set
			// are already scrubbed by normalization; the compiler still
			// guards the display fields itself.
			Location:  &models.GeoPoint{Latitude: -5.08921, Longitude: -42.80194},
			CreatedAt: ts(time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)),
		},
		{
			ID:            "e",
			Description:   "Transformer sparking at night",
			Category:      models.CategoryEnergy,
			Reporter:      &models.Reporter{UID: "u1", Name: "Ana", Email: "ana@example.com"},
			ContactNumber: "555-0100",
			CreatedAt:     ts(time.Date(2025, time.March, 14, 21, 30, 0, 0, time.UTC)),
		},
	}
	agg := Aggregate(records, 2025, time.March, time.UTC)
	return records, agg
}

func TestBuildDocumentSections(t *testing.T) {
	records, agg := marchFixture()
	generated := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)

	doc := BuildDocument(agg, records, "All quiet overall.", generated)

	if doc.Filename != "report_03_2025.pdf" {
		t.Errorf("Filename = %q, want report_03_2025.pdf", doc.Filename)
	}
	if doc.ReportNumber != "Monthly Technical Report - No. 03/2025" {
		t.Errorf("ReportNumber = %q", doc.ReportNumber)
	}
	if doc.PeriodLabel != "Period: 01/03/2025 to 31/03/2025" {
		t.Errorf("PeriodLabel = %q", doc.PeriodLabel)
	}
	if !strings.Contains(doc.ExecutiveSummary, "2 urban incidents") {
		t.Errorf("ExecutiveSummary missing total count: %q", doc.ExecutiveSummary)
	}
	if !strings.Contains(doc.ExecutiveSummary, "5 categories") {
		t.Errorf("ExecutiveSummary missing category count: %q", doc.ExecutiveSummary)
	}
	if doc.Narrative != "All quiet overall." {
		t.Errorf("Narrative = %q", doc.Narrative)
	}
	if !doc.GeneratedAt.Equal(generated) {
		t.Errorf("GeneratedAt = %v, want %v", doc.GeneratedAt, generated)
	}

	if len(doc.Breakdown) != len(models.Categories) {
		t.Fatalf("breakdown has %d lines, want %d", len(doc.Breakdown), len(models.Categories))
	}
	for i, cat := range models.Categories {
		if doc.Breakdown[i].Category != cat {
			t.Errorf("breakdown position %d is %q, want %q (fixed enumeration order)", i, doc.Breakdown[i].Category, cat)
		}
	}
}

func TestBuildDocumentRows(t *testing.T) {
	records, agg := marchFixture()
	doc := BuildDocument(agg, records, "n/a", time.Now())

	if len(doc.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(doc.Rows))
	}

	anon := doc.Rows[0]
	if anon.Seq != 1 {
		t.Errorf("first row Seq = %d, want 1", anon.Seq)
	}
	if anon.Name != "Anonymous" {
		t.Errorf("anonymous row name = %q, want Anonymous", anon.Name)
	}
	if anon.Contact != "-" {
		t.Errorf("anonymous row contact = %q, want -", anon.Contact)
	}
	if anon.Coordinates != "-5.08921, -42.80194" {
		t.Errorf("coordinates = %q", anon.Coordinates)
	}
	if anon.Date != "03/03/2025" {
		t.Errorf("date = %q, want 03/03/2025", anon.Date)
	}

	named := doc.Rows[1]
	if named.Seq != 2 {
		t.Errorf("second row Seq = %d, want 2", named.Seq)
	}
	if named.Name != "Ana" {
		t.Errorf("named row name = %q, want Ana", named.Name)
	}
	if named.Contact != "555-0100" {
		t.Errorf("named row contact = %q", named.Contact)
	}
}

func TestBuildDocumentRowFallbacks(t *testing.T) {
	records := []models.IncidentRecord{{
		ID:          "bare",
		Description: "no optional fields at all",
		Category:    models.CategoryOther,
	}}
	agg := Aggregate(records, 2025, time.May, time.UTC)

	doc := BuildDocument(agg, records, "n/a", time.Now())

	row := doc.Rows[0]
	if row.Name != "-" {
		t.Errorf("name = %q, want - for a named record without reporter", row.Name)
	}
	if row.Contact != "-" {
		t.Errorf("contact = %q, want -", row.Contact)
	}
	if row.Date != "-" {
		t.Errorf("date = %q, want - when timestamp is absent", row.Date)
	}
	if row.Coordinates != "" {
		t.Errorf("coordinates = %q, want blank when location is absent", row.Coordinates)
	}
}

func TestBuildDocumentDescriptionTruncation(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{name: "short untouched", desc: "short", want: "short"},
		{name: "exactly fifty", desc: strings.Repeat("x", 50), want: strings.Repeat("x", 50)},
		{name: "cut with no ellipsis", desc: strings.Repeat("x", 60), want: strings.Repeat("x", 50)},
		{name: "multibyte counted in runes", desc: strings.Repeat("á", 60), want: strings.Repeat("á", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []models.IncidentRecord{{ID: "r", Description: tt.desc, Category: models.CategoryOther}}
			agg := Aggregate(records, 2025, time.May, time.UTC)
			doc := BuildDocument(agg, records, "n/a", time.Now())

			if doc.Rows[0].Description != tt.want {
				t.Errorf("description = %q, want %q", doc.Rows[0].Description, tt.want)
			}
		})
	}
}

func TestBuildDocumentIdempotent(t *testing.T) {
	records, agg := marchFixture()
	generated := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)

	a := BuildDocument(agg, records, "fixed narrative", generated)
	b := BuildDocument(agg, records, "fixed narrative", generated)

	if !reflect.DeepEqual(a, b) {
		t.Error("regenerating from the same snapshot must produce an identical document")
	}
}

func TestFilenameDeterministic(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2025, time.March, "report_03_2025.pdf"},
		{2025, time.December, "report_12_2025.pdf"},
		{2024, time.February, "report_02_2024.pdf"},
	}

	for _, tt := range tests {
		if got := Filename(tt.year, tt.month); got != tt.want {
			t.Errorf("Filename(%d, %v) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestCategorySummaryFormat(t *testing.T) {
	_, agg := marchFixture()

	summary := CategorySummary(agg)
	lines := strings.Split(summary, "\n")
	if len(lines) != len(models.Categories) {
		t.Fatalf("summary has %d lines, want %d", len(lines), len(models.Categories))
	}
	if lines[2] != "Water: 1 occurrence(s)" {
		t.Errorf("water line = %q", lines[2])
	}
	if lines[0] != "Infrastructure: 0 occurrence(s)" {
		t.Errorf("infrastructure line = %q", lines[0])
	}
}
