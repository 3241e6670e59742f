package models

import "time"

// MonthlyAggregate holds per-category counts and percentages for one
// calendar month. It is recomputed from scratch for every report request.
type MonthlyAggregate struct {
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	TotalCount  int              `json:"total_count"`
	Counts      map[Category]int `json:"counts_by_category"`
	// Percents carries each category's share of TotalCount rounded to one
	// decimal; all values are 0.0 when the month has no records.
	Percents map[Category]float64 `json:"percent_by_category"`
}

// BreakdownLine is one category's entry in the report's summary section.
type BreakdownLine struct {
	Category Category
	Count    int
	Percent  float64
}

// ReportRow is one incident in the report table. All fields are already
// display-formatted; anonymous records show "Anonymous" / "-" here no
// matter what the storage document contained.
type ReportRow struct {
	Seq         int
	Name        string
	Contact     string
	Category    string
	Description string
	Date        string
	Coordinates string
}

// ReportDocument is the renderer-independent description of one monthly
// report: an ordered set of sections plus the table row set. Renderers
// turn it into bytes without recomputing anything.
type ReportDocument struct {
	Title            string
	ReportNumber     string
	PeriodLabel      string
	ExecutiveSummary string
	Breakdown        []BreakdownLine
	TableHeader      []string
	Rows             []ReportRow
	Narrative        string
	GeneratedAt      time.Time
	Filename         string
}

// RenderedReport pairs the produced artifact bytes with the deterministic
// filename the artifact must be stored or served under.
type RenderedReport struct {
	Filename string
	Content  []byte
}
