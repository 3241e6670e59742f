package reporting

import (
	"fmt"
	"strings"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

// NarrativePlaceholder replaces the technical-analysis prose whenever the
// text-generation collaborator is unavailable. The report is still
// produced in full.
const NarrativePlaceholder = "Technical analysis unavailable for this period."

const narrativePromptTemplate = `You are a technical engineer working for the city government. Based on the data below, write exactly two clear and objective paragraphs (no heading), at most 10 lines in total. The text will be placed directly under the label "Technical Analysis" in an official report.

Data per category:
%s

Describe which categories were most critical, whether demand was low, or whether data was absent. Finish with a technical recommendation for the city government.`

// CategorySummary renders the aggregate as one compact line per canonical
// category, in enumeration order. This is the data block handed to the
// narrative collaborator.
func CategorySummary(agg models.MonthlyAggregate) string {
	lines := make([]string, 0, len(models.Categories))
	for _, cat := range models.Categories {
		lines = append(lines, fmt.Sprintf("%s: %d occurrence(s)", cat, agg.Counts[cat]))
	}
	return strings.Join(lines, "\n")
}

// NarrativePrompt builds the fixed instruction prompt around the category
// summary.
func NarrativePrompt(agg models.MonthlyAggregate) string {
	return fmt.Sprintf(narrativePromptTemplate, CategorySummary(agg))
}
