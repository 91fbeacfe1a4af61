// Package classify implements the cascading expense-classification engine:
// supplier heuristics, keyword scoring, pattern fallback, contextual
// disambiguation and the AI strategy, sequenced by the Orchestrator.
package classify

import (
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// AnalysisText flattens a classification input into the single lowercase
// string every offline strategy scans. Missing fields are simply omitted.
func AnalysisText(input model.ClassificationInput) string {
	parts := make([]string, 0, 4+2*len(input.Items))

	if input.Supplier.Name != "" {
		parts = append(parts, input.Supplier.Name)
	}
	if input.Supplier.TaxID != "" {
		parts = append(parts, input.Supplier.TaxID)
	}
	for _, item := range input.Items {
		if item.Description != "" {
			parts = append(parts, item.Description)
		}
		if item.Code != "" {
			parts = append(parts, item.Code)
		}
	}
	if input.RawDescription != "" {
		parts = append(parts, input.RawDescription)
	}

	return strings.ToLower(strings.Join(parts, " "))
}
