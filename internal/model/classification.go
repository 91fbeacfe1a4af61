// Package model defines the core domain models used throughout the application.
package model

// Source indicates which strategy produced a classification result.
type Source string

// Classification sources.
const (
	SourceKeyword        Source = "keyword"
	SourceSupplier       Source = "supplier"
	SourcePattern        Source = "pattern"
	SourceAI             Source = "ai"
	SourceContextual     Source = "contextual"
	SourceValueHeuristic Source = "value-heuristic"
	SourceCombined       Source = "combined"
	SourceFallback       Source = "fallback"
)

// AIStatus records why the AI strategy was skipped or degraded, so callers
// can surface a warning without failing the request.
type AIStatus string

// AI degradation statuses.
const (
	AIStatusInvalidKey    AIStatus = "invalid_key"
	AIStatusQuotaExceeded AIStatus = "quota_exceeded"
	AIStatusUnavailable   AIStatus = "unavailable"
)

// Supplier identifies the invoice issuer.
type Supplier struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
}

// LineItem is a single invoice line.
type LineItem struct {
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
}

// ClassificationInput carries everything the strategies may look at.
// It is built per request and discarded after producing a result.
type ClassificationInput struct {
	Supplier       Supplier   `json:"supplier"`
	RawDescription string     `json:"raw_description,omitempty"`
	Items          []LineItem `json:"items,omitempty"`
	TotalValue     float64    `json:"total_value,omitempty"`
}

// Alternative is a lower-ranked candidate attached to a result.
type Alternative struct {
	Category   Category `json:"category"`
	Confidence float64  `json:"confidence"`
}

// ClassificationResult is the outcome of a classification run. Confidence is
// in [0,1] and is clamped to <= 0.4 whenever Category is CategoryOther.
type ClassificationResult struct {
	Category     Category      `json:"category"`
	Subcategory  string        `json:"subcategory,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	Source       Source        `json:"source"`
	AIStatus     AIStatus      `json:"ai_status,omitempty"`
	Keywords     []string      `json:"keywords,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
	Confidence   float64       `json:"confidence"`
	AIAttempts   int           `json:"ai_attempts,omitempty"`
}
