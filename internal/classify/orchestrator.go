package classify

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// Config tunes the orchestrator cascade.
type Config struct {
	// DisableAI skips the AI strategy entirely; the offline strategies
	// carry the whole cascade.
	DisableAI bool
	// PreferAI tries the AI strategy right after the supplier check instead
	// of after the offline strategies.
	PreferAI bool
}

// Orchestrator runs the classification strategies in priority order and
// merges their verdicts. Classify never fails: every degradation path ends
// in a usable, low-confidence result.
type Orchestrator struct {
	ai     *AIClassifier
	logger *slog.Logger
	config Config
}

// NewOrchestrator builds an orchestrator. ai may be nil when the AI strategy
// is disabled.
func NewOrchestrator(ai *AIClassifier, config Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if ai == nil {
		config.DisableAI = true
	}
	return &Orchestrator{ai: ai, config: config, logger: logger}
}

// Confidence gates for accepting a strategy verdict without consulting the
// remaining strategies.
const (
	supplierAcceptThreshold = 0.7
	preferAIThreshold       = 0.6
	keywordAcceptThreshold  = 0.7
	keywordConclusiveFloor  = 0.5
	patternAcceptThreshold  = 0.6
	aiAcceptThreshold       = 0.7

	mergeBonus    = 0.2
	mergeCap      = 0.95
	genericCeil   = 0.4
	fallbackFloor = 0.3
)

// Classify runs the cascade over one invoice. The result is total: it is
// never an error, at worst a generic-bucket verdict at low confidence.
func (o *Orchestrator) Classify(ctx context.Context, input model.ClassificationInput) model.ClassificationResult {
	traceID := uuid.NewString()
	text := AnalysisText(input)

	logger := o.logger.With("trace_id", traceID)
	logger.Debug("classifying expense",
		"supplier", input.Supplier.Name,
		"items", len(input.Items),
		"total_value", input.TotalValue)

	supplier := classifyBySupplier(input.Supplier.Name, text)
	if supplier.Category != model.CategoryOther && supplier.Confidence >= supplierAcceptThreshold {
		logger.Info("classified by supplier", "category", supplier.Category, "confidence", supplier.Confidence)
		return clampGeneric(supplier)
	}

	aiAttempted := false
	var aiResult model.ClassificationResult
	var aiErr error

	if o.config.PreferAI && !o.config.DisableAI {
		aiAttempted = true
		aiResult, aiErr = o.ai.Classify(ctx, input)
		if aiErr == nil && aiResult.Category != model.CategoryOther && aiResult.Confidence >= preferAIThreshold {
			logger.Info("classified by ai (preferred)", "category", aiResult.Category, "confidence", aiResult.Confidence)
			return clampGeneric(aiResult)
		}
	}

	keyword := classifyByKeywords(text)
	if keyword.Category != model.CategoryOther && keyword.Confidence > keywordAcceptThreshold {
		logger.Info("classified by keywords", "category", keyword.Category, "confidence", keyword.Confidence)
		return clampGeneric(keyword)
	}

	// A specific keyword verdict at moderate confidence stands. The pattern
	// fallback and the model call only run when the keyword pass was
	// inconclusive.
	if keyword.Category != model.CategoryOther && keyword.Confidence >= keywordConclusiveFloor {
		logger.Info("keyword verdict stands", "category", keyword.Category, "confidence", keyword.Confidence)
		return clampGeneric(keyword)
	}

	pattern := classifyByPatterns(text, input.TotalValue)
	if pattern.Category != model.CategoryOther && pattern.Confidence > patternAcceptThreshold {
		logger.Info("classified by patterns", "category", pattern.Category, "confidence", pattern.Confidence)
		return clampGeneric(pattern)
	}

	if !o.config.DisableAI && !aiAttempted {
		aiAttempted = true
		aiResult, aiErr = o.ai.Classify(ctx, input)
	}

	if aiAttempted && aiErr == nil {
		result := o.resolveWithAI(aiResult, keyword, text, input.TotalValue, logger)
		result.AIAttempts = aiResult.AIAttempts
		return clampGeneric(result)
	}

	var status model.AIStatus
	if aiAttempted {
		status = aiStatusFromError(aiErr)
		logger.Warn("ai strategy unavailable", "error", aiErr, "status", status)
	}

	best := bestOf(supplier, keyword, pattern)
	best.AIStatus = status
	if aiAttempted {
		best.AIAttempts = aiResult.AIAttempts
	}
	logger.Info("classified by best offline strategy",
		"category", best.Category, "confidence", best.Confidence, "source", best.Source)
	return clampGeneric(best)
}

// resolveWithAI reconciles a successful AI verdict with the keyword verdict.
func (o *Orchestrator) resolveWithAI(ai, keyword model.ClassificationResult, text string, totalValue float64, logger *slog.Logger) model.ClassificationResult {
	if ai.Category != model.CategoryOther && ai.Confidence > aiAcceptThreshold {
		logger.Info("classified by ai", "category", ai.Category, "confidence", ai.Confidence)
		return ai
	}

	if ai.Category == model.CategoryOther && keyword.Category == model.CategoryOther {
		logger.Info("ai and keywords inconclusive, trying contextual analysis")
		result := disambiguate(text, totalValue)
		logger.Info("contextual verdict", "category", result.Category, "confidence", result.Confidence)
		return result
	}

	// Agreement reinforces both strategies.
	if ai.Category == keyword.Category {
		merged := ai
		if keyword.Confidence > merged.Confidence {
			merged = keyword
			merged.Subcategory = ai.Subcategory
			merged.AIAttempts = ai.AIAttempts
		}
		merged.Confidence += mergeBonus
		if merged.Confidence > mergeCap {
			merged.Confidence = mergeCap
		}
		merged.Source = model.SourceCombined
		logger.Info("strategies agree", "category", merged.Category, "confidence", merged.Confidence)
		return merged
	}

	winner, loser := ai, keyword
	switch {
	case winner.Category == model.CategoryOther:
		winner, loser = keyword, ai
	case loser.Category != model.CategoryOther && loser.Confidence > winner.Confidence:
		winner, loser = loser, winner
	}
	winner.Alternatives = append([]model.Alternative{{
		Category:   loser.Category,
		Confidence: loser.Confidence,
	}}, winner.Alternatives...)
	logger.Info("strategies disagree, picking stronger verdict",
		"category", winner.Category, "confidence", winner.Confidence, "source", winner.Source)
	return winner
}

// bestOf picks the strongest offline verdict, preferring any specific
// category over the generic bucket regardless of confidence.
func bestOf(results ...model.ClassificationResult) model.ClassificationResult {
	best := model.ClassificationResult{
		Category:   model.CategoryOther,
		Confidence: fallbackFloor,
		Reason:     "nenhuma estratégia identificou a categoria",
		Source:     model.SourceFallback,
	}

	for _, result := range results {
		switch {
		case best.Category == model.CategoryOther && result.Category != model.CategoryOther:
			best = result
		case best.Category != model.CategoryOther && result.Category == model.CategoryOther:
		case result.Confidence > best.Confidence:
			best = result
		}
	}

	return best
}

// clampGeneric enforces the confidence ceiling on generic-bucket verdicts:
// "we don't know" must never look confident.
func clampGeneric(result model.ClassificationResult) model.ClassificationResult {
	if result.Category == model.CategoryOther && result.Confidence > genericCeil {
		result.Confidence = genericCeil
	}
	return result
}

func aiStatusFromError(err error) model.AIStatus {
	switch {
	case errors.Is(err, common.ErrQuotaExceeded):
		return model.AIStatusQuotaExceeded
	case errors.Is(err, common.ErrInvalidAPIKey):
		return model.AIStatusInvalidKey
	default:
		return model.AIStatusUnavailable
	}
}
