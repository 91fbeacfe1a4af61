package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garcia3528/notalfiscalIA/internal/common"
	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// failIfCalled trips the test if the orchestrator consults the AI strategy.
type failIfCalled struct {
	t *testing.T
}

func (f *failIfCalled) Generate(_ context.Context, _ string) (string, error) {
	f.t.Fatal("ai strategy should not have been consulted")
	return "", nil
}

func TestOrchestratorSupplierWinsWithoutAI(t *testing.T) {
	orch := NewOrchestrator(NewAIClassifier(&failIfCalled{t: t}), Config{}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		Supplier: model.Supplier{Name: "Posto Shell Rodovia BR-376"},
		Items:    []model.LineItem{{Description: "Diesel S10 comum"}},
	})

	assert.Equal(t, model.CategoryMaintenance, got.Category)
	assert.Equal(t, "Combustíveis e Lubrificantes", got.Subcategory)
	assert.Equal(t, model.SourceSupplier, got.Source)
	assert.GreaterOrEqual(t, got.Confidence, 0.7)
}

func TestOrchestratorKeywordsWinWithoutAI(t *testing.T) {
	orch := NewOrchestrator(NewAIClassifier(&failIfCalled{t: t}), Config{}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		Supplier:       model.Supplier{Name: "Escritório Central"},
		RawDescription: "Honorários advocatícios ação trabalhista",
	})

	assert.Equal(t, model.CategoryAdministrative, got.Category)
	assert.Equal(t, "Honorários Advocatícios", got.Subcategory)
	assert.Equal(t, model.SourceKeyword, got.Source)
	assert.Greater(t, got.Confidence, 0.7)
}

func TestOrchestratorFallsBackToValueHeuristic(t *testing.T) {
	orch := NewOrchestrator(nil, Config{DisableAI: true}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		Supplier:       model.Supplier{Name: "Zzkqwx Xyzzy"},
		RawDescription: "qwerty plugh",
		TotalValue:     50,
	})

	assert.Equal(t, model.CategoryAdministrative, got.Category)
	assert.Equal(t, "Despesas Pequenas", got.Subcategory)
	assert.Equal(t, model.SourceValueHeuristic, got.Source)
	assert.LessOrEqual(t, got.Confidence, 0.4)
}

func TestOrchestratorAIAccepted(t *testing.T) {
	gen := &mockGenerator{responses: []string{
		`{"categoria": "SEGUROS E PROTEÇÃO", "subcategoria": "Seguro Agrícola", "confianca": 0.88, "motivo": "apólice de seguro rural"}`,
	}}
	orch := NewOrchestrator(NewAIClassifier(gen), Config{}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		Supplier:       model.Supplier{Name: "Empresa Genérica"},
		RawDescription: "renovação anual documento 4412",
	})

	assert.Equal(t, model.CategoryInsurance, got.Category)
	assert.Equal(t, "Seguro Agrícola", got.Subcategory)
	assert.Equal(t, model.SourceAI, got.Source)
	assert.InDelta(t, 0.88, got.Confidence, 1e-9)
	assert.Equal(t, 1, got.AIAttempts)
}

func TestOrchestratorModerateKeywordVerdictStands(t *testing.T) {
	// "banco" gives keywords a specific verdict at 0.6, and "obra" would hit
	// the construction pattern group at 0.7. The keyword verdict must stand
	// and neither the pattern fallback nor the model may run.
	orch := NewOrchestrator(NewAIClassifier(&failIfCalled{t: t}), Config{}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		RawDescription: "parcela de emprestimo banco obra da sede",
	})

	assert.Equal(t, model.CategoryAdministrative, got.Category)
	assert.Equal(t, model.SourceKeyword, got.Source)
	assert.InDelta(t, 0.6, got.Confidence, 1e-9)
}

func TestResolveWithAIMergesAgreement(t *testing.T) {
	orch := NewOrchestrator(nil, Config{DisableAI: true}, nil)

	ai := model.ClassificationResult{
		Category:    model.CategoryHumanResources,
		Subcategory: "Salários e Encargos",
		Confidence:  0.65,
		Source:      model.SourceAI,
	}
	keyword := model.ClassificationResult{
		Category:   model.CategoryHumanResources,
		Confidence: 0.45,
		Source:     model.SourceKeyword,
	}

	got := orch.resolveWithAI(ai, keyword, "", 0, orch.logger)

	assert.Equal(t, model.CategoryHumanResources, got.Category)
	assert.Equal(t, "Salários e Encargos", got.Subcategory)
	assert.Equal(t, model.SourceCombined, got.Source)
	assert.InDelta(t, 0.85, got.Confidence, 1e-9)
}

func TestResolveWithAIDisagreementKeepsLoserAsAlternative(t *testing.T) {
	orch := NewOrchestrator(nil, Config{DisableAI: true}, nil)

	ai := model.ClassificationResult{Category: model.CategoryInsurance, Confidence: 0.6, Source: model.SourceAI}
	keyword := model.ClassificationResult{Category: model.CategoryAdministrative, Confidence: 0.45, Source: model.SourceKeyword}

	got := orch.resolveWithAI(ai, keyword, "", 0, orch.logger)

	assert.Equal(t, model.CategoryInsurance, got.Category)
	require.NotEmpty(t, got.Alternatives)
	assert.Equal(t, model.CategoryAdministrative, got.Alternatives[0].Category)
	assert.InDelta(t, 0.45, got.Alternatives[0].Confidence, 1e-9)
}

func TestOrchestratorBothGenericTriggersContextual(t *testing.T) {
	gen := &mockGenerator{responses: []string{
		`{"categoria": "OUTRAS", "confianca": 0.3}`,
	}}
	orch := NewOrchestrator(NewAIClassifier(gen), Config{}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		Supplier:       model.Supplier{Name: "Zzkqwx"},
		RawDescription: "estadia com diária casal",
	})

	assert.Equal(t, model.CategoryAdministrative, got.Category)
	assert.Equal(t, "Hospedagem", got.Subcategory)
	assert.Equal(t, model.SourceContextual, got.Source)
}

func TestOrchestratorAIFailureRecordsStatus(t *testing.T) {
	fastRetries(t)

	tests := []struct {
		err        error
		wantStatus model.AIStatus
		name       string
	}{
		{name: "quota", err: common.ErrQuotaExceeded, wantStatus: model.AIStatusQuotaExceeded},
		{name: "invalid key", err: common.ErrInvalidAPIKey, wantStatus: model.AIStatusInvalidKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{errs: []error{tt.err}}
			orch := NewOrchestrator(NewAIClassifier(gen), Config{}, nil)

			got := orch.Classify(context.Background(), model.ClassificationInput{
				Supplier:       model.Supplier{Name: "Zzkqwx"},
				RawDescription: "qwerty plugh",
			})

			assert.Equal(t, tt.wantStatus, got.AIStatus)
			assert.Equal(t, model.CategoryOther, got.Category)
			assert.LessOrEqual(t, got.Confidence, 0.4)
		})
	}
}

func TestOrchestratorPreferAIRunsBeforeKeywords(t *testing.T) {
	// The description carries strong fuel keywords, but with PreferAI set a
	// confident AI verdict short-circuits before the keyword pass.
	gen := &mockGenerator{responses: []string{
		`{"categoria": "INVESTIMENTOS", "subcategoria": "Aquisição de Máquinas", "confianca": 0.9}`,
	}}
	orch := NewOrchestrator(NewAIClassifier(gen), Config{PreferAI: true}, nil)

	got := orch.Classify(context.Background(), model.ClassificationInput{
		Supplier:       model.Supplier{Name: "Empresa Genérica"},
		RawDescription: "financiamento colheitadeira combustível diesel",
	})

	assert.Equal(t, model.CategoryInvestments, got.Category)
	assert.Equal(t, model.SourceAI, got.Source)
	assert.Equal(t, 1, gen.calls)
}

func TestOrchestratorNeverReturnsConfidentGeneric(t *testing.T) {
	fastRetries(t)

	inputs := []model.ClassificationInput{
		{},
		{Supplier: model.Supplier{Name: "Zzkqwx"}},
		{RawDescription: "qwerty plugh", TotalValue: 500},
		{Supplier: model.Supplier{Name: "Posto Shell"}, RawDescription: "diesel"},
		{RawDescription: "fertilizante adubo npk", TotalValue: 3000},
	}

	for _, disableAI := range []bool{true, false} {
		for _, input := range inputs {
			var orch *Orchestrator
			if disableAI {
				orch = NewOrchestrator(nil, Config{DisableAI: true}, nil)
			} else {
				orch = NewOrchestrator(NewAIClassifier(&mockGenerator{errs: []error{
					common.ErrAIUnavailable, common.ErrAIUnavailable, common.ErrAIUnavailable,
				}}), Config{}, nil)
			}

			got := orch.Classify(context.Background(), input)

			require.True(t, got.Category.IsValid(), "category %q", got.Category)
			assert.GreaterOrEqual(t, got.Confidence, 0.0)
			assert.LessOrEqual(t, got.Confidence, 1.0)
			if got.Category == model.CategoryOther {
				assert.LessOrEqual(t, got.Confidence, 0.4)
			}
		}
	}
}
