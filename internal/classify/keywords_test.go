package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

func TestClassifyByKeywords(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantCategory    model.Category
		wantSubcategory string
		minConfidence   float64
	}{
		{
			name:            "specific terms resolve to subcategory",
			text:            "honorários advocatícios processo trabalhista advocacia silva",
			wantCategory:    model.CategoryAdministrative,
			wantSubcategory: "Honorários Advocatícios",
			minConfidence:   0.7,
		},
		{
			name:            "fuel terms resolve to maintenance",
			text:            "abastecimento diesel s10 200 litros posto",
			wantCategory:    model.CategoryMaintenance,
			wantSubcategory: "Combustíveis e Lubrificantes",
			minConfidence:   0.7,
		},
		{
			name:            "fertilizer terms resolve to inputs",
			text:            "adubo npk 20-05-20 fertilizante granulado",
			wantCategory:    model.CategoryAgriculturalInputs,
			wantSubcategory: "Fertilizantes",
			minConfidence:   0.7,
		},
		{
			name:          "tax terms resolve to taxes",
			text:          "pagamento imposto tributo contribuição fiscal",
			wantCategory:  model.CategoryTaxesAndFees,
			minConfidence: 0.6,
		},
		{
			name:          "payroll terms resolve to human resources",
			text:          "pagamento colaborador empregado contratação",
			wantCategory:  model.CategoryHumanResources,
			minConfidence: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyByKeywords(tt.text)

			assert.Equal(t, tt.wantCategory, got.Category)
			if tt.wantSubcategory != "" {
				assert.Equal(t, tt.wantSubcategory, got.Subcategory)
			}
			assert.GreaterOrEqual(t, got.Confidence, tt.minConfidence)
			assert.Equal(t, model.SourceKeyword, got.Source)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestClassifyByKeywordsNoMatch(t *testing.T) {
	got := classifyByKeywords("xyzzy qwerty plugh")

	assert.Equal(t, model.CategoryOther, got.Category)
	assert.InDelta(t, 0.1, got.Confidence, 1e-9)
	assert.Equal(t, model.SourceKeyword, got.Source)
	assert.Empty(t, got.Keywords)
}

func TestClassifyByKeywordsConfidenceCap(t *testing.T) {
	// Pile up enough keywords that the raw score would exceed the cap.
	text := "fertilizante adubo semente defensivo herbicida inseticida fungicida calcário insumo plantio lavoura safra"
	got := classifyByKeywords(text)

	require.Equal(t, model.CategoryAgriculturalInputs, got.Category)
	assert.LessOrEqual(t, got.Confidence, 0.9)
}

func TestKeywordWeight(t *testing.T) {
	assert.Equal(t, 1, keywordWeight("luz"))
	assert.Equal(t, 2, keywordWeight("imposto"))
	assert.Equal(t, 3, keywordWeight("fertilizante"))
	// Rune count, not byte count: 10 runes stays in the middle band.
	assert.Equal(t, 2, keywordWeight("manutenção"))
}

func TestKeywordConfidence(t *testing.T) {
	assert.InDelta(t, 0.6, keywordConfidence(1), 1e-9)
	assert.InDelta(t, 0.8, keywordConfidence(3), 1e-9)
	assert.InDelta(t, 0.9, keywordConfidence(10), 1e-9)
}
