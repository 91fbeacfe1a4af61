package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

func TestClassifyByPatternsDocumentRules(t *testing.T) {
	tests := []struct {
		name            string
		text            string
		wantCategory    model.Category
		wantSubcategory string
		wantConfidence  float64
	}{
		{
			name:            "fiscal note with fuel",
			text:            "nota fiscal 1234 referente a diesel comum",
			wantCategory:    model.CategoryMaintenance,
			wantSubcategory: "Combustíveis e Lubrificantes",
			wantConfidence:  0.8,
		},
		{
			name:            "fiscal note with service",
			text:            "nf 99 prestação de serviço de solda",
			wantCategory:    model.CategoryOperationalServices,
			wantSubcategory: "Serviços Gerais",
			wantConfidence:  0.75,
		},
		{
			name:            "power bill",
			text:            "fatura referente a energia elétrica do mês",
			wantCategory:    model.CategoryInfrastructure,
			wantSubcategory: "Energia Elétrica",
			wantConfidence:  0.8,
		},
		{
			name:            "water bill",
			text:            "conta de água e esgoto sanepar",
			wantCategory:    model.CategoryInfrastructure,
			wantSubcategory: "Água e Esgoto",
			wantConfidence:  0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyByPatterns(tt.text, 0)

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantSubcategory, got.Subcategory)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, model.SourcePattern, got.Source)
		})
	}
}

func TestClassifyByPatternsTermGroups(t *testing.T) {
	got := classifyByPatterns("apólice renovada com nova cobertura", 0)

	assert.Equal(t, model.CategoryInsurance, got.Category)
	assert.Equal(t, "Seguros", got.Subcategory)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
	assert.Equal(t, model.SourcePattern, got.Source)
}

func TestClassifyByPatternsFallsBackToValue(t *testing.T) {
	got := classifyByPatterns("xyzzy qwerty", 15000)

	assert.Equal(t, model.CategoryInvestments, got.Category)
	assert.Equal(t, "Aquisição de Alto Valor", got.Subcategory)
	assert.Equal(t, model.SourceValueHeuristic, got.Source)
}

func TestClassifyByPatternsNoMatch(t *testing.T) {
	got := classifyByPatterns("xyzzy qwerty", 500)

	assert.Equal(t, model.CategoryOther, got.Category)
	assert.InDelta(t, 0.3, got.Confidence, 1e-9)
	assert.Equal(t, model.SourcePattern, got.Source)
}

func TestClassifyByValue(t *testing.T) {
	tests := []struct {
		name           string
		wantCategory   model.Category
		value          float64
		wantConfidence float64
		wantMatch      bool
	}{
		{name: "high value", value: 10000.01, wantCategory: model.CategoryInvestments, wantConfidence: 0.5, wantMatch: true},
		{name: "mid value", value: 7500, wantCategory: model.CategoryAgriculturalInputs, wantConfidence: 0.4, wantMatch: true},
		{name: "small value", value: 50, wantCategory: model.CategoryAdministrative, wantConfidence: 0.3, wantMatch: true},
		{name: "unremarkable value", value: 500, wantMatch: false},
		{name: "zero value", value: 0, wantMatch: false},
		{name: "boundary at 10000 is not high", value: 10000, wantCategory: model.CategoryAgriculturalInputs, wantConfidence: 0.4, wantMatch: true},
		{name: "boundary at 100 is unremarkable", value: 100, wantMatch: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifyByValue(tt.value)

			require.Equal(t, tt.wantMatch, ok)
			if !tt.wantMatch {
				return
			}
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, model.SourceValueHeuristic, got.Source)
		})
	}
}
