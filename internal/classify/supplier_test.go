package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

func TestClassifyBySupplier(t *testing.T) {
	tests := []struct {
		name            string
		supplier        string
		text            string
		wantCategory    model.Category
		wantSubcategory string
		wantConfidence  float64
	}{
		{
			name:            "fuel station by name",
			supplier:        "Posto Shell Ltda",
			text:            "posto shell ltda diesel s10",
			wantCategory:    model.CategoryMaintenance,
			wantSubcategory: "Combustíveis e Lubrificantes",
			wantConfidence:  0.85,
		},
		{
			name:            "cooperative resolves to inputs",
			supplier:        "Cooperativa Agroindustrial Coamo",
			text:            "cooperativa agroindustrial coamo",
			wantCategory:    model.CategoryAgriculturalInputs,
			wantSubcategory: "Fertilizantes",
			wantConfidence:  0.85,
		},
		{
			name:            "power utility",
			supplier:        "COPEL Distribuição S.A.",
			text:            "copel distribuição s.a. fatura mensal",
			wantCategory:    model.CategoryInfrastructure,
			wantSubcategory: "Energia Elétrica",
			wantConfidence:  0.8,
		},
		{
			name:            "law firm",
			supplier:        "Silva & Associados Advocacia",
			text:            "silva & associados advocacia",
			wantCategory:    model.CategoryAdministrative,
			wantSubcategory: "Honorários Advocatícios",
			wantConfidence:  0.8,
		},
		{
			name:            "bank fees",
			supplier:        "Banco Bradesco S.A.",
			text:            "banco bradesco s.a. tarifa pacote",
			wantCategory:    model.CategoryAdministrative,
			wantSubcategory: "Despesas Bancárias",
			wantConfidence:  0.75,
		},
		{
			name:            "brand found only in text",
			supplier:        "Comercial XYZ",
			text:            "comercial xyz revenda ipiranga combustíveis",
			wantCategory:    model.CategoryMaintenance,
			wantSubcategory: "Combustíveis e Lubrificantes",
			wantConfidence:  0.85,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyBySupplier(tt.supplier, tt.text)

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantSubcategory, got.Subcategory)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
			assert.Equal(t, model.SourceSupplier, got.Source)
		})
	}
}

func TestClassifyBySupplierUnknown(t *testing.T) {
	got := classifyBySupplier("Empresa Genérica Ltda", "empresa genérica ltda produto diverso")

	assert.Equal(t, model.CategoryOther, got.Category)
	assert.InDelta(t, 0.3, got.Confidence, 1e-9)
	assert.Equal(t, model.SourceSupplier, got.Source)
}

func TestClassifyBySupplierFirstRuleWins(t *testing.T) {
	// Matches both the fuel-station rule and the bank rule; table order
	// decides.
	got := classifyBySupplier("Posto Itau", "posto itau")

	assert.Equal(t, model.CategoryMaintenance, got.Category)
	assert.Equal(t, "Combustíveis e Lubrificantes", got.Subcategory)
}
