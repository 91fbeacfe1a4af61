package model

import "strings"

// Category is a top-level taxonomy bucket for an expense. The set is closed
// and defined in code; new buckets require a code change. The string values
// match the canonical names stored in the tipos_despesa table.
type Category string

// All known categories, in declaration (priority) order.
const (
	CategoryAdministrative      Category = "ADMINISTRATIVAS"
	CategoryTaxesAndFees        Category = "IMPOSTOS E TAXAS"
	CategoryInfrastructure      Category = "INFRAESTRUTURA E UTILIDADES"
	CategoryAgriculturalInputs  Category = "INSUMOS AGRÍCOLAS"
	CategoryInvestments         Category = "INVESTIMENTOS"
	CategoryMaintenance         Category = "MANUTENÇÃO E OPERAÇÃO"
	CategoryHumanResources      Category = "RECURSOS HUMANOS"
	CategoryInsurance           Category = "SEGUROS E PROTEÇÃO"
	CategoryOperationalServices Category = "SERVIÇOS OPERACIONAIS"
	CategoryOther               Category = "OUTRAS"
)

// Categories returns every valid category in stable priority order.
// Iteration order matters: the keyword scorer resolves ties by it.
func Categories() []Category {
	return []Category{
		CategoryAdministrative,
		CategoryTaxesAndFees,
		CategoryInfrastructure,
		CategoryAgriculturalInputs,
		CategoryInvestments,
		CategoryMaintenance,
		CategoryHumanResources,
		CategoryInsurance,
		CategoryOperationalServices,
		CategoryOther,
	}
}

// IsValid reports whether c is one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Description returns the human-readable description used in prompts and
// CLI listings.
func (c Category) Description() string {
	switch c {
	case CategoryAdministrative:
		return "Despesas administrativas, honorários, serviços bancários, gestão"
	case CategoryTaxesAndFees:
		return "Impostos, taxas, tributos, contribuições fiscais"
	case CategoryInfrastructure:
		return "Energia, água, internet, telefone, construções, reformas"
	case CategoryAgriculturalInputs:
		return "Fertilizantes, sementes, defensivos, corretivos, produtos para plantio"
	case CategoryInvestments:
		return "Aquisição de imóveis, máquinas, veículos, infraestrutura"
	case CategoryMaintenance:
		return "Combustíveis, peças, reparos, manutenção de equipamentos"
	case CategoryHumanResources:
		return "Salários, encargos, mão de obra, contratações"
	case CategoryInsurance:
		return "Seguros diversos, proteção patrimonial, planos de saúde"
	case CategoryOperationalServices:
		return "Fretes, transportes, armazenagem, serviços terceirizados"
	case CategoryOther:
		return "Despesas diversas que não se enquadram nas categorias anteriores"
	default:
		return ""
	}
}

// categorySynonyms maps common near-miss spellings returned by the model to
// canonical categories. Matching is by substring on the uppercased input, in
// slice order, so more specific entries come first.
var categorySynonyms = []struct {
	term     string
	category Category
}{
	{"ADMINISTRATIV", CategoryAdministrative},
	{"IMPOSTO", CategoryTaxesAndFees},
	{"TAXA", CategoryTaxesAndFees},
	{"TRIBUT", CategoryTaxesAndFees},
	{"INFRAESTRUTURA", CategoryInfrastructure},
	{"UTILIDADE", CategoryInfrastructure},
	{"INSUMO", CategoryAgriculturalInputs},
	{"AGRÍCOLA", CategoryAgriculturalInputs},
	{"AGRICOLA", CategoryAgriculturalInputs},
	{"AGRICULTURAL", CategoryAgriculturalInputs},
	{"INVESTIMENTO", CategoryInvestments},
	{"INVESTMENT", CategoryInvestments},
	{"MANUTENÇÃO", CategoryMaintenance},
	{"MANUTENCAO", CategoryMaintenance},
	{"MAINTENANCE", CategoryMaintenance},
	{"OPERAÇÃO", CategoryMaintenance},
	{"OPERACAO", CategoryMaintenance},
	{"RECURSOS HUMANOS", CategoryHumanResources},
	{"RH", CategoryHumanResources},
	{"HUMAN", CategoryHumanResources},
	{"SEGURO", CategoryInsurance},
	{"PROTEÇÃO", CategoryInsurance},
	{"PROTECAO", CategoryInsurance},
	{"INSURANCE", CategoryInsurance},
	{"SERVIÇO", CategoryOperationalServices},
	{"SERVICO", CategoryOperationalServices},
	{"OPERACIONA", CategoryOperationalServices},
	{"OUTRO", CategoryOther},
	{"OUTRA", CategoryOther},
	{"DIVERSA", CategoryOther},
	{"OTHER", CategoryOther},
}

// NormalizeCategory coerces free-text category names (typically from the
// model's verdict) to a canonical Category. The second return value is false
// when the name could not be mapped; callers must treat that as CategoryOther.
func NormalizeCategory(name string) (Category, bool) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return CategoryOther, false
	}

	if c := Category(upper); c.IsValid() {
		return c, true
	}

	for _, syn := range categorySynonyms {
		if strings.Contains(upper, syn.term) {
			return syn.category, true
		}
	}

	return CategoryOther, false
}
