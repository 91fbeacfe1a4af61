package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// pairRule fires only when two independent token groups co-occur: each group
// alone is too generic, together they imply a category the keyword and AI
// passes both missed.
type pairRule struct {
	first       *regexp.Regexp
	second      *regexp.Regexp
	category    model.Category
	subcategory string
	reason      string
}

var pairRules = []pairRule{
	{regexp.MustCompile(`\b(loja|comercio|com[ée]rcio|mercado|supermercado)\b`),
		regexp.MustCompile(`\b(agro|rural|campo|fazenda|agricultura)\b`),
		model.CategoryAgriculturalInputs, "Insumos Diversos", "comércio agrícola detectado"},
	{regexp.MustCompile(`\b(posto|abastecimento)\b`),
		regexp.MustCompile(`\b(ve[íi]culo|carro|caminh[ãa]o|trator)\b`),
		model.CategoryMaintenance, "Combustíveis e Lubrificantes", "abastecimento de veículos detectado"},
	{regexp.MustCompile(`\b(nota fiscal|nfe?|nf-e|cupom fiscal|recibo)\b`),
		regexp.MustCompile(`\b(posto|gasolina|diesel|etanol|combust[íi]vel)\b`),
		model.CategoryMaintenance, "Combustíveis e Lubrificantes", "documento fiscal de combustível"},
	{regexp.MustCompile(`\b(nota fiscal|nfe?|nf-e|cupom fiscal|recibo)\b`),
		regexp.MustCompile(`\b(material|ferramenta|equipamento|pe[çc]a)\b`),
		model.CategoryMaintenance, "Peças e Componentes", "documento fiscal de material"},
	{regexp.MustCompile(`\b(nota fiscal|nfe?|nf-e|cupom fiscal|recibo)\b`),
		regexp.MustCompile(`\b(servi[çc]o|m[ãa]o de obra|presta[çc][ãa]o)\b`),
		model.CategoryOperationalServices, "Serviços Gerais", "documento fiscal de serviço"},
}

// contextTerm maps a single strong contextual token to a subcategory. These
// cover expenses that the broad taxonomy keywords never name directly.
type contextTerm struct {
	category    model.Category
	subcategory string
	terms       []string
}

var contextTerms = []contextTerm{
	{model.CategoryAdministrative, "Alimentação",
		[]string{"restaurante", "lanchonete", "refeição", "refeicao", "almoço", "almoco", "jantar"}},
	{model.CategoryAdministrative, "Material de Escritório",
		[]string{"papelaria", "caneta", "papel", "impressão", "impressao", "toner"}},
	{model.CategoryAdministrative, "Hospedagem",
		[]string{"hotel", "pousada", "hospedagem", "diária", "diaria", "estadia"}},
	{model.CategoryAdministrative, "Serviços de TI",
		[]string{"software", "sistema", "informática", "informatica", "computador", "backup"}},
	{model.CategoryMaintenance, "Peças e Componentes",
		[]string{"peça", "peca", "acessório", "acessorio", "componente", "reparo", "conserto"}},
	{model.CategoryMaintenance, "Ferramentas",
		[]string{"ferramenta", "equipamento", "máquina", "maquina", "implemento"}},
}

// disambiguate is the last-resort pass, invoked only when the keyword and AI
// strategies both collapsed to the generic bucket. It always returns a result.
func disambiguate(text string, totalValue float64) model.ClassificationResult {
	for _, rule := range pairRules {
		if rule.first.MatchString(text) && rule.second.MatchString(text) {
			return model.ClassificationResult{
				Category:    rule.category,
				Subcategory: rule.subcategory,
				Confidence:  0.7,
				Reason:      "análise contextual: " + rule.reason,
				Source:      model.SourceContextual,
			}
		}
	}

	for _, ct := range contextTerms {
		for _, term := range ct.terms {
			if strings.Contains(text, term) {
				return model.ClassificationResult{
					Category:    ct.category,
					Subcategory: ct.subcategory,
					Confidence:  0.7,
					Reason:      fmt.Sprintf("análise contextual: termo %q associado a %s", term, ct.category),
					Source:      model.SourceContextual,
				}
			}
		}
	}

	if result, ok := classifyByValue(totalValue); ok {
		return result
	}

	return model.ClassificationResult{
		Category:   model.CategoryOther,
		Confidence: 0.3,
		Reason:     "análise contextual não identificou categoria",
		Source:     model.SourceContextual,
	}
}
