package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// documentRule pairs a fiscal-document regex with a category and subcategory.
// These fire on phrasing like "nota fiscal ... diesel" or "fatura ... energia".
type documentRule struct {
	regex       *regexp.Regexp
	category    model.Category
	subcategory string
	confidence  float64
}

var documentRules = []documentRule{
	{regexp.MustCompile(`\b(nf|nota fiscal|cupom)\b.*\b(combust[íi]vel|gasolina|diesel|etanol)\b`),
		model.CategoryMaintenance, "Combustíveis e Lubrificantes", 0.8},
	{regexp.MustCompile(`\b(nf|nota fiscal|cupom)\b.*\b(pe[çc]a|componente|acess[óo]rio)\b`),
		model.CategoryMaintenance, "Peças e Componentes", 0.75},
	{regexp.MustCompile(`\b(nf|nota fiscal|cupom)\b.*\b(servi[çc]o|m[ãa]o de obra)\b`),
		model.CategoryOperationalServices, "Serviços Gerais", 0.75},
	{regexp.MustCompile(`\b(nf|nota fiscal|cupom)\b.*\b(material|suprimento|insumo)\b`),
		model.CategoryAgriculturalInputs, "Insumos Diversos", 0.7},
	{regexp.MustCompile(`\b(fatura|conta|cobran[çc]a)\b.*\b(energia|luz|eletricidade|el[ée]trica)\b`),
		model.CategoryInfrastructure, "Energia Elétrica", 0.8},
	// No trailing word boundary here: \b is ASCII-only and never matches
	// before the accented "água".
	{regexp.MustCompile(`\b(fatura|conta|cobran[çc]a)\b.*(água|agua|saneamento|esgoto)`),
		model.CategoryInfrastructure, "Água e Esgoto", 0.8},
	{regexp.MustCompile(`\b(fatura|conta|cobran[çc]a)\b.*\b(telefone|celular|m[óo]vel|internet|telecom)\b`),
		model.CategoryInfrastructure, "Telecomunicações", 0.8},
}

// termGroup is an ordered set of domain phrases mapping to a subcategory.
type termGroup struct {
	category    model.Category
	subcategory string
	terms       []string
	confidence  float64
}

var termGroups = []termGroup{
	{model.CategoryAdministrative, "Serviços Administrativos",
		[]string{"assessoria", "consultoria", "honorário", "honorarios", "advocacia", "contabilidade", "gestão", "gestao", "administração", "administracao"}, 0.7},
	{model.CategoryTaxesAndFees, "Impostos",
		[]string{"imposto", "tributo", "icms", "iptu", "ipva", "itr", "irpj", "csll", "pis", "cofins", "inss", "fgts", "darf"}, 0.8},
	{model.CategoryInfrastructure, "Serviços Básicos",
		[]string{"energia", "elétrica", "eletrica", "água", "agua", "saneamento", "telefone", "internet", "celular", "telecom"}, 0.8},
	{model.CategoryInfrastructure, "Construções e Reformas",
		[]string{"construção", "construcao", "reforma", "obra", "cimento", "tijolo", "areia", "telha", "madeira", "pintura"}, 0.7},
	{model.CategoryAgriculturalInputs, "Fertilizantes",
		[]string{"fertilizante", "adubo", "npk", "ureia", "nitrogênio", "nitrogenio", "potássio", "potassio", "fósforo", "fosforo", "nutriente"}, 0.8},
	{model.CategoryAgriculturalInputs, "Sementes",
		[]string{"semente", "muda", "plantio", "soja", "milho", "trigo", "arroz", "feijão", "feijao", "algodão", "algodao"}, 0.8},
	{model.CategoryAgriculturalInputs, "Defensivos Agrícolas",
		[]string{"defensivo", "agrotóxico", "agrotoxico", "herbicida", "fungicida", "inseticida", "pesticida", "praga"}, 0.8},
	{model.CategoryInvestments, "Aquisição de Máquinas",
		[]string{"trator", "colheitadeira", "plantadeira", "pulverizador", "implemento", "maquinário", "maquinario"}, 0.7},
	{model.CategoryInvestments, "Aquisição de Veículos",
		[]string{"veículo", "veiculo", "caminhão", "caminhao", "caminhonete", "pickup", "automóvel", "automovel"}, 0.7},
	{model.CategoryMaintenance, "Combustíveis e Lubrificantes",
		[]string{"combustível", "combustivel", "diesel", "gasolina", "etanol", "álcool", "alcool", "posto", "abastecimento"}, 0.8},
	{model.CategoryMaintenance, "Peças e Componentes",
		[]string{"peça", "peca", "reparo", "conserto", "manutenção", "manutencao", "oficina", "mecânica", "mecanica", "revisão", "revisao"}, 0.7},
	{model.CategoryHumanResources, "Salários e Encargos",
		[]string{"salário", "salario", "folha", "funcionário", "funcionario", "colaborador", "encargo", "férias", "ferias", "13º"}, 0.8},
	{model.CategoryInsurance, "Seguros",
		[]string{"seguro", "apólice", "apolice", "cobertura", "sinistro", "proteção", "protecao", "plano de saúde", "plano de saude"}, 0.8},
	{model.CategoryOperationalServices, "Frete e Transporte",
		[]string{"frete", "transporte", "logística", "logistica", "carga", "descarga", "armazenagem", "armazém", "armazem", "silo"}, 0.7},
}

// classifyByPatterns is the deterministic offline substitute for the AI call.
// Document regexes run first, then the domain term groups, then the
// value-magnitude heuristic.
func classifyByPatterns(text string, totalValue float64) model.ClassificationResult {
	for _, rule := range documentRules {
		if rule.regex.MatchString(text) {
			return model.ClassificationResult{
				Category:    rule.category,
				Subcategory: rule.subcategory,
				Confidence:  rule.confidence,
				Reason:      fmt.Sprintf("documento fiscal com padrão de %s", rule.subcategory),
				Source:      model.SourcePattern,
			}
		}
	}

	for _, group := range termGroups {
		for _, term := range group.terms {
			if strings.Contains(text, term) {
				return model.ClassificationResult{
					Category:    group.category,
					Subcategory: group.subcategory,
					Confidence:  group.confidence,
					Reason:      fmt.Sprintf("padrão %q associado a %s", term, group.category),
					Source:      model.SourcePattern,
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
		Reason:     "nenhum padrão específico identificado",
		Source:     model.SourcePattern,
	}
}

// classifyByValue applies the value-magnitude heuristic: very large amounts
// look like capital investments, mid-size ones like input purchases, and
// trivial ones like administrative expenses.
func classifyByValue(totalValue float64) (model.ClassificationResult, bool) {
	switch {
	case totalValue > 10000:
		return model.ClassificationResult{
			Category:    model.CategoryInvestments,
			Subcategory: "Aquisição de Alto Valor",
			Confidence:  0.5,
			Reason:      fmt.Sprintf("valor alto (%.2f) sugere investimento ou aquisição significativa", totalValue),
			Source:      model.SourceValueHeuristic,
		}, true
	case totalValue > 5000:
		return model.ClassificationResult{
			Category:    model.CategoryAgriculturalInputs,
			Subcategory: "Insumos Diversos",
			Confidence:  0.4,
			Reason:      fmt.Sprintf("valor significativo (%.2f) sugere compra de insumos", totalValue),
			Source:      model.SourceValueHeuristic,
		}, true
	case totalValue > 0 && totalValue < 100:
		return model.ClassificationResult{
			Category:    model.CategoryAdministrative,
			Subcategory: "Despesas Pequenas",
			Confidence:  0.3,
			Reason:      fmt.Sprintf("valor pequeno (%.2f) sugere despesa administrativa", totalValue),
			Source:      model.SourceValueHeuristic,
		}, true
	default:
		return model.ClassificationResult{}, false
	}
}
