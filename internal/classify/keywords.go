package classify

import (
	"fmt"
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// categoryKeywords maps each category to the terms that score points for it.
// CategoryOther is intentionally absent: the generic bucket never earns points.
var categoryKeywords = map[model.Category][]string{
	model.CategoryAdministrative: {
		"honorario", "honorário", "advocaticio", "advocatício", "agronomico", "agronômico",
		"contabil", "contábil", "despesa bancaria", "despesa bancária", "banco", "tarifa",
		"escritorio", "escritório", "administracao", "administração", "gestao", "gestão", "secretaria",
	},
	model.CategoryTaxesAndFees: {
		"incra", "ccir", "iptu", "ipva", "itr", "imposto", "taxa", "tributo",
		"contribuicao", "contribuição", "fiscal", "darf", "gnre", "icms", "pis",
		"cofins", "csll", "irpj", "inss", "fgts", "alvara", "alvará",
	},
	model.CategoryInfrastructure: {
		"energia", "luz", "eletrica", "elétrica", "conta de luz", "eletricidade",
		"agua", "água", "esgoto", "arrendamento", "construcao", "construção", "reforma",
		"cimento", "tijolo", "telha", "internet", "telefone", "celular",
		"comunicacao", "comunicação", "wifi", "fibra",
	},
	model.CategoryAgriculturalInputs: {
		"fertilizante", "adubo", "semente", "sementes", "npk", "ureia", "calcario", "calcário",
		"defensivo", "agrotóxico", "herbicida", "inseticida", "fungicida", "corretivo", "insumo",
		"plantio", "cultivo", "lavoura", "safra", "agricultura", "agrícola",
		"agropecuaria", "agropecuária", "fazenda", "rural", "plantação", "plantacao",
	},
	model.CategoryInvestments: {
		"aquisicao", "aquisição", "imovel", "imóvel", "maquina", "máquina", "trator",
		"veiculo", "veículo", "caminhao", "caminhão", "infraestrutura rural",
		"investimento", "aplicacao", "aplicação", "patrimonio", "patrimônio",
	},
	model.CategoryMaintenance: {
		"combustivel", "combustível", "gasolina", "diesel", "etanol", "manutencao", "manutenção",
		"conserto", "reparo", "ferramenta", "peca", "peça", "componente", "pneu", "filtro",
		"oleo", "óleo", "oficina", "mecanica", "mecânica", "revisao", "revisão",
	},
	model.CategoryHumanResources: {
		"salario", "salário", "encargo", "folha", "mao de obra", "mão de obra",
		"temporario", "temporário", "trabalhador", "funcionario", "funcionário",
		"colaborador", "empregado", "contratacao", "contratação",
		"ferias", "férias", "decimo terceiro", "décimo terceiro", "rescisao", "rescisão",
	},
	model.CategoryInsurance: {
		"seguro", "protecao", "proteção", "prestamista", "apolice", "apólice",
		"cobertura", "sinistro", "premio", "prêmio", "seguradora",
		"plano de saude", "plano de saúde", "assistencia", "assistência",
	},
	model.CategoryOperationalServices: {
		"frete", "transporte", "colheita", "pulverizacao", "pulverização", "secagem",
		"armazenagem", "terceirizado", "logistica", "logística", "entrega",
		"distribuicao", "distribuição", "armazem", "armazém", "silo", "estocagem",
		"beneficiamento", "processamento",
	},
}

// nameRule maps highly specific terms straight to a subcategory name.
// A name match is strictly more informative than a category match, so the
// scorer tries these first.
type nameRule struct {
	name     string
	category model.Category
	keywords []string
}

var nameRules = []nameRule{
	{"Despesas Bancárias", model.CategoryAdministrative,
		[]string{"despesa bancaria", "despesa bancária", "tarifa bancaria", "tarifa bancária", "taxa bancaria", "ted", "doc", "transferencia", "transferência"}},
	{"Honorários Advocatícios", model.CategoryAdministrative,
		[]string{"advocaticio", "advocatício", "advogado", "juridico", "jurídico", "advocacia"}},
	{"Honorários Agronômicos", model.CategoryAdministrative,
		[]string{"agronomo", "agrônomo", "honorario agronomico", "honorário agronômico", "consultoria agronomica", "consultoria agronômica"}},
	{"Honorários Contábeis", model.CategoryAdministrative,
		[]string{"contador", "contabilidade", "escritorio contabil", "escritório contábil", "servico contabil", "serviço contábil"}},
	{"INCRA-CCIR", model.CategoryTaxesAndFees, []string{"incra", "ccir", "cadastro rural"}},
	{"IPTU", model.CategoryTaxesAndFees, []string{"iptu", "imposto predial"}},
	{"IPVA", model.CategoryTaxesAndFees, []string{"ipva", "licenciamento"}},
	{"ITR", model.CategoryTaxesAndFees, []string{"itr", "imposto territorial rural"}},
	{"Arrendamento de Terras", model.CategoryInfrastructure,
		[]string{"arrendamento", "aluguel de terra", "aluguel de area", "aluguel de área"}},
	{"Construções e Reformas", model.CategoryInfrastructure,
		[]string{"construcao", "construção", "reforma", "edificacao", "edificação", "galpao", "galpão"}},
	{"Energia Elétrica", model.CategoryInfrastructure,
		[]string{"energia", "conta de luz", "fatura de energia", "eletricidade", "copel", "cemig", "cpfl", "enel"}},
	{"Materiais de Construção", model.CategoryInfrastructure,
		[]string{"material de construcao", "material de construção", "cimento", "tijolo", "telha", "ferragem"}},
	{"Internet", model.CategoryInfrastructure, []string{"internet", "banda larga", "fibra", "provedor"}},
	{"Telefonia", model.CategoryInfrastructure, []string{"telefone", "celular", "linha telefonica", "linha telefônica", "operadora"}},
	{"Corretivos", model.CategoryAgriculturalInputs,
		[]string{"calcario", "calcário", "corretivo", "correcao de solo", "correção de solo"}},
	{"Defensivos Agrícolas", model.CategoryAgriculturalInputs,
		[]string{"defensivo", "agrotóxico", "agrotoxico", "herbicida", "inseticida", "fungicida", "pesticida"}},
	{"Fertilizantes", model.CategoryAgriculturalInputs,
		[]string{"fertilizante", "adubo", "npk", "ureia", "nitrogenio", "nitrogênio", "fosforo", "fósforo", "potassio", "potássio"}},
	{"Sementes", model.CategoryAgriculturalInputs, []string{"semente", "muda", "cultivar", "variedade"}},
	{"Aquisição de Imóveis", model.CategoryInvestments,
		[]string{"aquisicao de imovel", "aquisição de imóvel", "compra de imovel", "compra de imóvel", "terreno", "sitio", "sítio"}},
	{"Aquisição de Máquinas", model.CategoryInvestments,
		[]string{"compra de maquina", "compra de máquina", "trator", "colheitadeira", "plantadeira", "pulverizador", "implemento"}},
	{"Aquisição de Veículos", model.CategoryInvestments,
		[]string{"compra de veiculo", "compra de veículo", "caminhao", "caminhão", "pickup", "picape", "utilitario", "utilitário"}},
	{"Infraestrutura Rural", model.CategoryInvestments,
		[]string{"cerca", "curral", "bebedouro", "cocheira", "estabulo", "estábulo", "barracao", "barracão"}},
	{"Combustíveis e Lubrificantes", model.CategoryMaintenance,
		[]string{"combustivel", "combustível", "gasolina", "diesel", "etanol", "abastecimento", "posto"}},
	{"Ferramentas", model.CategoryMaintenance, []string{"ferramenta", "furadeira", "serra", "alicate"}},
	{"Manutenção de Máquinas", model.CategoryMaintenance,
		[]string{"manutencao", "manutenção", "conserto", "reparo", "revisao", "revisão", "oficina", "mecanica", "mecânica"}},
	{"Peças e Componentes", model.CategoryMaintenance,
		[]string{"peca", "peça", "componente", "acessorio", "acessório", "reposicao", "reposição"}},
	{"Pneus e Filtros", model.CategoryMaintenance, []string{"pneu", "filtro", "borracharia", "recapagem"}},
	{"Mão de Obra Temporária", model.CategoryHumanResources,
		[]string{"mao de obra temporaria", "mão de obra temporária", "diarista", "safrista", "sazonal"}},
	{"Salários e Encargos", model.CategoryHumanResources,
		[]string{"salario", "salário", "folha de pagamento", "holerite", "contracheque", "remuneracao", "remuneração"}},
	{"Seguro Agrícola", model.CategoryInsurance,
		[]string{"seguro agricola", "seguro agrícola", "seguro rural", "seguro safra", "proagro"}},
	{"Seguro de Ativos", model.CategoryInsurance,
		[]string{"seguro patrimonial", "seguro de bem", "seguro de maquina", "seguro de máquina"}},
	{"Seguro Prestamista", model.CategoryInsurance,
		[]string{"seguro prestamista", "seguro de financiamento", "seguro de credito", "seguro de crédito"}},
	{"Colheita Terceirizada", model.CategoryOperationalServices,
		[]string{"colheita terceirizada", "servico de colheita", "serviço de colheita", "colhedora"}},
	{"Frete e Transporte", model.CategoryOperationalServices,
		[]string{"frete", "carreto", "transportadora", "logistica", "logística"}},
	{"Pulverização", model.CategoryOperationalServices,
		[]string{"pulverizacao", "pulverização", "servico de pulverizacao", "serviço de pulverização"}},
	{"Secagem e Armazenagem", model.CategoryOperationalServices,
		[]string{"secagem", "armazenagem", "silo", "armazem", "armazém", "estocagem"}},
}

// keywordWeight scores a keyword by length: longer terms are more specific.
func keywordWeight(keyword string) int {
	switch n := len([]rune(keyword)); {
	case n > 10:
		return 3
	case n > 5:
		return 2
	default:
		return 1
	}
}

// earlyBonus grants one extra point when the keyword shows up within the
// first 20 characters, where supplier and document-type names usually appear.
const earlyBonusWindow = 20

// classifyByKeywords scores the analysis text against the keyword tables.
// The name-level table is tried first; a score of 2 or more there wins
// outright and carries the exact subcategory name.
func classifyByKeywords(text string) model.ClassificationResult {
	if best, points := bestNameRule(text); best != nil && points >= 2 {
		return model.ClassificationResult{
			Category:    best.category,
			Subcategory: best.name,
			Confidence:  keywordConfidence(points),
			Reason:      fmt.Sprintf("termos específicos indicam %q (%d pontos)", best.name, points),
			Source:      model.SourceKeyword,
		}
	}

	bestCategory := model.CategoryOther
	bestPoints := 0
	var bestHits []string

	for _, category := range model.Categories() {
		keywords, ok := categoryKeywords[category]
		if !ok {
			continue
		}

		points := 0
		var hits []string
		for _, keyword := range keywords {
			idx := strings.Index(text, keyword)
			if idx < 0 {
				continue
			}
			p := keywordWeight(keyword)
			if idx < earlyBonusWindow {
				p++
			}
			points += p
			hits = append(hits, keyword)
		}

		// Strictly greater keeps the first category in declaration order on ties.
		if points > bestPoints {
			bestPoints = points
			bestCategory = category
			bestHits = hits
		}
	}

	if bestPoints == 0 {
		return model.ClassificationResult{
			Category:   model.CategoryOther,
			Confidence: 0.1,
			Reason:     "nenhuma palavra-chave encontrada",
			Source:     model.SourceKeyword,
		}
	}

	return model.ClassificationResult{
		Category:   bestCategory,
		Confidence: keywordConfidence(bestPoints),
		Reason:     "palavras-chave: " + strings.Join(bestHits, ", "),
		Source:     model.SourceKeyword,
		Keywords:   bestHits,
	}
}

func bestNameRule(text string) (*nameRule, int) {
	var best *nameRule
	bestPoints := 0

	for i := range nameRules {
		points := 0
		for _, keyword := range nameRules[i].keywords {
			if strings.Contains(text, keyword) {
				points += keywordWeight(keyword)
			}
		}
		if points > bestPoints {
			bestPoints = points
			best = &nameRules[i]
		}
	}

	return best, bestPoints
}

func keywordConfidence(points int) float64 {
	confidence := 0.5 + 0.1*float64(points)
	if confidence > 0.9 {
		return 0.9
	}
	return confidence
}
