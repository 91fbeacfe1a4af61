package classify

import (
	"fmt"
	"strings"

	"github.com/Garcia3528/notalfiscalIA/internal/model"
)

// supplierRule matches known vendor names or brands to a category. Table
// order is priority order; the first matching rule wins.
type supplierRule struct {
	category    model.Category
	subcategory string
	terms       []string
	confidence  float64
}

var supplierRules = []supplierRule{
	{model.CategoryMaintenance, "Combustíveis e Lubrificantes",
		[]string{"posto", "ipiranga", "shell", "petrobras", "raizen", "br distribuidora"}, 0.85},
	{model.CategoryMaintenance, "Peças e Componentes",
		[]string{"auto peças", "autopecas", "auto-peças", "mecânica", "mecanica", "oficina", "borracharia", "truck center"}, 0.8},
	{model.CategoryAgriculturalInputs, "Fertilizantes",
		[]string{"cooperativa", "coamo", "cvale", "syngenta", "bayer", "yara", "adubos", "fertilizantes"}, 0.85},
	{model.CategoryAgriculturalInputs, "Sementes",
		[]string{"sementes", "soja semente", "milho semente"}, 0.85},
	{model.CategoryAgriculturalInputs, "Defensivos Agrícolas",
		[]string{"defensivos", "herbicida", "fungicida", "inseticida", "agrotóxico", "agrotoxico"}, 0.85},
	{model.CategoryInfrastructure, "Telefonia",
		[]string{"claro", "vivo", "tim ", "telecom"}, 0.8},
	{model.CategoryInfrastructure, "Energia Elétrica",
		[]string{"copel", "energisa", "cemig", "neoenergia", "enel"}, 0.8},
	{model.CategoryAdministrative, "Alimentação",
		[]string{"supermercado", "carrefour", "assai", "atacadão", "atacadao", "angeloni"}, 0.75},
	{model.CategoryAdministrative, "Hospedagem",
		[]string{"hotel", "pousada", "ibis"}, 0.8},
	{model.CategoryAdministrative, "Honorários Advocatícios",
		[]string{"advocacia", "advogados", "escritorio juridico", "escritório jurídico"}, 0.8},
	{model.CategoryAdministrative, "Honorários Contábeis",
		[]string{"contabilidade", "contador", "escritorio contabil", "escritório contábil"}, 0.8},
	{model.CategoryInsurance, "Seguros",
		[]string{"porto seguro", "bradesco seguros", "mapfre", "allianz"}, 0.85},
	{model.CategoryOperationalServices, "Frete e Transporte",
		[]string{"transportes", "logística", "logistica", "transportadora"}, 0.8},
	{model.CategoryInfrastructure, "Construções e Reformas",
		[]string{"construtora", "madeireira", "material de construção", "ferragens", "depósito", "deposito"}, 0.8},
	{model.CategoryAdministrative, "Despesas Bancárias",
		[]string{"bradesco", "itau", "itaú", "santander", "banco do brasil", "sicredi", "sicoob"}, 0.75},
}

// classifyBySupplier matches the vendor name, then the full analysis text,
// against the known-vendor table. A confident brand match outranks generic
// keyword density, so the orchestrator runs this strategy first.
func classifyBySupplier(supplierName, text string) model.ClassificationResult {
	name := strings.ToLower(supplierName)

	for _, rule := range supplierRules {
		for _, term := range rule.terms {
			if strings.Contains(name, term) || strings.Contains(text, term) {
				return model.ClassificationResult{
					Category:    rule.category,
					Subcategory: rule.subcategory,
					Confidence:  rule.confidence,
					Reason:      fmt.Sprintf("fornecedor indica ramo: %q", term),
					Source:      model.SourceSupplier,
				}
			}
		}
	}

	return model.ClassificationResult{
		Category:   model.CategoryOther,
		Confidence: 0.3,
		Reason:     "fornecedor não indicou categoria específica",
		Source:     model.SourceSupplier,
	}
}
