package storage

import "github.com/Garcia3528/notalfiscalIA/internal/model"

// defaultExpenseTypes is the catalog shipped with a fresh database. The
// resolver can create more on demand; these cover the common rural expenses
// so most classifications land on an existing row.
var defaultExpenseTypes = []struct {
	name        string
	description string
	category    model.Category
}{
	{"Despesas Bancárias", "Tarifas, taxas e pacotes de serviços bancários", model.CategoryAdministrative},
	{"Honorários Advocatícios", "Serviços jurídicos e advocatícios", model.CategoryAdministrative},
	{"Honorários Agronômicos", "Consultoria e assistência agronômica", model.CategoryAdministrative},
	{"Honorários Contábeis", "Serviços de contabilidade", model.CategoryAdministrative},
	{"Material de Escritório", "Papelaria e suprimentos administrativos", model.CategoryAdministrative},

	{"INCRA-CCIR", "Certificado de cadastro de imóvel rural", model.CategoryTaxesAndFees},
	{"IPTU", "Imposto predial e territorial urbano", model.CategoryTaxesAndFees},
	{"IPVA", "Imposto sobre propriedade de veículos", model.CategoryTaxesAndFees},
	{"ITR", "Imposto territorial rural", model.CategoryTaxesAndFees},

	{"Arrendamento de Terras", "Aluguel de áreas para cultivo", model.CategoryInfrastructure},
	{"Construções e Reformas", "Obras e melhorias em instalações", model.CategoryInfrastructure},
	{"Energia Elétrica", "Fornecimento de energia elétrica", model.CategoryInfrastructure},
	{"Internet", "Serviços de acesso à internet", model.CategoryInfrastructure},
	{"Telefonia", "Telefonia fixa e móvel", model.CategoryInfrastructure},
	{"Água e Esgoto", "Fornecimento de água e saneamento", model.CategoryInfrastructure},

	{"Corretivos", "Calcário e corretivos de solo", model.CategoryAgriculturalInputs},
	{"Defensivos Agrícolas", "Herbicidas, fungicidas e inseticidas", model.CategoryAgriculturalInputs},
	{"Fertilizantes", "Adubos e fertilizantes", model.CategoryAgriculturalInputs},
	{"Sementes", "Sementes e mudas", model.CategoryAgriculturalInputs},

	{"Aquisição de Imóveis", "Compra de terras e imóveis rurais", model.CategoryInvestments},
	{"Aquisição de Máquinas", "Compra de tratores e implementos", model.CategoryInvestments},
	{"Aquisição de Veículos", "Compra de veículos", model.CategoryInvestments},
	{"Infraestrutura Rural", "Cercas, currais e benfeitorias", model.CategoryInvestments},

	{"Combustíveis e Lubrificantes", "Diesel, gasolina, etanol e lubrificantes", model.CategoryMaintenance},
	{"Ferramentas", "Ferramentas e equipamentos de uso geral", model.CategoryMaintenance},
	{"Manutenção de Máquinas", "Reparos e revisões de máquinas", model.CategoryMaintenance},
	{"Peças e Componentes", "Peças de reposição", model.CategoryMaintenance},
	{"Pneus e Filtros", "Pneus, filtros e itens de desgaste", model.CategoryMaintenance},

	{"Mão de Obra Temporária", "Diaristas e trabalhadores sazonais", model.CategoryHumanResources},
	{"Salários e Encargos", "Folha de pagamento e encargos sociais", model.CategoryHumanResources},

	{"Seguro Agrícola", "Seguro de safra e produção", model.CategoryInsurance},
	{"Seguro de Ativos", "Seguro de máquinas e bens", model.CategoryInsurance},
	{"Seguro Prestamista", "Seguro vinculado a financiamentos", model.CategoryInsurance},

	{"Colheita Terceirizada", "Serviços de colheita contratados", model.CategoryOperationalServices},
	{"Frete e Transporte", "Fretes e transporte de cargas", model.CategoryOperationalServices},
	{"Pulverização", "Serviços de pulverização", model.CategoryOperationalServices},
	{"Secagem e Armazenagem", "Secagem e armazenagem de grãos", model.CategoryOperationalServices},

	{"Despesas Diversas", "Despesas não enquadradas nas demais categorias", model.CategoryOther},
}
