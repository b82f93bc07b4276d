package entity

import "github.com/shopspring/decimal"

// Produto representa o cadastro comercial e fiscal de um produto.
type Produto struct {
	ID            string
	Codigo        string
	Descricao     string
	NCM           string // Nomenclatura Comum do Mercosul (8 dígitos)
	CFOP          string // Código Fiscal de Operações e Prestações
	CEAN          string // código de barras GTIN; "SEM GTIN" quando ausente
	Unidade       string
	ValorUnitario decimal.Decimal
	GrupoFiscalID string
}

// NovoItem monta a linha de documento a partir do cadastro, na ordem dada.
// Preço, unidade e grupo fiscal vêm do produto; desconto e rateios ficam a
// cargo do chamador.
func (p Produto) NovoItem(ordem int, quantidade decimal.Decimal) ItemDocumento {
	return ItemDocumento{
		Ordem:         ordem,
		ProdutoID:     p.ID,
		Descricao:     p.Descricao,
		NCM:           p.NCM,
		CFOP:          p.CFOP,
		CEAN:          p.CEAN,
		Unidade:       p.Unidade,
		Quantidade:    quantidade,
		ValorUnitario: p.ValorUnitario,
		GrupoFiscalID: p.GrupoFiscalID,
	}
}
