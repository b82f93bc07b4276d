package entity

import "github.com/shopspring/decimal"

// Modos de desconto, do item ou do documento.
const (
	DescontoValor      = "V" // desconto em valor absoluto
	DescontoPercentual = "P" // desconto percentual sobre o bruto
)

// ItemDocumento é uma linha do documento fiscal. Os rateios de frete, seguro
// e outras despesas chegam já distribuídos pelo colaborador de entrada; as
// despesas rateadas compõem a base de PIS/COFINS.
type ItemDocumento struct {
	ID        string
	Ordem     int
	ProdutoID string

	Descricao string
	NCM       string
	CFOP      string
	CEAN      string
	Unidade   string

	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal

	TipoDesconto string // DescontoValor ou DescontoPercentual
	Desconto     decimal.Decimal

	FreteRateado     decimal.Decimal
	SeguroRateado    decimal.Decimal
	DespesasRateadas decimal.Decimal

	GrupoFiscalID string
}
