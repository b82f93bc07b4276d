package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de venda que originam a nota fiscal.
const (
	TipoOrcamento = "ORCAMENTO" // traz data de vencimento
	TipoPedido    = "PEDIDO"    // traz data de entrega
)

// Estados do ciclo de vida do documento fiscal.
// Rascunho e Rejeitada são editáveis; Autorizada pode ser cancelada dentro
// da janela da SEFAZ (precondição checada pelo transmissor, não aqui).
const (
	StatusRascunho   = "RASCUNHO"
	StatusValidada   = "VALIDADA"
	StatusAutorizada = "AUTORIZADA"
	StatusRejeitada  = "REJEITADA"
	StatusDenegada   = "DENEGADA"
	StatusCancelada  = "CANCELADA"
)

// Documento é a nota fiscal em memória: snapshot completo de emitente,
// destinatário, itens e grupos fiscais, carregado pelo colaborador de
// armazenamento. O motor lê, calcula e monta; nunca persiste.
type Documento struct {
	ID   string
	Tipo string // TipoOrcamento ou TipoPedido

	Modelo string // "55" NF-e
	Serie  string
	Numero string

	NaturezaOperacao string
	TipoOperacao     string // "0" entrada, "1" saída
	DataEmissao      time.Time
	DataVencimento   *time.Time // somente orçamento
	DataEntrega      *time.Time // somente pedido

	Emitente     Empresa
	Destinatario Cliente

	Itens  []ItemDocumento
	Grupos map[string]*GrupoFiscal // grupos fiscais referenciados pelos itens

	// Ajustes em nível de documento.
	TipoDescontoDoc string // DescontoValor ou DescontoPercentual
	DescontoDoc     decimal.Decimal
	Frete           decimal.Decimal
	Seguro          decimal.Decimal
	OutrasDespesas  decimal.Decimal

	Totais *TotaisDocumento

	Status                    string
	Chave                     string
	JustificativaCancelamento string
}

// TotaisDocumento agrega os resultados de todos os itens. É sempre criado do
// zero pela agregação; nunca atualizado incrementalmente.
type TotaisDocumento struct {
	SomaLiquidos decimal.Decimal // Σ líquidos dos itens (vProd − descontos de item)

	BaseICMS    decimal.Decimal
	ValorICMS   decimal.Decimal
	BaseST      decimal.Decimal
	ValorST     decimal.Decimal
	ValorIPI    decimal.Decimal
	ValorPIS    decimal.Decimal
	ValorCOFINS decimal.Decimal

	// Informativos: não entram no total geral.
	ValorICMSDesonerado decimal.Decimal
	ValorDiferido       decimal.Decimal
	ValorCreditoSN      decimal.Decimal
	ValorFCPUFDest      decimal.Decimal
	ValorICMSUFDest     decimal.Decimal
	ValorICMSUFRemet    decimal.Decimal

	DescontoDocumento decimal.Decimal
	Frete             decimal.Decimal
	Seguro            decimal.Decimal
	OutrasDespesas    decimal.Decimal

	ValorTotal decimal.Decimal
}
