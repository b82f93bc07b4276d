// Package nfe contém a árvore tipada do documento fiscal e o montador que a
// produz a partir das entidades e dos resultados de cálculo. A árvore é
// propriedade deste núcleo: o serializador externo é quem a converte para o
// leiaute de fio da SEFAZ; aqui não há formatação nem arredondamento.
package nfe

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArvoreNFe é a raiz do documento montado: identificação, emitente,
// destinatário, lista ordenada de itens e totais.
type ArvoreNFe struct {
	Identificacao Identificacao   `json:"ide"`
	Emitente      EmitenteNFe     `json:"emit"`
	Destinatario  DestinatarioNFe `json:"dest"`
	Itens         []ItemNFe       `json:"det"`
	Totais        TotaisNFe       `json:"total"`
}

// Identificacao é o grupo ide da NF-e.
type Identificacao struct {
	CodigoUF         string
	NaturezaOperacao string
	Modelo           string
	Serie            string
	Numero           string
	DataEmissao      time.Time
	TipoOperacao     string // "0" entrada, "1" saída
	TipoEmissao      string
	Ambiente         string
	Chave            string // 44 dígitos, com DV
}

// EmitenteNFe é o grupo emit.
type EmitenteNFe struct {
	CNPJ              string
	RazaoSocial       string
	NomeFantasia      string
	InscricaoEstadual string
	CRT               string
	Endereco          EnderecoNFe
}

// DestinatarioNFe é o grupo dest.
type DestinatarioNFe struct {
	CPFCNPJ           string
	Nome              string
	IndicadorIE       string
	InscricaoEstadual string
	Email             string
	Endereco          EnderecoNFe
}

// EnderecoNFe é o endereço de emitente ou destinatário dentro da árvore.
type EnderecoNFe struct {
	Logradouro      string
	Numero          string
	Bairro          string
	CodigoMunicipio string
	Municipio       string
	UF              string
	CEP             string
}

// ItemNFe é o grupo det: dados comerciais do produto e os subgrupos de
// tributo. Cada tributo carrega exatamente um subgrupo, escolhido pelo
// CST/CSOSN usado no cálculo.
type ItemNFe struct {
	Numero  int // nItem, sequencial a partir de 1
	Produto ProdutoNFe
	Imposto ImpostoNFe
}

// ProdutoNFe é o grupo prod de um item.
type ProdutoNFe struct {
	Codigo        string
	CEAN          string
	Descricao     string
	NCM           string
	CFOP          string
	Unidade       string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	ValorBruto    decimal.Decimal // vProd
	ValorDesconto decimal.Decimal
	ValorFrete    decimal.Decimal
	ValorSeguro   decimal.Decimal
	ValorOutros   decimal.Decimal
}

// ImpostoNFe agrupa os tributos de um item. ICMSUFDest e IPI são opcionais
// no esquema; ICMS, PIS e COFINS são obrigatórios quando o perfil os
// configura.
type ImpostoNFe struct {
	ICMS       *GrupoICMS
	ICMSUFDest *GrupoICMSUFDest
	IPI        *GrupoIPI
	PIS        *GrupoPIS
	COFINS     *GrupoCOFINS
}

// =============================================================================
// ICMS — um ponteiro por variante; exatamente um deve estar preenchido.
// =============================================================================

// GrupoICMS é a escolha mutuamente exclusiva entre as variantes de ICMS.
type GrupoICMS struct {
	ICMS00 *ICMS00
	ICMS10 *ICMS10
	ICMS20 *ICMS20
	ICMS30 *ICMS30
	ICMS40 *ICMS40 // CST 40, 41 e 50
	ICMS51 *ICMS51
	ICMS60 *ICMS60
	ICMS70 *ICMS70
	ICMS90 *ICMS90

	SN101 *ICMSSN101
	SN102 *ICMSSN102 // CSOSN 102, 103, 300 e 400
	SN201 *ICMSSN201
	SN202 *ICMSSN202 // CSOSN 202 e 203
	SN500 *ICMSSN500
	SN900 *ICMSSN900
}

type ICMS00 struct {
	Origem   string
	CST      string
	ModBC    string
	BaseICMS decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal
}

type ICMS10 struct {
	Origem   string
	CST      string
	ModBC    string
	BaseICMS decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal
}

type ICMS20 struct {
	Origem   string
	CST      string
	ModBC    string
	Reducao  decimal.Decimal
	BaseICMS decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal
}

type ICMS30 struct {
	Origem string
	CST    string

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal
}

type ICMS40 struct {
	Origem            string
	CST               string
	ValorDesonerado   decimal.Decimal
	MotivoDesoneracao string
}

type ICMS51 struct {
	Origem        string
	CST           string
	ModBC         string
	Reducao       decimal.Decimal
	BaseICMS      decimal.Decimal
	Aliquota      decimal.Decimal
	ValorOperacao decimal.Decimal
	Diferimento   decimal.Decimal // percentual
	ValorDiferido decimal.Decimal
	Valor         decimal.Decimal // devido = operação − diferido
}

type ICMS60 struct {
	Origem        string
	CST           string
	BaseSTRetida  decimal.Decimal
	ValorSTRetido decimal.Decimal
}

type ICMS70 struct {
	Origem   string
	CST      string
	ModBC    string
	Reducao  decimal.Decimal
	BaseICMS decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal
}

type ICMS90 struct {
	Origem   string
	CST      string
	ModBC    string
	Reducao  decimal.Decimal
	BaseICMS decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal
}

type ICMSSN101 struct {
	Origem            string
	CSOSN             string
	AliquotaCreditoSN decimal.Decimal
	ValorCreditoSN    decimal.Decimal
}

type ICMSSN102 struct {
	Origem string
	CSOSN  string
}

type ICMSSN201 struct {
	Origem string
	CSOSN  string

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal

	AliquotaCreditoSN decimal.Decimal
	ValorCreditoSN    decimal.Decimal
}

type ICMSSN202 struct {
	Origem string
	CSOSN  string

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal
}

type ICMSSN500 struct {
	Origem        string
	CSOSN         string
	BaseSTRetida  decimal.Decimal
	ValorSTRetido decimal.Decimal
}

type ICMSSN900 struct {
	Origem   string
	CSOSN    string
	ModBC    string
	Reducao  decimal.Decimal
	BaseICMS decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal

	ModBCST    string
	MVAST      decimal.Decimal
	ReducaoST  decimal.Decimal
	BaseST     decimal.Decimal
	AliquotaST decimal.Decimal
	ValorST    decimal.Decimal

	AliquotaCreditoSN decimal.Decimal
	ValorCreditoSN    decimal.Decimal
}

// GrupoICMSUFDest é o grupo ICMSUFDest (partilha interestadual), opcional.
type GrupoICMSUFDest struct {
	Base                   decimal.Decimal
	AliquotaFCPDestino     decimal.Decimal
	AliquotaInternaDestino decimal.Decimal
	AliquotaInterestadual  decimal.Decimal
	PercentualPartilha     decimal.Decimal
	ValorFCP               decimal.Decimal
	ValorUFDest            decimal.Decimal
	ValorUFRemet           decimal.Decimal
}

// =============================================================================
// IPI — Trib e NT são mutuamente exclusivos.
// =============================================================================

type GrupoIPI struct {
	CodigoEnquadramento string
	Trib                *IPITrib
	NT                  *IPINT
}

type IPITrib struct {
	CST             string
	Base            decimal.Decimal
	Aliquota        decimal.Decimal
	Quantidade      decimal.Decimal
	ValorPorUnidade decimal.Decimal
	Valor           decimal.Decimal
}

type IPINT struct {
	CST string
}

// =============================================================================
// PIS e COFINS — quatro variantes mutuamente exclusivas cada.
// =============================================================================

type GrupoPIS struct {
	Aliq *PISAliq
	Qtde *PISQtde
	NT   *PISNT
	Outr *PISOutr
}

type PISAliq struct {
	CST      string
	Base     decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal
}

type PISQtde struct {
	CST             string
	Quantidade      decimal.Decimal
	ValorPorUnidade decimal.Decimal
	Valor           decimal.Decimal
}

type PISNT struct {
	CST string
}

type PISOutr struct {
	CST      string
	Base     decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal
}

type GrupoCOFINS struct {
	Aliq *COFINSAliq
	Qtde *COFINSQtde
	NT   *COFINSNT
	Outr *COFINSOutr
}

type COFINSAliq struct {
	CST      string
	Base     decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal
}

type COFINSQtde struct {
	CST             string
	Quantidade      decimal.Decimal
	ValorPorUnidade decimal.Decimal
	Valor           decimal.Decimal
}

type COFINSNT struct {
	CST string
}

type COFINSOutr struct {
	CST      string
	Base     decimal.Decimal
	Aliquota decimal.Decimal
	Valor    decimal.Decimal
}

// TotaisNFe é o grupo total/ICMSTot da árvore.
type TotaisNFe struct {
	BaseICMS            decimal.Decimal
	ValorICMS           decimal.Decimal
	ValorICMSDesonerado decimal.Decimal
	ValorFCPUFDest      decimal.Decimal
	ValorICMSUFDest     decimal.Decimal
	ValorICMSUFRemet    decimal.Decimal
	BaseST              decimal.Decimal
	ValorST             decimal.Decimal
	ValorProdutos       decimal.Decimal
	ValorFrete          decimal.Decimal
	ValorSeguro         decimal.Decimal
	ValorDesconto       decimal.Decimal
	ValorIPI            decimal.Decimal
	ValorPIS            decimal.Decimal
	ValorCOFINS         decimal.Decimal
	ValorOutros         decimal.Decimal
	ValorTotal          decimal.Decimal
}
