package entity

import "github.com/shopspring/decimal"

// GrupoFiscal é o perfil tributário de um grupo de produtos: um conjunto
// imutável de regras lidas pelo motor de cálculo. Cada tributo tem uma
// configuração opcional tipada; ponteiro nulo significa tributo não
// configurado para o grupo.
type GrupoFiscal struct {
	ID        string
	Descricao string
	Regime    string // CRT: "1" Simples Nacional, "3" Regime Normal

	ICMS       *ConfigICMS
	ICMSUFDest *ConfigICMSUFDest
	IPI        *ConfigIPI
	PIS        *ConfigPISCOFINS
	COFINS     *ConfigPISCOFINS
}

// ConfigICMS configura o ICMS próprio e a substituição tributária.
// No regime normal vale o CST; no Simples Nacional vale o CSOSN.
// Alíquotas são percentuais com 4 casas; ponteiro nulo indica parâmetro
// não informado (distinto de alíquota zero).
type ConfigICMS struct {
	CST              string
	CSOSN            string
	OrigemMercadoria string // 0-Nacional, 1-Estrangeira direta, 2-Estrangeira interna...

	ModalidadeBC string
	Aliquota     *decimal.Decimal // p_icms
	ReducaoBase  decimal.Decimal  // p_red_bc

	ModalidadeBCST string
	MVAST          decimal.Decimal  // margem de valor agregado da ST
	ReducaoBaseST  decimal.Decimal  // p_red_bcst
	AliquotaST     *decimal.Decimal // p_icmsst

	PercentualDiferimento decimal.Decimal // p_dif, CST 51
	AliquotaCreditoSN     decimal.Decimal // p_cred_sn, CSOSN 101/201
	MotivoDesoneracao     string

	ICMSInclusoPreco   bool
	ICMSSTInclusoPreco bool
}

// ConfigICMSUFDest configura a partilha interestadual (DIFAL) e o FCP da UF
// de destino, para operação com consumidor final não contribuinte.
type ConfigICMSUFDest struct {
	AliquotaFCPDestino     decimal.Decimal // p_fcp_dest
	AliquotaInternaDestino decimal.Decimal // p_icms_dest
	AliquotaInterestadual  decimal.Decimal // p_icms_inter: 4, 7 ou 12
	PercentualPartilha     decimal.Decimal // p_icms_inter_part: 100 a partir de 2019
}

// Modos de cálculo do IPI (campo tipo de cálculo).
const (
	IPIValorPorUnidade = "1" // valor fixo por unidade tributável
	IPIPercentual      = "2" // percentual sobre a base
)

// ConfigIPI configura o imposto sobre produtos industrializados.
// TipoCalculo escolhe qual dos dois parâmetros vale; o outro é ignorado
// mesmo quando presente.
type ConfigIPI struct {
	CST                 string
	ClasseEnquadramento string
	CodigoEnquadramento string // default "999"
	CNPJProdutor        string

	TipoCalculo     string
	Aliquota        *decimal.Decimal // p_ipi, modo percentual
	ValorPorUnidade *decimal.Decimal // valor_fixo_ipi, modo por unidade

	IPIInclusoPreco bool
	IncluirBCICMS   bool // soma o IPI apurado à BC do ICMS próprio
	IncluirBCICMSST bool // soma o IPI apurado à BC do ICMS ST
}

// ConfigPISCOFINS configura o PIS ou a COFINS (fórmulas idênticas).
// CST 01/02 exigem Aliquota; CST 03 exige ValorPorUnidade; CST 04–09 não
// incidem; CST 49–99 usam o parâmetro disponível (nenhum ⇒ informativo zero).
type ConfigPISCOFINS struct {
	CST             string
	Aliquota        *decimal.Decimal
	ValorPorUnidade *decimal.Decimal
}
