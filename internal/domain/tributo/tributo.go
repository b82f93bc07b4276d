// Package tributo implementa os motores de cálculo dos tributos da NF-e:
// ICMS (regime normal e Simples Nacional), substituição tributária, partilha
// interestadual (DIFAL/FCP), IPI, PIS e COFINS. Todos os motores são funções
// puras de (item, configuração, regime); o dispatch é feito pelo CST/CSOSN e
// qualquer código fora do conjunto reconhecido falha com ErrCSTNaoSuportado.
package tributo

import "github.com/shopspring/decimal"

// ResultadoICMS é o resultado do motor de ICMS para um item: imposto próprio,
// substituição tributária e campos informativos (diferimento, crédito do
// Simples, desoneração). Valores quantizados na escala 2.
type ResultadoICMS struct {
	CST   string // preenchido no regime normal
	CSOSN string // preenchido no Simples Nacional

	Base  decimal.Decimal
	Valor decimal.Decimal

	BaseST  decimal.Decimal
	ValorST decimal.Decimal

	// Informativos: não entram no total geral do documento.
	ValorDesonerado decimal.Decimal
	ValorDiferido   decimal.Decimal // CST 51
	ValorCreditoSN  decimal.Decimal // CSOSN 101/201
}

// ResultadoICMSUFDest é o par informativo da partilha interestadual: FCP e
// ICMS devidos à UF de destino e parcela do remetente.
type ResultadoICMSUFDest struct {
	Base         decimal.Decimal
	ValorFCP     decimal.Decimal
	ValorUFDest  decimal.Decimal
	ValorUFRemet decimal.Decimal
}

// ResultadoIPI é o resultado do motor de IPI. Tributado indica o grupo da
// árvore (IPITrib ou IPINT).
type ResultadoIPI struct {
	CST       string
	Tributado bool
	Base      decimal.Decimal
	Valor     decimal.Decimal
}

// ResultadoPISCOFINS é o resultado de PIS ou COFINS (fórmulas idênticas).
type ResultadoPISCOFINS struct {
	CST   string
	Base  decimal.Decimal
	Valor decimal.Decimal
}

// ResultadoItem reúne os valores comerciais e tributários de um item após o
// processamento. Todo campo é derivado deterministicamente do item e do seu
// grupo fiscal; nenhum estado oculto.
type ResultadoItem struct {
	Ordem int

	Bruto    decimal.Decimal // quantidade × unitário, quantizado
	Desconto decimal.Decimal
	Liquido  decimal.Decimal // bruto − desconto

	ICMS       *ResultadoICMS
	ICMSUFDest *ResultadoICMSUFDest
	IPI        *ResultadoIPI
	PIS        *ResultadoPISCOFINS
	COFINS     *ResultadoPISCOFINS
}
