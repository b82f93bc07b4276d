// Package nfe contém catálogos e algoritmos de apoio da NF-e (modelo 55),
// alinhados ao Manual de Orientação do Contribuinte (MOC) da SEFAZ.
package nfe

// =============================================================================
// CST do ICMS (Regime Normal) — Tabela B do Convênio s/nº de 1970
// Seleciona a fórmula de cálculo do ICMS próprio e da substituição tributária.
// =============================================================================

const (
	CSTICMSTributada            = "00" // Tributada integralmente
	CSTICMSTributadaComST       = "10" // Tributada e com cobrança do ICMS por ST
	CSTICMSComReducao           = "20" // Com redução de base de cálculo
	CSTICMSIsentaComST          = "30" // Isenta ou não tributada e com cobrança do ICMS por ST
	CSTICMSIsenta               = "40" // Isenta
	CSTICMSNaoTributada         = "41" // Não tributada
	CSTICMSSuspensao            = "50" // Suspensão
	CSTICMSDiferimento          = "51" // Diferimento
	CSTICMSCobradoAnteriormente = "60" // ICMS cobrado anteriormente por ST
	CSTICMSReducaoComST         = "70" // Com redução de BC e cobrança do ICMS por ST
	CSTICMSOutros               = "90" // Outros
)

// ValidCSTICMS contém os CST de ICMS aceitos pelo motor no regime normal.
var ValidCSTICMS = map[string]bool{
	CSTICMSTributada: true, CSTICMSTributadaComST: true, CSTICMSComReducao: true,
	CSTICMSIsentaComST: true, CSTICMSIsenta: true, CSTICMSNaoTributada: true,
	CSTICMSSuspensao: true, CSTICMSDiferimento: true, CSTICMSCobradoAnteriormente: true,
	CSTICMSReducaoComST: true, CSTICMSOutros: true,
}

// =============================================================================
// CSOSN — Código de Situação da Operação no Simples Nacional
// (Anexo I da Resolução CGSN; usado quando o regime do emitente é Simples)
// =============================================================================

const (
	CSOSNComCredito        = "101" // Tributada pelo SN com permissão de crédito
	CSOSNSemCredito        = "102" // Tributada pelo SN sem permissão de crédito
	CSOSNIsencaoFaixa      = "103" // Isenção do ICMS no SN para faixa de receita bruta
	CSOSNComCreditoComST   = "201" // Com permissão de crédito e cobrança do ICMS por ST
	CSOSNSemCreditoComST   = "202" // Sem permissão de crédito e cobrança do ICMS por ST
	CSOSNIsencaoFaixaComST = "203" // Isenção para faixa de receita bruta e cobrança por ST
	CSOSNImune             = "300" // Imune
	CSOSNNaoTributada      = "400" // Não tributada pelo Simples Nacional
	CSOSNCobradoPorST      = "500" // ICMS cobrado anteriormente por ST ou antecipação
	CSOSNOutros            = "900" // Outros
)

// ValidCSOSN contém os CSOSN aceitos pelo motor no Simples Nacional.
var ValidCSOSN = map[string]bool{
	CSOSNComCredito: true, CSOSNSemCredito: true, CSOSNIsencaoFaixa: true,
	CSOSNComCreditoComST: true, CSOSNSemCreditoComST: true, CSOSNIsencaoFaixaComST: true,
	CSOSNImune: true, CSOSNNaoTributada: true, CSOSNCobradoPorST: true, CSOSNOutros: true,
}

// =============================================================================
// CST do IPI — Tabela de Situação Tributária do IPI (Instrução Normativa RFB)
// Tributados geram grupo IPITrib; os demais geram grupo IPINT.
// =============================================================================

const (
	CSTIPIEntradaRecuperacao = "00" // Entrada com recuperação de crédito
	CSTIPIOutrasEntradas     = "49" // Outras entradas
	CSTIPISaidaTributada     = "50" // Saída tributada
	CSTIPIOutrasSaidas       = "99" // Outras saídas
)

// ValidCSTIPITributado: CST de IPI que exigem cálculo (grupo IPITrib).
var ValidCSTIPITributado = map[string]bool{
	CSTIPIEntradaRecuperacao: true, CSTIPIOutrasEntradas: true,
	CSTIPISaidaTributada: true, CSTIPIOutrasSaidas: true,
}

// ValidCSTIPINaoTributado: CST de IPI sem incidência (grupo IPINT).
var ValidCSTIPINaoTributado = map[string]bool{
	"01": true, "02": true, "03": true, "04": true, "05": true,
	"51": true, "52": true, "53": true, "54": true, "55": true,
}

// =============================================================================
// CST de PIS e COFINS — Tabela 4.3.3/4.3.4 do SPED
// Os dois tributos compartilham a mesma tabela e as mesmas fórmulas.
// =============================================================================

const (
	CSTPISCOFINSAliquotaBasica       = "01" // Tributável com alíquota básica
	CSTPISCOFINSAliquotaDiferenciada = "02" // Tributável com alíquota diferenciada
	CSTPISCOFINSPorQuantidade        = "03" // Alíquota por unidade de medida de produto
	CSTPISCOFINSMonofasicaZero       = "04" // Monofásica - revenda a alíquota zero
	CSTPISCOFINSSubstituicao         = "05" // Por substituição tributária
	CSTPISCOFINSAliquotaZero         = "06" // Alíquota zero
	CSTPISCOFINSIsenta               = "07" // Isenta da contribuição
	CSTPISCOFINSSemIncidencia        = "08" // Sem incidência da contribuição
	CSTPISCOFINSSuspensao            = "09" // Com suspensão da contribuição
	CSTPISCOFINSOutrasSaidas         = "49" // Outras operações de saída
	CSTPISCOFINSOutras               = "99" // Outras operações
)

// ValidCSTPISCOFINSAliquota: fórmula percentual-da-base (grupo PISAliq/COFINSAliq).
var ValidCSTPISCOFINSAliquota = map[string]bool{
	CSTPISCOFINSAliquotaBasica: true, CSTPISCOFINSAliquotaDiferenciada: true,
}

// ValidCSTPISCOFINSNaoTributado: sem incidência (grupo PISNT/COFINSNT).
var ValidCSTPISCOFINSNaoTributado = map[string]bool{
	CSTPISCOFINSMonofasicaZero: true, CSTPISCOFINSSubstituicao: true,
	CSTPISCOFINSAliquotaZero: true, CSTPISCOFINSIsenta: true,
	CSTPISCOFINSSemIncidencia: true, CSTPISCOFINSSuspensao: true,
}

// ValidCSTPISCOFINSOutras: grupo PISOutr/COFINSOutr (49–99); a fórmula é
// escolhida pelo parâmetro disponível (alíquota ou valor por unidade).
var ValidCSTPISCOFINSOutras = map[string]bool{
	CSTPISCOFINSOutrasSaidas: true, "50": true, "51": true, "52": true, "53": true,
	"54": true, "55": true, "56": true, "60": true, "61": true, "62": true,
	"63": true, "64": true, "65": true, "66": true, "67": true, "70": true,
	"71": true, "72": true, "73": true, "74": true, "75": true, "98": true,
	CSTPISCOFINSOutras: true,
}

// =============================================================================
// Modalidades de base de cálculo do ICMS e do ICMS ST (MOC, grupo ICMS)
// =============================================================================

const (
	ModBCMargemValorAgregado = "0" // Margem Valor Agregado (%)
	ModBCPauta               = "1" // Pauta (valor)
	ModBCPrecoTabelado       = "2" // Preço tabelado máximo (valor)
	ModBCValorOperacao       = "3" // Valor da operação
)

const (
	ModBCSTPrecoTabelado  = "0" // Preço tabelado ou máximo sugerido
	ModBCSTListaNegativa  = "1" // Lista negativa (valor)
	ModBCSTListaPositiva  = "2" // Lista positiva (valor)
	ModBCSTListaNeutra    = "3" // Lista neutra (valor)
	ModBCSTMargemAgregado = "4" // Margem Valor Agregado (%)
	ModBCSTPauta          = "5" // Pauta (valor)
	ModBCSTValorOperacao  = "6" // Valor da operação
)

// =============================================================================
// Motivos de desoneração do ICMS (campo motDesICMS do MOC)
// =============================================================================

const (
	MotDesICMSTaxi               = "1"
	MotDesICMSProdutorAgro       = "3"
	MotDesICMSFrotista           = "4"
	MotDesICMSDiplomatico        = "5"
	MotDesICMSAmazoniaOcidental  = "6"
	MotDesICMSSuframa            = "7"
	MotDesICMSOrgaoPublico       = "8"
	MotDesICMSOutros             = "9"
	MotDesICMSDeficienteCondutor = "10"
)

// =============================================================================
// Regime tributário do emitente (campo CRT da NF-e)
// =============================================================================

const (
	RegimeSimplesNacional = "1" // Simples Nacional
	RegimeSimplesExcesso  = "2" // Simples Nacional, excesso de sublimite de receita bruta
	RegimeNormal          = "3" // Regime Normal
)

// =============================================================================
// Modalidade do frete (campo modFrete do MOC)
// =============================================================================

const (
	FreteEmitente      = "0" // Contratação por conta do remetente (CIF)
	FreteDestinatario  = "1" // Contratação por conta do destinatário (FOB)
	FreteTerceiros     = "2" // Contratação por conta de terceiros
	FreteSemOcorrencia = "9" // Sem ocorrência de transporte
)

// =============================================================================
// UFs com código IBGE (campo cUF da chave de acesso)
// =============================================================================

// CodigoUF mapeia a sigla da UF para o código IBGE de dois dígitos.
var CodigoUF = map[string]string{
	"RO": "11", "AC": "12", "AM": "13", "RR": "14", "PA": "15", "AP": "16",
	"TO": "17", "MA": "21", "PI": "22", "CE": "23", "RN": "24", "PB": "25",
	"PE": "26", "AL": "27", "SE": "28", "BA": "29", "MG": "31", "ES": "32",
	"RJ": "33", "SP": "35", "PR": "41", "SC": "42", "RS": "43", "MS": "50",
	"MT": "51", "GO": "52", "DF": "53",
}

// =============================================================================
// Identificação do documento (campos da chave e do grupo ide)
// =============================================================================

const (
	ModeloNFe  = "55" // NF-e
	ModeloNFCe = "65" // NFC-e

	TipoOperacaoEntrada = "0"
	TipoOperacaoSaida   = "1"

	AmbienteProducao    = "1"
	AmbienteHomologacao = "2"

	EmissaoNormal = "1" // tpEmis normal (sem contingência)
)
