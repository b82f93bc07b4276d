package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentoRequest é o snapshot do documento recebido pela superfície HTTP.
// Os itens referenciam grupos fiscais do catálogo pelo ID.
type DocumentoRequest struct {
	ID               string     `json:"id"`
	Tipo             string     `json:"tipo"` // ORCAMENTO ou PEDIDO
	Modelo           string     `json:"modelo"`
	Serie            string     `json:"serie"`
	Numero           string     `json:"numero"`
	NaturezaOperacao string     `json:"natureza_operacao"`
	TipoOperacao     string     `json:"tipo_operacao"`
	DataEmissao      time.Time  `json:"data_emissao"`
	DataVencimento   *time.Time `json:"data_vencimento,omitempty"`
	DataEntrega      *time.Time `json:"data_entrega,omitempty"`

	Emitente     EmpresaDTO `json:"emitente"`
	Destinatario ClienteDTO `json:"destinatario"`

	Itens []ItemDocumentoDTO `json:"itens"`

	TipoDescontoDoc string          `json:"tipo_desconto_doc,omitempty"`
	DescontoDoc     decimal.Decimal `json:"desconto_doc"`
	Frete           decimal.Decimal `json:"frete"`
	Seguro          decimal.Decimal `json:"seguro"`
	OutrasDespesas  decimal.Decimal `json:"outras_despesas"`

	Status string `json:"status,omitempty"`
}

type EmpresaDTO struct {
	RazaoSocial       string      `json:"razao_social"`
	NomeFantasia      string      `json:"nome_fantasia,omitempty"`
	CNPJ              string      `json:"cnpj"`
	InscricaoEstadual string      `json:"inscricao_estadual,omitempty"`
	Regime            string      `json:"regime"`
	Endereco          EnderecoDTO `json:"endereco"`
}

type ClienteDTO struct {
	Nome              string      `json:"nome"`
	CPFCNPJ           string      `json:"cpf_cnpj"`
	InscricaoEstadual string      `json:"inscricao_estadual,omitempty"`
	IndicadorIE       string      `json:"indicador_ie,omitempty"`
	Email             string      `json:"email,omitempty"`
	Endereco          EnderecoDTO `json:"endereco"`
}

type EnderecoDTO struct {
	Logradouro      string `json:"logradouro"`
	Numero          string `json:"numero"`
	Bairro          string `json:"bairro"`
	Municipio       string `json:"municipio"`
	CodigoMunicipio string `json:"codigo_municipio"`
	UF              string `json:"uf"`
	CEP             string `json:"cep"`
}

type ItemDocumentoDTO struct {
	ProdutoID        string          `json:"produto_id"`
	Descricao        string          `json:"descricao"`
	NCM              string          `json:"ncm,omitempty"`
	CFOP             string          `json:"cfop,omitempty"`
	CEAN             string          `json:"cean,omitempty"`
	Unidade          string          `json:"unidade,omitempty"`
	Quantidade       decimal.Decimal `json:"quantidade"`
	ValorUnitario    decimal.Decimal `json:"valor_unitario"`
	TipoDesconto     string          `json:"tipo_desconto,omitempty"`
	Desconto         decimal.Decimal `json:"desconto"`
	FreteRateado     decimal.Decimal `json:"frete_rateado"`
	SeguroRateado    decimal.Decimal `json:"seguro_rateado"`
	DespesasRateadas decimal.Decimal `json:"despesas_rateadas"`
	GrupoFiscalID    string          `json:"grupo_fiscal_id"`
}

// TotaisResponse devolve os totais recomputados do documento.
type TotaisResponse struct {
	SomaLiquidos decimal.Decimal `json:"soma_liquidos"`

	BaseICMS    decimal.Decimal `json:"base_icms"`
	ValorICMS   decimal.Decimal `json:"valor_icms"`
	BaseST      decimal.Decimal `json:"base_st"`
	ValorST     decimal.Decimal `json:"valor_st"`
	ValorIPI    decimal.Decimal `json:"valor_ipi"`
	ValorPIS    decimal.Decimal `json:"valor_pis"`
	ValorCOFINS decimal.Decimal `json:"valor_cofins"`

	ValorICMSDesonerado decimal.Decimal `json:"valor_icms_desonerado"`

	ValorDiferido    decimal.Decimal `json:"valor_diferido"`
	ValorCreditoSN   decimal.Decimal `json:"valor_credito_sn"`
	ValorFCPUFDest   decimal.Decimal `json:"valor_fcp_uf_dest"`
	ValorICMSUFDest  decimal.Decimal `json:"valor_icms_uf_dest"`
	ValorICMSUFRemet decimal.Decimal `json:"valor_icms_uf_remet"`

	DescontoDocumento decimal.Decimal `json:"desconto_documento"`
	Frete             decimal.Decimal `json:"frete"`
	Seguro            decimal.Decimal `json:"seguro"`
	OutrasDespesas    decimal.Decimal `json:"outras_despesas"`
	ValorTotal        decimal.Decimal `json:"valor_total"`
}

// ValidacaoResponse devolve o resultado da validação do documento.
type ValidacaoResponse struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Chave  string          `json:"chave"`
	Totais *TotaisResponse `json:"totais"`
}

// CancelamentoRequest acompanha o documento no pedido de cancelamento.
type CancelamentoRequest struct {
	Documento     DocumentoRequest `json:"documento"`
	Justificativa string           `json:"justificativa"`
}

// StatusRequest pede uma transição explícita do ciclo de vida.
type StatusRequest struct {
	Documento DocumentoRequest `json:"documento"`
	Para      string           `json:"para"`
}

// StatusResponse devolve o estado após a transição.
type StatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
