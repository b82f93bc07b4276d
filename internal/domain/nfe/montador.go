package nfe

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/tributo"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// MontarArvore mapeia o documento e os resultados de cálculo para a árvore
// tipada consumida pelo serializador. Mapeamento puro: os valores chegam
// calculados e quantizados; aqui não há arredondamento nem regra de negócio
// além da escolha do subgrupo de tributo pelo CST/CSOSN usado no cálculo.
// Após a montagem, a estrutura é verificada: exatamente um subgrupo por
// tributo por item.
func MontarArvore(doc *entity.Documento, resultados []*tributo.ResultadoItem) (*ArvoreNFe, error) {
	if doc == nil {
		return nil, &domain.ErroEstrutura{Campo: "documento", Causa: fmt.Errorf("documento nulo")}
	}
	if doc.Totais == nil {
		return nil, &domain.ErroEstrutura{Campo: "total", Causa: fmt.Errorf("totais não calculados")}
	}
	if len(doc.Itens) == 0 {
		return nil, &domain.ErroEstrutura{Campo: "det", Causa: fmt.Errorf("documento sem itens")}
	}
	if len(resultados) != len(doc.Itens) {
		return nil, &domain.ErroEstrutura{Campo: "det", Causa: fmt.Errorf("resultados (%d) não cobrem os itens (%d)", len(resultados), len(doc.Itens))}
	}

	arv := &ArvoreNFe{
		Identificacao: Identificacao{
			CodigoUF:         nfe.CodigoUF[doc.Emitente.Endereco.UF],
			NaturezaOperacao: doc.NaturezaOperacao,
			Modelo:           doc.Modelo,
			Serie:            doc.Serie,
			Numero:           doc.Numero,
			DataEmissao:      doc.DataEmissao,
			TipoOperacao:     doc.TipoOperacao,
			TipoEmissao:      nfe.EmissaoNormal,
			Ambiente:         nfe.AmbienteHomologacao,
			Chave:            doc.Chave,
		},
		Emitente: EmitenteNFe{
			CNPJ:              doc.Emitente.CNPJ,
			RazaoSocial:       doc.Emitente.RazaoSocial,
			NomeFantasia:      doc.Emitente.NomeFantasia,
			InscricaoEstadual: doc.Emitente.InscricaoEstadual,
			CRT:               doc.Emitente.Regime,
			Endereco:          montarEndereco(doc.Emitente.Endereco),
		},
		Destinatario: DestinatarioNFe{
			CPFCNPJ:           doc.Destinatario.CPFCNPJ,
			Nome:              doc.Destinatario.Nome,
			IndicadorIE:       doc.Destinatario.IndicadorIE,
			InscricaoEstadual: doc.Destinatario.InscricaoEstadual,
			Email:             doc.Destinatario.Email,
			Endereco:          montarEndereco(doc.Destinatario.Endereco),
		},
		Totais: montarTotais(doc.Totais),
	}

	for i, item := range doc.Itens {
		grupo := doc.Grupos[item.GrupoFiscalID]
		if grupo == nil {
			return nil, &domain.ErroEstrutura{
				Campo: fmt.Sprintf("det[%d]", i+1),
				Causa: fmt.Errorf("%w: grupo %q", domain.ErrGrupoFiscalAusente, item.GrupoFiscalID),
			}
		}
		det, err := montarItem(i+1, item, grupo, resultados[i])
		if err != nil {
			return nil, err
		}
		arv.Itens = append(arv.Itens, *det)
	}

	if err := verificarEstrutura(arv); err != nil {
		return nil, err
	}
	return arv, nil
}

func montarEndereco(e entity.Endereco) EnderecoNFe {
	return EnderecoNFe{
		Logradouro:      e.Logradouro,
		Numero:          e.Numero,
		Bairro:          e.Bairro,
		CodigoMunicipio: e.CodigoMunicipio,
		Municipio:       e.Municipio,
		UF:              e.UF,
		CEP:             e.CEP,
	}
}

func montarItem(numero int, item entity.ItemDocumento, grupo *entity.GrupoFiscal, r *tributo.ResultadoItem) (*ItemNFe, error) {
	det := &ItemNFe{
		Numero: numero,
		Produto: ProdutoNFe{
			Codigo:        item.ProdutoID,
			CEAN:          item.CEAN,
			Descricao:     item.Descricao,
			NCM:           item.NCM,
			CFOP:          item.CFOP,
			Unidade:       item.Unidade,
			Quantidade:    item.Quantidade,
			ValorUnitario: item.ValorUnitario,
			ValorBruto:    r.Bruto,
			ValorDesconto: r.Desconto,
			ValorFrete:    item.FreteRateado,
			ValorSeguro:   item.SeguroRateado,
			ValorOutros:   item.DespesasRateadas,
		},
	}

	if r.ICMS != nil && grupo.ICMS != nil {
		g, err := montarGrupoICMS(numero, grupo.ICMS, r.ICMS)
		if err != nil {
			return nil, err
		}
		det.Imposto.ICMS = g
	}
	if r.ICMSUFDest != nil && grupo.ICMSUFDest != nil {
		det.Imposto.ICMSUFDest = montarGrupoICMSUFDest(grupo.ICMSUFDest, r.ICMSUFDest)
	}
	if r.IPI != nil && grupo.IPI != nil {
		det.Imposto.IPI = montarGrupoIPI(item, grupo.IPI, r.IPI)
	}
	if r.PIS != nil && grupo.PIS != nil {
		g, err := montarGrupoPIS(numero, item, grupo.PIS, r.PIS)
		if err != nil {
			return nil, err
		}
		det.Imposto.PIS = g
	}
	if r.COFINS != nil && grupo.COFINS != nil {
		g, err := montarGrupoCOFINS(numero, item, grupo.COFINS, r.COFINS)
		if err != nil {
			return nil, err
		}
		det.Imposto.COFINS = g
	}
	return det, nil
}

// aliquotaOuZero resolve os parâmetros opcionais do perfil para o campo da árvore.
func aliquotaOuZero(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func montarGrupoICMS(numero int, cfg *entity.ConfigICMS, r *tributo.ResultadoICMS) (*GrupoICMS, error) {
	g := &GrupoICMS{}
	origem := cfg.OrigemMercadoria

	switch {
	case r.CST == nfe.CSTICMSTributada:
		g.ICMS00 = &ICMS00{Origem: origem, CST: r.CST, ModBC: cfg.ModalidadeBC,
			BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor}

	case r.CST == nfe.CSTICMSTributadaComST:
		g.ICMS10 = &ICMS10{Origem: origem, CST: r.CST, ModBC: cfg.ModalidadeBC,
			BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST}

	case r.CST == nfe.CSTICMSComReducao:
		g.ICMS20 = &ICMS20{Origem: origem, CST: r.CST, ModBC: cfg.ModalidadeBC,
			Reducao: cfg.ReducaoBase, BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor}

	case r.CST == nfe.CSTICMSIsentaComST:
		g.ICMS30 = &ICMS30{Origem: origem, CST: r.CST,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST}

	case r.CST == nfe.CSTICMSIsenta || r.CST == nfe.CSTICMSNaoTributada || r.CST == nfe.CSTICMSSuspensao:
		g.ICMS40 = &ICMS40{Origem: origem, CST: r.CST,
			ValorDesonerado: r.ValorDesonerado, MotivoDesoneracao: cfg.MotivoDesoneracao}

	case r.CST == nfe.CSTICMSDiferimento:
		g.ICMS51 = &ICMS51{Origem: origem, CST: r.CST, ModBC: cfg.ModalidadeBC,
			Reducao: cfg.ReducaoBase, BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota),
			ValorOperacao: r.Valor.Add(r.ValorDiferido), Diferimento: cfg.PercentualDiferimento,
			ValorDiferido: r.ValorDiferido, Valor: r.Valor}

	case r.CST == nfe.CSTICMSCobradoAnteriormente:
		g.ICMS60 = &ICMS60{Origem: origem, CST: r.CST}

	case r.CST == nfe.CSTICMSReducaoComST:
		g.ICMS70 = &ICMS70{Origem: origem, CST: r.CST, ModBC: cfg.ModalidadeBC,
			Reducao: cfg.ReducaoBase, BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST}

	case r.CST == nfe.CSTICMSOutros:
		g.ICMS90 = &ICMS90{Origem: origem, CST: r.CST, ModBC: cfg.ModalidadeBC,
			Reducao: cfg.ReducaoBase, BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST}

	case r.CSOSN == nfe.CSOSNComCredito:
		g.SN101 = &ICMSSN101{Origem: origem, CSOSN: r.CSOSN,
			AliquotaCreditoSN: cfg.AliquotaCreditoSN, ValorCreditoSN: r.ValorCreditoSN}

	case r.CSOSN == nfe.CSOSNSemCredito || r.CSOSN == nfe.CSOSNIsencaoFaixa ||
		r.CSOSN == nfe.CSOSNImune || r.CSOSN == nfe.CSOSNNaoTributada:
		g.SN102 = &ICMSSN102{Origem: origem, CSOSN: r.CSOSN}

	case r.CSOSN == nfe.CSOSNComCreditoComST:
		g.SN201 = &ICMSSN201{Origem: origem, CSOSN: r.CSOSN,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST,
			AliquotaCreditoSN: cfg.AliquotaCreditoSN, ValorCreditoSN: r.ValorCreditoSN}

	case r.CSOSN == nfe.CSOSNSemCreditoComST || r.CSOSN == nfe.CSOSNIsencaoFaixaComST:
		g.SN202 = &ICMSSN202{Origem: origem, CSOSN: r.CSOSN,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST}

	case r.CSOSN == nfe.CSOSNCobradoPorST:
		g.SN500 = &ICMSSN500{Origem: origem, CSOSN: r.CSOSN}

	case r.CSOSN == nfe.CSOSNOutros:
		g.SN900 = &ICMSSN900{Origem: origem, CSOSN: r.CSOSN, ModBC: cfg.ModalidadeBC,
			Reducao: cfg.ReducaoBase, BaseICMS: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor,
			ModBCST: cfg.ModalidadeBCST, MVAST: cfg.MVAST, ReducaoST: cfg.ReducaoBaseST,
			BaseST: r.BaseST, AliquotaST: aliquotaOuZero(cfg.AliquotaST), ValorST: r.ValorST,
			AliquotaCreditoSN: cfg.AliquotaCreditoSN, ValorCreditoSN: r.ValorCreditoSN}

	default:
		return nil, &domain.ErroEstrutura{
			Campo: fmt.Sprintf("det[%d].ICMS", numero),
			Causa: fmt.Errorf("%w: CST/CSOSN %s%s", domain.ErrCSTNaoSuportado, r.CST, r.CSOSN),
		}
	}
	return g, nil
}

func montarGrupoICMSUFDest(cfg *entity.ConfigICMSUFDest, r *tributo.ResultadoICMSUFDest) *GrupoICMSUFDest {
	return &GrupoICMSUFDest{
		Base:                   r.Base,
		AliquotaFCPDestino:     cfg.AliquotaFCPDestino,
		AliquotaInternaDestino: cfg.AliquotaInternaDestino,
		AliquotaInterestadual:  cfg.AliquotaInterestadual,
		PercentualPartilha:     cfg.PercentualPartilha,
		ValorFCP:               r.ValorFCP,
		ValorUFDest:            r.ValorUFDest,
		ValorUFRemet:           r.ValorUFRemet,
	}
}

func montarGrupoIPI(item entity.ItemDocumento, cfg *entity.ConfigIPI, r *tributo.ResultadoIPI) *GrupoIPI {
	g := &GrupoIPI{CodigoEnquadramento: cfg.CodigoEnquadramento}
	if !r.Tributado {
		g.NT = &IPINT{CST: r.CST}
		return g
	}
	trib := &IPITrib{CST: r.CST, Valor: r.Valor}
	if cfg.TipoCalculo == entity.IPIValorPorUnidade {
		trib.Quantidade = item.Quantidade
		trib.ValorPorUnidade = aliquotaOuZero(cfg.ValorPorUnidade)
	} else {
		trib.Base = r.Base
		trib.Aliquota = aliquotaOuZero(cfg.Aliquota)
	}
	g.Trib = trib
	return g
}

func montarGrupoPIS(numero int, item entity.ItemDocumento, cfg *entity.ConfigPISCOFINS, r *tributo.ResultadoPISCOFINS) (*GrupoPIS, error) {
	switch {
	case nfe.ValidCSTPISCOFINSAliquota[r.CST]:
		return &GrupoPIS{Aliq: &PISAliq{CST: r.CST, Base: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor}}, nil
	case r.CST == nfe.CSTPISCOFINSPorQuantidade:
		return &GrupoPIS{Qtde: &PISQtde{CST: r.CST, Quantidade: item.Quantidade, ValorPorUnidade: aliquotaOuZero(cfg.ValorPorUnidade), Valor: r.Valor}}, nil
	case nfe.ValidCSTPISCOFINSNaoTributado[r.CST]:
		return &GrupoPIS{NT: &PISNT{CST: r.CST}}, nil
	case nfe.ValidCSTPISCOFINSOutras[r.CST]:
		return &GrupoPIS{Outr: &PISOutr{CST: r.CST, Base: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor}}, nil
	}
	return nil, &domain.ErroEstrutura{
		Campo: fmt.Sprintf("det[%d].PIS", numero),
		Causa: fmt.Errorf("%w: CST %q", domain.ErrCSTNaoSuportado, r.CST),
	}
}

func montarGrupoCOFINS(numero int, item entity.ItemDocumento, cfg *entity.ConfigPISCOFINS, r *tributo.ResultadoPISCOFINS) (*GrupoCOFINS, error) {
	switch {
	case nfe.ValidCSTPISCOFINSAliquota[r.CST]:
		return &GrupoCOFINS{Aliq: &COFINSAliq{CST: r.CST, Base: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor}}, nil
	case r.CST == nfe.CSTPISCOFINSPorQuantidade:
		return &GrupoCOFINS{Qtde: &COFINSQtde{CST: r.CST, Quantidade: item.Quantidade, ValorPorUnidade: aliquotaOuZero(cfg.ValorPorUnidade), Valor: r.Valor}}, nil
	case nfe.ValidCSTPISCOFINSNaoTributado[r.CST]:
		return &GrupoCOFINS{NT: &COFINSNT{CST: r.CST}}, nil
	case nfe.ValidCSTPISCOFINSOutras[r.CST]:
		return &GrupoCOFINS{Outr: &COFINSOutr{CST: r.CST, Base: r.Base, Aliquota: aliquotaOuZero(cfg.Aliquota), Valor: r.Valor}}, nil
	}
	return nil, &domain.ErroEstrutura{
		Campo: fmt.Sprintf("det[%d].COFINS", numero),
		Causa: fmt.Errorf("%w: CST %q", domain.ErrCSTNaoSuportado, r.CST),
	}
}

func montarTotais(t *entity.TotaisDocumento) TotaisNFe {
	return TotaisNFe{
		BaseICMS:            t.BaseICMS,
		ValorICMS:           t.ValorICMS,
		ValorICMSDesonerado: t.ValorICMSDesonerado,
		ValorFCPUFDest:      t.ValorFCPUFDest,
		ValorICMSUFDest:     t.ValorICMSUFDest,
		ValorICMSUFRemet:    t.ValorICMSUFRemet,
		BaseST:              t.BaseST,
		ValorST:             t.ValorST,
		ValorProdutos:       t.SomaLiquidos,
		ValorFrete:          t.Frete,
		ValorSeguro:         t.Seguro,
		ValorDesconto:       t.DescontoDocumento,
		ValorIPI:            t.ValorIPI,
		ValorPIS:            t.ValorPIS,
		ValorCOFINS:         t.ValorCOFINS,
		ValorOutros:         t.OutrasDespesas,
		ValorTotal:          t.ValorTotal,
	}
}

// verificarEstrutura confere a regra de exclusividade mútua: cada tributo de
// cada item deve carregar exatamente um subgrupo preenchido.
func verificarEstrutura(arv *ArvoreNFe) error {
	for _, det := range arv.Itens {
		if det.Imposto.ICMS != nil {
			if n := contarICMS(det.Imposto.ICMS); n != 1 {
				return &domain.ErroEstrutura{
					Campo: fmt.Sprintf("det[%d].ICMS", det.Numero),
					Causa: fmt.Errorf("esperado exatamente 1 subgrupo de ICMS, encontrados %d", n),
				}
			}
		}
		if ipi := det.Imposto.IPI; ipi != nil {
			n := 0
			if ipi.Trib != nil {
				n++
			}
			if ipi.NT != nil {
				n++
			}
			if n != 1 {
				return &domain.ErroEstrutura{
					Campo: fmt.Sprintf("det[%d].IPI", det.Numero),
					Causa: fmt.Errorf("esperado exatamente 1 subgrupo de IPI, encontrados %d", n),
				}
			}
		}
		if pis := det.Imposto.PIS; pis != nil {
			if n := contarNaoNulos(pis.Aliq != nil, pis.Qtde != nil, pis.NT != nil, pis.Outr != nil); n != 1 {
				return &domain.ErroEstrutura{
					Campo: fmt.Sprintf("det[%d].PIS", det.Numero),
					Causa: fmt.Errorf("esperado exatamente 1 subgrupo de PIS, encontrados %d", n),
				}
			}
		}
		if cofins := det.Imposto.COFINS; cofins != nil {
			if n := contarNaoNulos(cofins.Aliq != nil, cofins.Qtde != nil, cofins.NT != nil, cofins.Outr != nil); n != 1 {
				return &domain.ErroEstrutura{
					Campo: fmt.Sprintf("det[%d].COFINS", det.Numero),
					Causa: fmt.Errorf("esperado exatamente 1 subgrupo de COFINS, encontrados %d", n),
				}
			}
		}
	}
	return nil
}

func contarICMS(g *GrupoICMS) int {
	return contarNaoNulos(
		g.ICMS00 != nil, g.ICMS10 != nil, g.ICMS20 != nil, g.ICMS30 != nil,
		g.ICMS40 != nil, g.ICMS51 != nil, g.ICMS60 != nil, g.ICMS70 != nil,
		g.ICMS90 != nil, g.SN101 != nil, g.SN102 != nil, g.SN201 != nil,
		g.SN202 != nil, g.SN500 != nil, g.SN900 != nil,
	)
}

func contarNaoNulos(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
