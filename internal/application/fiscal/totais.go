// Package fiscal expõe a superfície de operações do motor: agregação de
// totais, validação, montagem da árvore e ciclo de vida do documento.
package fiscal

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/tributo"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
)

// CalcularTotais recomputa os totais do documento a partir da lista completa
// de itens. Nunca atualiza um total anterior incrementalmente: devolve um
// TotaisDocumento novo e os resultados por item usados na montagem da árvore.
// A primeira falha de item interrompe e é embrulhada em ErroAgregacao com o
// índice do item.
func CalcularTotais(doc *entity.Documento) (*entity.TotaisDocumento, []*tributo.ResultadoItem, error) {
	if doc == nil {
		return nil, nil, fmt.Errorf("%w: documento nulo", domain.ErrDocumentoInvalido)
	}
	if len(doc.Itens) == 0 {
		return nil, nil, fmt.Errorf("%w: documento sem itens", domain.ErrDocumentoInvalido)
	}

	t := &entity.TotaisDocumento{}
	resultados := make([]*tributo.ResultadoItem, 0, len(doc.Itens))

	// Impostos que somam no total geral: os inclusos no preço do item não
	// entram de novo (o líquido já os carrega).
	var impostosAdicionais decimal.Decimal

	for i, item := range doc.Itens {
		grupo := doc.Grupos[item.GrupoFiscalID]
		if grupo == nil {
			return nil, nil, &domain.ErroAgregacao{IndiceItem: i, Causa: fmt.Errorf("%w: grupo %q", domain.ErrGrupoFiscalAusente, item.GrupoFiscalID)}
		}
		r, err := tributo.ProcessarItem(item, grupo)
		if err != nil {
			return nil, nil, &domain.ErroAgregacao{IndiceItem: i, Causa: err}
		}
		resultados = append(resultados, r)

		t.SomaLiquidos = t.SomaLiquidos.Add(r.Liquido)

		if r.ICMS != nil {
			t.BaseICMS = t.BaseICMS.Add(r.ICMS.Base)
			t.ValorICMS = t.ValorICMS.Add(r.ICMS.Valor)
			t.BaseST = t.BaseST.Add(r.ICMS.BaseST)
			t.ValorST = t.ValorST.Add(r.ICMS.ValorST)
			t.ValorICMSDesonerado = t.ValorICMSDesonerado.Add(r.ICMS.ValorDesonerado)
			t.ValorDiferido = t.ValorDiferido.Add(r.ICMS.ValorDiferido)
			t.ValorCreditoSN = t.ValorCreditoSN.Add(r.ICMS.ValorCreditoSN)

			if grupo.ICMS == nil || !grupo.ICMS.ICMSInclusoPreco {
				impostosAdicionais = impostosAdicionais.Add(r.ICMS.Valor)
			}
			if grupo.ICMS == nil || !grupo.ICMS.ICMSSTInclusoPreco {
				impostosAdicionais = impostosAdicionais.Add(r.ICMS.ValorST)
			}
		}
		if r.ICMSUFDest != nil {
			t.ValorFCPUFDest = t.ValorFCPUFDest.Add(r.ICMSUFDest.ValorFCP)
			t.ValorICMSUFDest = t.ValorICMSUFDest.Add(r.ICMSUFDest.ValorUFDest)
			t.ValorICMSUFRemet = t.ValorICMSUFRemet.Add(r.ICMSUFDest.ValorUFRemet)
		}
		if r.IPI != nil {
			t.ValorIPI = t.ValorIPI.Add(r.IPI.Valor)
			if grupo.IPI == nil || !grupo.IPI.IPIInclusoPreco {
				impostosAdicionais = impostosAdicionais.Add(r.IPI.Valor)
			}
		}
		if r.PIS != nil {
			t.ValorPIS = t.ValorPIS.Add(r.PIS.Valor)
			impostosAdicionais = impostosAdicionais.Add(r.PIS.Valor)
		}
		if r.COFINS != nil {
			t.ValorCOFINS = t.ValorCOFINS.Add(r.COFINS.Valor)
			impostosAdicionais = impostosAdicionais.Add(r.COFINS.Valor)
		}
	}

	if err := moeda.NaoNegativo(doc.DescontoDoc, "desconto do documento"); err != nil {
		return nil, nil, err
	}
	t.DescontoDocumento = descontoDocumento(doc, t.SomaLiquidos)
	t.Frete = moeda.QuantizarMoeda(doc.Frete)
	t.Seguro = moeda.QuantizarMoeda(doc.Seguro)
	t.OutrasDespesas = moeda.QuantizarMoeda(doc.OutrasDespesas)

	t.ValorTotal = t.SomaLiquidos.
		Sub(t.DescontoDocumento).
		Add(t.Frete).
		Add(t.Seguro).
		Add(t.OutrasDespesas).
		Add(impostosAdicionais)

	return t, resultados, nil
}

// descontoDocumento resolve o desconto em nível de documento: percentual
// aplicado sobre a soma dos líquidos dos itens, nunca sobre o bruto.
func descontoDocumento(doc *entity.Documento, somaLiquidos decimal.Decimal) decimal.Decimal {
	if doc.DescontoDoc.IsZero() {
		return decimal.Zero
	}
	if doc.TipoDescontoDoc == entity.DescontoPercentual {
		return moeda.QuantizarMoeda(moeda.Percentual(somaLiquidos, doc.DescontoDoc))
	}
	return moeda.QuantizarMoeda(doc.DescontoDoc)
}
