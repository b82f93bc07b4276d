package tributo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
)

// ProcessarItem orquestra os motores de tributo de um item em ordem fixa.
// O IPI é apurado antes do ICMS porque o perfil pode mandar somá-lo à base do
// ICMS próprio e/ou da ST (dependência de dados entre motores; a ordem não é
// configurável). Falha rápida: o primeiro erro interrompe, nenhum resultado
// parcial é propagado.
func ProcessarItem(item entity.ItemDocumento, grupo *entity.GrupoFiscal) (*ResultadoItem, error) {
	if grupo == nil {
		return nil, fmt.Errorf("%w: item %d", domain.ErrGrupoFiscalAusente, item.Ordem)
	}
	if err := moeda.NaoNegativo(item.Quantidade, "quantidade"); err != nil {
		return nil, err
	}
	if err := moeda.NaoNegativo(item.ValorUnitario, "valor unitário"); err != nil {
		return nil, err
	}
	if err := moeda.NaoNegativo(item.Desconto, "desconto"); err != nil {
		return nil, err
	}

	r := &ResultadoItem{Ordem: item.Ordem}
	r.Bruto = moeda.QuantizarMoeda(item.Quantidade.Mul(item.ValorUnitario))
	r.Desconto = descontoItem(r.Bruto, item)
	r.Liquido = r.Bruto.Sub(r.Desconto)
	if r.Liquido.IsNegative() {
		return nil, fmt.Errorf("%w: desconto (%s) maior que o bruto (%s) no item %d",
			moeda.ErrValorInvalido, r.Desconto.StringFixed(2), r.Bruto.StringFixed(2), item.Ordem)
	}

	ipi, err := CalcularIPI(item, grupo.IPI, r.Liquido)
	if err != nil {
		return nil, err
	}
	r.IPI = ipi

	// Composição de base: o IPI apurado entra na BC do ICMS/ST quando o
	// perfil assim manda.
	baseICMS := r.Liquido
	baseST := r.Liquido
	if ipi != nil && grupo.IPI != nil {
		if grupo.IPI.IncluirBCICMS {
			baseICMS = baseICMS.Add(ipi.Valor)
		}
		if grupo.IPI.IncluirBCICMSST {
			baseST = baseST.Add(ipi.Valor)
		}
	}

	icms, err := CalcularICMS(item, grupo.ICMS, grupo.Regime, baseICMS, baseST)
	if err != nil {
		return nil, err
	}
	r.ICMS = icms

	r.ICMSUFDest = CalcularICMSUFDest(grupo.ICMSUFDest, baseICMS)

	// Despesas rateadas compõem a base de PIS/COFINS.
	baseContribuicao := r.Liquido.Add(item.DespesasRateadas)

	pis, err := CalcularPISCOFINS(item, grupo.PIS, "PIS", baseContribuicao)
	if err != nil {
		return nil, err
	}
	r.PIS = pis

	cofins, err := CalcularPISCOFINS(item, grupo.COFINS, "COFINS", baseContribuicao)
	if err != nil {
		return nil, err
	}
	r.COFINS = cofins

	return r, nil
}

// descontoItem resolve o desconto do item: valor absoluto ou percentual sobre
// o bruto, sempre quantizado na escala 2.
func descontoItem(bruto decimal.Decimal, item entity.ItemDocumento) decimal.Decimal {
	if item.Desconto.IsZero() {
		return decimal.Zero
	}
	if item.TipoDesconto == entity.DescontoPercentual {
		return moeda.QuantizarMoeda(moeda.Percentual(bruto, item.Desconto))
	}
	return moeda.QuantizarMoeda(item.Desconto)
}
