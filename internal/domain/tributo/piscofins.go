package tributo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// CalcularPISCOFINS apura PIS ou COFINS (o mesmo motor serve aos dois, as
// fórmulas são idênticas). A base é o líquido do item acrescido das despesas
// rateadas. Dispatch por CST:
//
//	01/02 — percentual sobre a base (exige alíquota);
//	03    — valor por unidade de medida (exige valor por unidade);
//	04–09 — sem incidência, grupo informativo;
//	49–99 — "outras operações": usa o parâmetro disponível; sem nenhum,
//	        grupo informativo com valor zero.
func CalcularPISCOFINS(item entity.ItemDocumento, cfg *entity.ConfigPISCOFINS, tributo string, base decimal.Decimal) (*ResultadoPISCOFINS, error) {
	if cfg == nil {
		return nil, nil
	}

	switch {
	case nfe.ValidCSTPISCOFINSAliquota[cfg.CST]:
		if cfg.Aliquota == nil {
			return nil, fmt.Errorf("%w: alíquota de %s para CST %s", domain.ErrParametroAusente, tributo, cfg.CST)
		}
		return porAliquota(cfg, base), nil

	case cfg.CST == nfe.CSTPISCOFINSPorQuantidade:
		if cfg.ValorPorUnidade == nil {
			return nil, fmt.Errorf("%w: valor por unidade de %s para CST 03", domain.ErrParametroAusente, tributo)
		}
		return porQuantidade(cfg, item.Quantidade), nil

	case nfe.ValidCSTPISCOFINSNaoTributado[cfg.CST]:
		return &ResultadoPISCOFINS{CST: cfg.CST}, nil

	case nfe.ValidCSTPISCOFINSOutras[cfg.CST]:
		// o parâmetro presente decide a fórmula; sem nenhum é informativo zero.
		if cfg.Aliquota != nil {
			return porAliquota(cfg, base), nil
		}
		if cfg.ValorPorUnidade != nil {
			return porQuantidade(cfg, item.Quantidade), nil
		}
		return &ResultadoPISCOFINS{CST: cfg.CST}, nil

	default:
		return nil, fmt.Errorf("%w: CST %s %q", domain.ErrCSTNaoSuportado, tributo, cfg.CST)
	}
}

func porAliquota(cfg *entity.ConfigPISCOFINS, base decimal.Decimal) *ResultadoPISCOFINS {
	bc := moeda.QuantizarMoeda(base)
	return &ResultadoPISCOFINS{
		CST:   cfg.CST,
		Base:  bc,
		Valor: moeda.QuantizarMoeda(moeda.Percentual(bc, *cfg.Aliquota)),
	}
}

func porQuantidade(cfg *entity.ConfigPISCOFINS, quantidade decimal.Decimal) *ResultadoPISCOFINS {
	return &ResultadoPISCOFINS{
		CST:   cfg.CST,
		Valor: moeda.QuantizarMoeda(moeda.PorQuantidade(quantidade, *cfg.ValorPorUnidade)),
	}
}
