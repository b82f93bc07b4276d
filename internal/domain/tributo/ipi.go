package tributo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// CalcularIPI apura o IPI de um item. O TipoCalculo do perfil escolhe entre
// percentual sobre a base e valor fixo por unidade tributável; o parâmetro do
// modo não selecionado é ignorado mesmo quando presente.
func CalcularIPI(item entity.ItemDocumento, cfg *entity.ConfigIPI, liquido decimal.Decimal) (*ResultadoIPI, error) {
	if cfg == nil {
		return nil, nil
	}
	if nfe.ValidCSTIPINaoTributado[cfg.CST] {
		return &ResultadoIPI{CST: cfg.CST, Tributado: false}, nil
	}
	if !nfe.ValidCSTIPITributado[cfg.CST] {
		return nil, fmt.Errorf("%w: CST IPI %q", domain.ErrCSTNaoSuportado, cfg.CST)
	}

	r := &ResultadoIPI{CST: cfg.CST, Tributado: true}
	switch cfg.TipoCalculo {
	case entity.IPIPercentual:
		if cfg.Aliquota == nil {
			return nil, fmt.Errorf("%w: alíquota de IPI para CST %s em modo percentual", domain.ErrParametroAusente, cfg.CST)
		}
		r.Base = moeda.QuantizarMoeda(liquido)
		r.Valor = moeda.QuantizarMoeda(moeda.Percentual(r.Base, *cfg.Aliquota))

	case entity.IPIValorPorUnidade:
		if cfg.ValorPorUnidade == nil {
			return nil, fmt.Errorf("%w: valor por unidade de IPI para CST %s", domain.ErrParametroAusente, cfg.CST)
		}
		// independe do preço unitário: quantidade × valor por unidade tributável.
		r.Valor = moeda.QuantizarMoeda(moeda.PorQuantidade(item.Quantidade, *cfg.ValorPorUnidade))

	default:
		return nil, fmt.Errorf("%w: tipo de cálculo de IPI %q", domain.ErrParametroAusente, cfg.TipoCalculo)
	}
	return r, nil
}
