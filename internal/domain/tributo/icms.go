package tributo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// CalcularICMS calcula o ICMS próprio e a substituição tributária de um item.
// baseOperacao é o líquido do item já acrescido do IPI quando IncluirBCICMS
// está ligado; baseST idem para IncluirBCICMSST. O regime escolhe a tabela de
// dispatch: CST no regime normal, CSOSN no Simples Nacional.
func CalcularICMS(item entity.ItemDocumento, cfg *entity.ConfigICMS, regime string, baseOperacao, baseST decimal.Decimal) (*ResultadoICMS, error) {
	if cfg == nil {
		return nil, nil
	}
	if regime == nfe.RegimeSimplesNacional || regime == nfe.RegimeSimplesExcesso {
		return calcularICMSSimples(cfg, baseOperacao, baseST)
	}
	return calcularICMSNormal(cfg, baseOperacao, baseST)
}

func calcularICMSNormal(cfg *entity.ConfigICMS, baseOperacao, baseST decimal.Decimal) (*ResultadoICMS, error) {
	if !nfe.ValidCSTICMS[cfg.CST] {
		return nil, fmt.Errorf("%w: CST ICMS %q", domain.ErrCSTNaoSuportado, cfg.CST)
	}
	r := &ResultadoICMS{CST: cfg.CST}

	switch cfg.CST {
	case nfe.CSTICMSTributada:
		if err := calcularICMSProprio(r, cfg, baseOperacao, decimal.Zero); err != nil {
			return nil, err
		}

	case nfe.CSTICMSTributadaComST:
		if err := calcularICMSProprio(r, cfg, baseOperacao, decimal.Zero); err != nil {
			return nil, err
		}
		if err := calcularICMSST(r, cfg, baseST); err != nil {
			return nil, err
		}

	case nfe.CSTICMSComReducao:
		if err := calcularICMSProprio(r, cfg, baseOperacao, cfg.ReducaoBase); err != nil {
			return nil, err
		}

	case nfe.CSTICMSIsentaComST:
		if err := calcularICMSST(r, cfg, baseST); err != nil {
			return nil, err
		}

	case nfe.CSTICMSIsenta, nfe.CSTICMSNaoTributada, nfe.CSTICMSSuspensao,
		nfe.CSTICMSCobradoAnteriormente:
		// sem débito próprio nem ST nesta operação

	case nfe.CSTICMSDiferimento:
		if err := calcularICMSProprio(r, cfg, baseOperacao, cfg.ReducaoBase); err != nil {
			return nil, err
		}
		// vICMSDif = vICMSOp × pDif; o devido é a operação menos o diferido.
		operacao := r.Valor
		diferido := moeda.QuantizarMoeda(moeda.Percentual(operacao, cfg.PercentualDiferimento))
		r.ValorDiferido = diferido
		r.Valor = operacao.Sub(diferido)

	case nfe.CSTICMSReducaoComST:
		if err := calcularICMSProprio(r, cfg, baseOperacao, cfg.ReducaoBase); err != nil {
			return nil, err
		}
		if err := calcularICMSST(r, cfg, baseST); err != nil {
			return nil, err
		}

	case nfe.CSTICMSOutros:
		if cfg.Aliquota != nil {
			if err := calcularICMSProprio(r, cfg, baseOperacao, cfg.ReducaoBase); err != nil {
				return nil, err
			}
		}
		if cfg.AliquotaST != nil {
			if err := calcularICMSST(r, cfg, baseST); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

func calcularICMSSimples(cfg *entity.ConfigICMS, baseOperacao, baseST decimal.Decimal) (*ResultadoICMS, error) {
	if !nfe.ValidCSOSN[cfg.CSOSN] {
		return nil, fmt.Errorf("%w: CSOSN %q", domain.ErrCSTNaoSuportado, cfg.CSOSN)
	}
	r := &ResultadoICMS{CSOSN: cfg.CSOSN}

	switch cfg.CSOSN {
	case nfe.CSOSNComCredito:
		r.ValorCreditoSN = moeda.QuantizarMoeda(moeda.Percentual(baseOperacao, cfg.AliquotaCreditoSN))

	case nfe.CSOSNSemCredito, nfe.CSOSNIsencaoFaixa, nfe.CSOSNImune,
		nfe.CSOSNNaoTributada, nfe.CSOSNCobradoPorST:
		// sem débito nesta operação

	case nfe.CSOSNComCreditoComST:
		r.ValorCreditoSN = moeda.QuantizarMoeda(moeda.Percentual(baseOperacao, cfg.AliquotaCreditoSN))
		if err := calcularICMSST(r, cfg, baseST); err != nil {
			return nil, err
		}

	case nfe.CSOSNSemCreditoComST, nfe.CSOSNIsencaoFaixaComST:
		if err := calcularICMSST(r, cfg, baseST); err != nil {
			return nil, err
		}

	case nfe.CSOSNOutros:
		if cfg.Aliquota != nil {
			if err := calcularICMSProprio(r, cfg, baseOperacao, cfg.ReducaoBase); err != nil {
				return nil, err
			}
		}
		if cfg.AliquotaST != nil {
			if err := calcularICMSST(r, cfg, baseST); err != nil {
				return nil, err
			}
		}
		if cfg.AliquotaCreditoSN.IsPositive() {
			r.ValorCreditoSN = moeda.QuantizarMoeda(moeda.Percentual(baseOperacao, cfg.AliquotaCreditoSN))
		}
	}
	return r, nil
}

// calcularICMSProprio apura o débito próprio: base (opcionalmente reduzida)
// vezes a alíquota do perfil.
func calcularICMSProprio(r *ResultadoICMS, cfg *entity.ConfigICMS, base, reducao decimal.Decimal) error {
	if cfg.Aliquota == nil {
		return fmt.Errorf("%w: alíquota de ICMS para CST/CSOSN %s%s", domain.ErrParametroAusente, cfg.CST, cfg.CSOSN)
	}
	bc := moeda.QuantizarMoeda(moeda.ReduzirBase(base, reducao))
	r.Base = bc
	r.Valor = moeda.QuantizarMoeda(moeda.Percentual(bc, *cfg.Aliquota))
	return nil
}

// calcularICMSST apura a substituição tributária: BC secundária com margem de
// valor agregado e redução próprias; o valor retido é o imposto da cadeia
// menos o débito próprio já apurado.
func calcularICMSST(r *ResultadoICMS, cfg *entity.ConfigICMS, baseST decimal.Decimal) error {
	if cfg.AliquotaST == nil {
		return fmt.Errorf("%w: alíquota de ICMS ST para CST/CSOSN %s%s", domain.ErrParametroAusente, cfg.CST, cfg.CSOSN)
	}
	bc := moeda.AcrescerMargem(baseST, cfg.MVAST)
	bc = moeda.QuantizarMoeda(moeda.ReduzirBase(bc, cfg.ReducaoBaseST))
	r.BaseST = bc
	r.ValorST = moeda.QuantizarMoeda(moeda.Percentual(bc, *cfg.AliquotaST).Sub(r.Valor))
	return nil
}

// CalcularICMSUFDest apura a partilha interestadual (DIFAL) e o FCP da UF de
// destino. Resultado informativo: não compõe o total geral.
func CalcularICMSUFDest(cfg *entity.ConfigICMSUFDest, baseOperacao decimal.Decimal) *ResultadoICMSUFDest {
	if cfg == nil {
		return nil
	}
	diferenca := cfg.AliquotaInternaDestino.Sub(cfg.AliquotaInterestadual)
	difal := moeda.Percentual(baseOperacao, diferenca)
	valorDest := moeda.QuantizarMoeda(moeda.Percentual(difal, cfg.PercentualPartilha))
	return &ResultadoICMSUFDest{
		Base:         moeda.QuantizarMoeda(baseOperacao),
		ValorFCP:     moeda.QuantizarMoeda(moeda.Percentual(baseOperacao, cfg.AliquotaFCPDestino)),
		ValorUFDest:  valorDest,
		ValorUFRemet: moeda.QuantizarMoeda(difal).Sub(valorDest),
	}
}
