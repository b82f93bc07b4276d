// Package moeda define a aritmética monetária de ponto fixo do motor fiscal.
// Todo valor armazenado em campo de documento deve ser quantizado explicitamente:
// escala 2 para totais em moeda, escala 4 para unitários e alíquotas.
// O arredondamento é half-away-from-zero (o mesmo de decimal.Round), exigido
// pelo cruzamento de totais da SEFAZ.
package moeda

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Escalas de quantização usadas pelo motor.
const (
	EscalaMoeda    = 2 // campos monetários (vProd, vBC, vICMS, vNF...)
	EscalaUnitario = 4 // quantidades, valores unitários e alíquotas
)

// ErrValorInvalido indica entrada monetária malformada ou divisão por zero.
var ErrValorInvalido = errors.New("valor monetário inválido")

var cem = decimal.NewFromInt(100)

// Parse converte uma string decimal ("1500.00") em valor monetário.
// Falha com ErrValorInvalido para entradas malformadas.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrValorInvalido, s)
	}
	return d, nil
}

// Quantizar arredonda para a escala dada com half-away-from-zero.
// Quantizar um valor já quantizado é no-op.
func Quantizar(d decimal.Decimal, escala int32) decimal.Decimal {
	return d.Round(escala)
}

// QuantizarMoeda arredonda para 2 casas (campos monetários armazenados).
func QuantizarMoeda(d decimal.Decimal) decimal.Decimal {
	return d.Round(EscalaMoeda)
}

// Percentual aplica uma alíquota percentual (ex.: 18.0000) sobre a base,
// mantendo a precisão intermediária. O chamador quantiza antes de armazenar.
func Percentual(base, aliquota decimal.Decimal) decimal.Decimal {
	return base.Mul(aliquota).Div(cem)
}

// ReduzirBase aplica uma redução percentual de base de cálculo:
// base × (1 − reducao/100).
func ReduzirBase(base, reducao decimal.Decimal) decimal.Decimal {
	if reducao.IsZero() {
		return base
	}
	return base.Mul(decimal.NewFromInt(1).Sub(reducao.Div(cem)))
}

// AcrescerMargem aplica a margem de valor agregado (MVA) da substituição
// tributária: base × (1 + mva/100).
func AcrescerMargem(base, mva decimal.Decimal) decimal.Decimal {
	if mva.IsZero() {
		return base
	}
	return base.Mul(decimal.NewFromInt(1).Add(mva.Div(cem)))
}

// PorQuantidade calcula tributo de valor fixo por unidade tributável.
func PorQuantidade(quantidade, valorUnitario decimal.Decimal) decimal.Decimal {
	return quantidade.Mul(valorUnitario)
}

// Dividir divide a por b; divisão por zero falha com ErrValorInvalido.
func Dividir(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: divisão por zero", ErrValorInvalido)
	}
	return a.Div(b), nil
}

// NaoNegativo valida que um campo de magnitude não carrega sinal.
func NaoNegativo(d decimal.Decimal, campo string) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s não pode ser negativo (%s)", ErrValorInvalido, campo, d.String())
	}
	return nil
}
