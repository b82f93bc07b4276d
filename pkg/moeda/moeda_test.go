package moeda_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
)

func TestParse_ValorValido(t *testing.T) {
	d, err := moeda.Parse("1500.00")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(1500)))
}

func TestParse_ValorMalformado(t *testing.T) {
	_, err := moeda.Parse("12,50")
	require.Error(t, err)
	assert.ErrorIs(t, err, moeda.ErrValorInvalido, "entrada malformada deve falhar com ErrValorInvalido")
}

// TestQuantizar_HalfAwayFromZero valida o modo de arredondamento exigido para
// campos monetários: 0.005 sobe para 0.01, −0.005 desce para −0.01.
func TestQuantizar_HalfAwayFromZero(t *testing.T) {
	casos := []struct {
		entrada  string
		esperado string
	}{
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"2.675", "2.68"},
		{"1.994", "1.99"},
		{"1.995", "2.00"},
	}
	for _, c := range casos {
		d := decimal.RequireFromString(c.entrada)
		assert.Equal(t, c.esperado, moeda.QuantizarMoeda(d).StringFixed(2),
			"quantização de %s", c.entrada)
	}
}

// TestQuantizar_Idempotente: quantizar um valor já quantizado é no-op.
func TestQuantizar_Idempotente(t *testing.T) {
	d := decimal.RequireFromString("119.60")
	uma := moeda.QuantizarMoeda(d)
	duas := moeda.QuantizarMoeda(uma)
	assert.True(t, uma.Equal(duas), "quantizar duas vezes deve produzir o mesmo valor")
	assert.Equal(t, uma.StringFixed(2), duas.StringFixed(2))
}

func TestPercentual(t *testing.T) {
	base := decimal.NewFromInt(50)
	aliquota := decimal.NewFromInt(18)
	v := moeda.QuantizarMoeda(moeda.Percentual(base, aliquota))
	assert.Equal(t, "9.00", v.StringFixed(2), "18% de 50.00 deve ser 9.00")
}

func TestReduzirBase(t *testing.T) {
	base := decimal.NewFromInt(100)
	reduzida := moeda.ReduzirBase(base, decimal.NewFromInt(40))
	assert.Equal(t, "60.00", moeda.QuantizarMoeda(reduzida).StringFixed(2))

	semReducao := moeda.ReduzirBase(base, decimal.Zero)
	assert.True(t, base.Equal(semReducao), "redução zero não altera a base")
}

func TestAcrescerMargem(t *testing.T) {
	base := decimal.NewFromInt(100)
	comMVA := moeda.AcrescerMargem(base, decimal.NewFromInt(35))
	assert.Equal(t, "135.00", moeda.QuantizarMoeda(comMVA).StringFixed(2))
}

func TestPorQuantidade(t *testing.T) {
	v := moeda.PorQuantidade(decimal.NewFromInt(10), decimal.RequireFromString("1.25"))
	assert.Equal(t, "12.50", moeda.QuantizarMoeda(v).StringFixed(2),
		"10 unidades a 1.25 por unidade devem render 12.50")
}

func TestDividir_PorZero(t *testing.T) {
	_, err := moeda.Dividir(decimal.NewFromInt(1), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, moeda.ErrValorInvalido)
}

func TestNaoNegativo(t *testing.T) {
	assert.NoError(t, moeda.NaoNegativo(decimal.NewFromInt(10), "quantidade"))
	err := moeda.NaoNegativo(decimal.NewFromInt(-1), "quantidade")
	require.Error(t, err)
	assert.ErrorIs(t, err, moeda.ErrValorInvalido)
}
