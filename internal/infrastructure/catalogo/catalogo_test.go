package catalogo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-nfe/internal/infrastructure/catalogo"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

func escreverCatalogo(t *testing.T, conteudo string) string {
	t.Helper()
	caminho := filepath.Join(t.TempDir(), "grupos_fiscais.yaml")
	require.NoError(t, os.WriteFile(caminho, []byte(conteudo), 0o644))
	return caminho
}

const catalogoExemplo = `
grupos:
  - id: venda-sp
    descricao: Venda interna SP, regime normal
    regime: "3"
    icms:
      cst: "00"
      origem: "0"
      mod_bc: "3"
      aliquota: "18"
    ipi:
      cst: "50"
      tipo_calculo: "2"
      aliquota: "10"
      incluir_bc_icms: true
    pis:
      cst: "01"
      aliquota: "1.65"
    cofins:
      cst: "01"
      aliquota: "7.6"
  - id: simples-revenda
    regime: "1"
    icms:
      csosn: "102"
`

func TestCarregar_CatalogoCompleto(t *testing.T) {
	cat, err := catalogo.Carregar(escreverCatalogo(t, catalogoExemplo))
	require.NoError(t, err)
	assert.Len(t, cat.IDs(), 2)

	g, ok := cat.Grupo("venda-sp")
	require.True(t, ok)
	assert.Equal(t, nfe.RegimeNormal, g.Regime)
	require.NotNil(t, g.ICMS)
	assert.Equal(t, "00", g.ICMS.CST)
	require.NotNil(t, g.ICMS.Aliquota)
	assert.Equal(t, "18.0000", g.ICMS.Aliquota.StringFixed(4),
		"alíquota quantizada na escala de unitários")
	assert.Nil(t, g.ICMS.AliquotaST, "parâmetro ausente fica nulo, não zero")
	require.NotNil(t, g.IPI)
	assert.True(t, g.IPI.IncluirBCICMS)
	assert.Equal(t, "999", g.IPI.CodigoEnquadramento, "enquadramento ausente assume o padrão")
	require.NotNil(t, g.PIS)
	require.NotNil(t, g.COFINS)
	assert.Nil(t, g.ICMSUFDest)

	simples, ok := cat.Grupo("simples-revenda")
	require.True(t, ok)
	assert.Equal(t, nfe.RegimeSimplesNacional, simples.Regime)
	assert.Equal(t, "102", simples.ICMS.CSOSN)
	assert.Nil(t, simples.IPI)
}

func TestCarregar_GrupoInexistente(t *testing.T) {
	cat, err := catalogo.Carregar(escreverCatalogo(t, catalogoExemplo))
	require.NoError(t, err)
	_, ok := cat.Grupo("nao-existe")
	assert.False(t, ok)
}

func TestCarregar_AliquotaMalformada(t *testing.T) {
	_, err := catalogo.Carregar(escreverCatalogo(t, `
grupos:
  - id: quebrado
    icms:
      cst: "00"
      aliquota: "dezoito"
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, moeda.ErrValorInvalido)
	assert.Contains(t, err.Error(), "quebrado", "o erro identifica o grupo")
}

func TestCarregar_IDDuplicado(t *testing.T) {
	_, err := catalogo.Carregar(escreverCatalogo(t, `
grupos:
  - id: repetido
  - id: repetido
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicado")
}

func TestCarregar_GrupoSemID(t *testing.T) {
	_, err := catalogo.Carregar(escreverCatalogo(t, `
grupos:
  - descricao: anônimo
`))
	assert.Error(t, err)
}

func TestCarregar_ArquivoInexistente(t *testing.T) {
	_, err := catalogo.Carregar("/caminho/que/nao/existe.yaml")
	assert.Error(t, err)
}
