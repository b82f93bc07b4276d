package nfe_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	domnfe "github.com/tu-usuario/fiscal-nfe/internal/domain/nfe"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/tributo"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func grupoCompleto() *entity.GrupoFiscal {
	return &entity.GrupoFiscal{
		ID:     "completo",
		Regime: nfe.RegimeNormal,
		ICMS: &entity.ConfigICMS{
			CST:          nfe.CSTICMSTributada,
			ModalidadeBC: nfe.ModBCValorOperacao,
			Aliquota:     decPtr("18"),
		},
		IPI: &entity.ConfigIPI{
			CST:                 nfe.CSTIPISaidaTributada,
			CodigoEnquadramento: "999",
			TipoCalculo:         entity.IPIPercentual,
			Aliquota:            decPtr("10"),
		},
		PIS:    &entity.ConfigPISCOFINS{CST: nfe.CSTPISCOFINSAliquotaBasica, Aliquota: decPtr("1.65")},
		COFINS: &entity.ConfigPISCOFINS{CST: nfe.CSTPISCOFINSSemIncidencia},
	}
}

func docParaMontar(grupo *entity.GrupoFiscal) (*entity.Documento, []*tributo.ResultadoItem) {
	item := entity.ItemDocumento{
		Ordem:         1,
		ProdutoID:     "P-001",
		Descricao:     "Produto de teste",
		NCM:           "94017900",
		CFOP:          "5102",
		Unidade:       "UN",
		Quantidade:    dec("10"),
		ValorUnitario: dec("5.00"),
		GrupoFiscalID: grupo.ID,
	}
	doc := &entity.Documento{
		ID:               "doc-1",
		Modelo:           nfe.ModeloNFe,
		Serie:            "1",
		Numero:           "42",
		NaturezaOperacao: "VENDA",
		TipoOperacao:     nfe.TipoOperacaoSaida,
		DataEmissao:      time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC),
		Emitente: entity.Empresa{
			RazaoSocial: "Empresa Exemplo LTDA",
			CNPJ:        "11222333000181",
			Regime:      nfe.RegimeNormal,
			Endereco:    entity.Endereco{UF: "SP", Municipio: "São Paulo", CodigoMunicipio: "3550308"},
		},
		Destinatario: entity.Cliente{
			Nome:        "Cliente Exemplo",
			CPFCNPJ:     "11222333000181",
			IndicadorIE: entity.IndIENaoContribuinte,
			Endereco:    entity.Endereco{UF: "SP"},
		},
		Itens:  []entity.ItemDocumento{item},
		Grupos: map[string]*entity.GrupoFiscal{grupo.ID: grupo},
	}

	r, err := tributo.ProcessarItem(item, grupo)
	if err != nil {
		panic(err)
	}
	doc.Totais = &entity.TotaisDocumento{
		SomaLiquidos: r.Liquido,
		BaseICMS:     r.ICMS.Base,
		ValorICMS:    r.ICMS.Valor,
		ValorIPI:     r.IPI.Valor,
		ValorPIS:     r.PIS.Valor,
	}
	return doc, []*tributo.ResultadoItem{r}
}

func TestMontarArvore_DocumentoCompleto(t *testing.T) {
	doc, resultados := docParaMontar(grupoCompleto())

	arv, err := domnfe.MontarArvore(doc, resultados)
	require.NoError(t, err)

	assert.Equal(t, "35", arv.Identificacao.CodigoUF, "SP na tabela IBGE")
	assert.Equal(t, "VENDA", arv.Identificacao.NaturezaOperacao)
	assert.Equal(t, "11222333000181", arv.Emitente.CNPJ)
	require.Len(t, arv.Itens, 1)

	det := arv.Itens[0]
	assert.Equal(t, 1, det.Numero)
	assert.Equal(t, "50.00", det.Produto.ValorBruto.StringFixed(2))

	// um subgrupo por tributo, escolhido pelo CST
	require.NotNil(t, det.Imposto.ICMS)
	require.NotNil(t, det.Imposto.ICMS.ICMS00)
	assert.Equal(t, "9.00", det.Imposto.ICMS.ICMS00.Valor.StringFixed(2))

	require.NotNil(t, det.Imposto.IPI)
	require.NotNil(t, det.Imposto.IPI.Trib)
	assert.Nil(t, det.Imposto.IPI.NT)

	require.NotNil(t, det.Imposto.PIS)
	require.NotNil(t, det.Imposto.PIS.Aliq)

	require.NotNil(t, det.Imposto.COFINS)
	require.NotNil(t, det.Imposto.COFINS.NT, "CST 08 é sem incidência")
}

// Exclusividade mútua: para todo CST de ICMS reconhecido, a árvore carrega
// exatamente um subgrupo de ICMS.
func contarSubgruposICMS(g *domnfe.GrupoICMS) int {
	n := 0
	for _, preenchido := range []bool{
		g.ICMS00 != nil, g.ICMS10 != nil, g.ICMS20 != nil, g.ICMS30 != nil,
		g.ICMS40 != nil, g.ICMS51 != nil, g.ICMS60 != nil, g.ICMS70 != nil,
		g.ICMS90 != nil, g.SN101 != nil, g.SN102 != nil, g.SN201 != nil,
		g.SN202 != nil, g.SN500 != nil, g.SN900 != nil,
	} {
		if preenchido {
			n++
		}
	}
	return n
}

func TestMontarArvore_ExclusividadeMutuaICMS(t *testing.T) {
	for cst := range nfe.ValidCSTICMS {
		grupo := grupoCompleto()
		grupo.ICMS.CST = cst
		grupo.ICMS.AliquotaST = decPtr("18")

		doc, resultados := docParaMontar(grupo)
		arv, err := domnfe.MontarArvore(doc, resultados)
		require.NoError(t, err, "CST %s", cst)
		assert.Equal(t, 1, contarSubgruposICMS(arv.Itens[0].Imposto.ICMS),
			"CST %s deve produzir exatamente um subgrupo", cst)
	}
}

func TestMontarArvore_ExclusividadeMutuaCSOSN(t *testing.T) {
	for csosn := range nfe.ValidCSOSN {
		grupo := grupoCompleto()
		grupo.Regime = nfe.RegimeSimplesNacional
		grupo.ICMS.CST = ""
		grupo.ICMS.CSOSN = csosn
		grupo.ICMS.AliquotaST = decPtr("18")

		doc, resultados := docParaMontar(grupo)
		arv, err := domnfe.MontarArvore(doc, resultados)
		require.NoError(t, err, "CSOSN %s", csosn)
		assert.Equal(t, 1, contarSubgruposICMS(arv.Itens[0].Imposto.ICMS),
			"CSOSN %s deve produzir exatamente um subgrupo", csosn)
	}
}

func TestMontarArvore_SemTotais(t *testing.T) {
	doc, resultados := docParaMontar(grupoCompleto())
	doc.Totais = nil

	_, err := domnfe.MontarArvore(doc, resultados)
	var ee *domain.ErroEstrutura
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "total", ee.Campo)
}

func TestMontarArvore_ResultadosNaoCobremItens(t *testing.T) {
	doc, _ := docParaMontar(grupoCompleto())
	_, err := domnfe.MontarArvore(doc, nil)
	var ee *domain.ErroEstrutura
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "det", ee.Campo)
}

func TestMontarArvore_GrupoFiscalAusente(t *testing.T) {
	doc, resultados := docParaMontar(grupoCompleto())
	doc.Grupos = map[string]*entity.GrupoFiscal{}

	_, err := domnfe.MontarArvore(doc, resultados)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGrupoFiscalAusente)
}

func TestMontarArvore_DocumentoNulo(t *testing.T) {
	_, err := domnfe.MontarArvore(nil, nil)
	assert.Error(t, err)
}
