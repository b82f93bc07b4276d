package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/fiscal-nfe/internal/application/dto"
	"github.com/tu-usuario/fiscal-nfe/internal/application/fiscal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/internal/infrastructure/catalogo"
	apphttp "github.com/tu-usuario/fiscal-nfe/internal/interfaces/http"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// buildTestApp monta a aplicação Fiber com um catálogo em memória.
func buildTestApp() *fiber.App {
	cat := catalogo.NovoDeGrupos(
		&entity.GrupoFiscal{
			ID:     "icms-18",
			Regime: nfe.RegimeNormal,
			ICMS:   &entity.ConfigICMS{CST: nfe.CSTICMSTributada, Aliquota: decPtr("18")},
		},
		&entity.GrupoFiscal{
			ID:     "cst-zz",
			Regime: nfe.RegimeNormal,
			ICMS:   &entity.ConfigICMS{CST: "ZZ"},
		},
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		DocumentoUC: fiscal.NewDocumentoUseCase(cat, nfe.AmbienteHomologacao),
	})
	return app
}

func documentoDeTeste(grupoID string) dto.DocumentoRequest {
	return dto.DocumentoRequest{
		Serie:            "1",
		Numero:           "42",
		NaturezaOperacao: "VENDA",
		Emitente: dto.EmpresaDTO{
			RazaoSocial: "Empresa Exemplo LTDA",
			CNPJ:        "11222333000181",
			Regime:      nfe.RegimeNormal,
			Endereco:    dto.EnderecoDTO{UF: "SP", Municipio: "São Paulo", CodigoMunicipio: "3550308"},
		},
		Destinatario: dto.ClienteDTO{
			Nome:     "Cliente Exemplo",
			CPFCNPJ:  "11222333000181",
			Endereco: dto.EnderecoDTO{UF: "SP"},
		},
		Itens: []dto.ItemDocumentoDTO{
			{
				ProdutoID:     "P-001",
				Descricao:     "Produto de teste",
				Quantidade:    decimal.RequireFromString("10"),
				ValorUnitario: decimal.RequireFromString("5.00"),
				GrupoFiscalID: grupoID,
			},
		},
	}
}

func doPost(t *testing.T, app *fiber.App, rota string, corpo any) *http.Response {
	t.Helper()
	b, err := json.Marshal(corpo)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, rota, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestTotais_DocumentoValido(t *testing.T) {
	app := buildTestApp()
	resp := doPost(t, app, "/api/documentos/totais", documentoDeTeste("icms-18"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var totais dto.TotaisResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&totais))
	assert.Equal(t, "50.00", totais.SomaLiquidos.StringFixed(2))
	assert.Equal(t, "9.00", totais.ValorICMS.StringFixed(2))
	assert.Equal(t, "59.00", totais.ValorTotal.StringFixed(2))
}

func TestTotais_CorpoInvalido(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/documentos/totais", bytes.NewReader([]byte("{nao é json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTotais_GrupoFiscalInexistente(t *testing.T) {
	app := buildTestApp()
	resp := doPost(t, app, "/api/documentos/totais", documentoDeTeste("nao-existe"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "GRUPO_FISCAL_AUSENTE", body.Code)
}

func TestTotais_CSTNaoSuportado(t *testing.T) {
	app := buildTestApp()
	resp := doPost(t, app, "/api/documentos/totais", documentoDeTeste("cst-zz"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CST_NAO_SUPORTADO", body.Code)
}

func TestValidar_DevolveChaveETotais(t *testing.T) {
	app := buildTestApp()
	resp := doPost(t, app, "/api/documentos/validar", documentoDeTeste("icms-18"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ValidacaoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.StatusValidada, out.Status)
	assert.Len(t, out.Chave, 44)
	require.NoError(t, nfe.ValidarChave(out.Chave))
	require.NotNil(t, out.Totais)
	assert.Equal(t, "59.00", out.Totais.ValorTotal.StringFixed(2))
}

func TestMontar_DevolveArvore(t *testing.T) {
	app := buildTestApp()
	resp := doPost(t, app, "/api/documentos/montar", documentoDeTeste("icms-18"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var arvore map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&arvore))
	assert.Contains(t, arvore, "ide")
	assert.Contains(t, arvore, "det")
	assert.Contains(t, arvore, "total")
}

func TestCancelar_Autorizado(t *testing.T) {
	app := buildTestApp()
	doc := documentoDeTeste("icms-18")
	doc.Status = entity.StatusAutorizada

	resp := doPost(t, app, "/api/documentos/cancelar", dto.CancelamentoRequest{
		Documento:     doc,
		Justificativa: "erro de digitação no destinatário",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.StatusCancelada, out.Status)
}

func TestCancelar_JustificativaCurta(t *testing.T) {
	app := buildTestApp()
	doc := documentoDeTeste("icms-18")
	doc.Status = entity.StatusAutorizada

	resp := doPost(t, app, "/api/documentos/cancelar", dto.CancelamentoRequest{
		Documento:     doc,
		Justificativa: "curta",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStatus_TransicaoForaDeOrdem(t *testing.T) {
	app := buildTestApp()
	doc := documentoDeTeste("icms-18")
	doc.Status = entity.StatusRascunho

	resp := doPost(t, app, "/api/documentos/status", dto.StatusRequest{
		Documento: doc,
		Para:      entity.StatusAutorizada,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "TRANSICAO_INVALIDA", body.Code)
}

func TestStatus_TransicaoValida(t *testing.T) {
	app := buildTestApp()
	doc := documentoDeTeste("icms-18")
	doc.Status = entity.StatusValidada

	resp := doPost(t, app, "/api/documentos/status", dto.StatusRequest{
		Documento: doc,
		Para:      entity.StatusAutorizada,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, entity.StatusAutorizada, out.Status)
}

func TestHealth(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
