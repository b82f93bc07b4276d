package fiscal_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/fiscal-nfe/internal/application/fiscal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
)

func docValido() *entity.Documento {
	doc := docComItens([]entity.ItemDocumento{
		{Ordem: 1, Quantidade: dec("10"), ValorUnitario: dec("5.00"), GrupoFiscalID: "icms-18"},
	}, grupoICMS18())
	doc.Status = entity.StatusRascunho
	doc.NaturezaOperacao = "VENDA"
	doc.DataEmissao = time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	doc.Emitente = entity.Empresa{
		RazaoSocial: "Empresa Exemplo LTDA",
		CNPJ:        "11222333000181",
		Endereco:    entity.Endereco{UF: "SP"},
	}
	doc.Destinatario = entity.Cliente{Nome: "Cliente Exemplo", CPFCNPJ: "11222333000181"}
	return doc
}

// Tabela completa de transições: as válidas passam, todas as outras falham
// com ErroTransicaoStatus carregando origem e destino.
func TestTransicionarStatus_Tabela(t *testing.T) {
	validas := map[string][]string{
		entity.StatusRascunho:   {entity.StatusValidada},
		entity.StatusValidada:   {entity.StatusAutorizada, entity.StatusRejeitada, entity.StatusDenegada},
		entity.StatusRejeitada:  {entity.StatusValidada},
		entity.StatusAutorizada: {entity.StatusCancelada},
		entity.StatusDenegada:   {},
		entity.StatusCancelada:  {},
	}
	todos := []string{
		entity.StatusRascunho, entity.StatusValidada, entity.StatusAutorizada,
		entity.StatusRejeitada, entity.StatusDenegada, entity.StatusCancelada,
	}

	for de, destinos := range validas {
		permitido := make(map[string]bool)
		for _, p := range destinos {
			permitido[p] = true
		}
		for _, para := range todos {
			doc := &entity.Documento{Status: de}
			err := fiscal.TransicionarStatus(doc, para)
			if permitido[para] {
				assert.NoError(t, err, "%s → %s deve ser permitida", de, para)
				assert.Equal(t, para, doc.Status)
			} else {
				require.Error(t, err, "%s → %s deve ser rejeitada", de, para)
				var te *domain.ErroTransicaoStatus
				require.ErrorAs(t, err, &te)
				assert.Equal(t, de, te.De)
				assert.Equal(t, para, te.Para)
				assert.Equal(t, de, doc.Status, "transição rejeitada não muda o status")
			}
		}
	}
}

func TestValidar_DocumentoCompleto(t *testing.T) {
	doc := docValido()
	require.NoError(t, fiscal.Validar(doc))
	assert.Equal(t, entity.StatusValidada, doc.Status)
	require.NotNil(t, doc.Totais)
	assert.Equal(t, "59.00", doc.Totais.ValorTotal.StringFixed(2))
}

// Rejeitada volta a ser editável: a revalidação é permitida.
func TestValidar_RevalidaRejeitada(t *testing.T) {
	doc := docValido()
	doc.Status = entity.StatusRejeitada
	require.NoError(t, fiscal.Validar(doc))
	assert.Equal(t, entity.StatusValidada, doc.Status)
}

func TestValidar_CNPJInvalido(t *testing.T) {
	doc := docValido()
	doc.Emitente.CNPJ = "11222333000180"
	err := fiscal.Validar(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentoInvalido)
	assert.Equal(t, entity.StatusRascunho, doc.Status, "falha de validação não transiciona")
}

func TestValidar_SemItens(t *testing.T) {
	doc := docValido()
	doc.Itens = nil
	assert.Error(t, fiscal.Validar(doc))
}

func TestValidar_AgregacaoFalha(t *testing.T) {
	doc := docValido()
	doc.Grupos["icms-18"].ICMS.CST = "ZZ"
	err := fiscal.Validar(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCSTNaoSuportado)
	assert.Nil(t, doc.Totais, "totais não devem ser atribuídos quando a agregação falha")
}

func TestValidar_ForaDeOrdem(t *testing.T) {
	doc := docValido()
	doc.Status = entity.StatusAutorizada
	var te *domain.ErroTransicaoStatus
	require.ErrorAs(t, fiscal.Validar(doc), &te)
}

func TestCancelar_Autorizada(t *testing.T) {
	doc := docValido()
	doc.Status = entity.StatusAutorizada
	require.NoError(t, fiscal.Cancelar(doc, "erro de digitação no destinatário"))
	assert.Equal(t, entity.StatusCancelada, doc.Status)
	assert.Equal(t, "erro de digitação no destinatário", doc.JustificativaCancelamento)
}

func TestCancelar_JustificativaCurta(t *testing.T) {
	doc := docValido()
	doc.Status = entity.StatusAutorizada
	err := fiscal.Cancelar(doc, "curta demais")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrJustificativaCurta)
	assert.Equal(t, entity.StatusAutorizada, doc.Status)
}

func TestCancelar_ForaDeOrdem(t *testing.T) {
	doc := docValido()
	doc.Status = entity.StatusRascunho
	var te *domain.ErroTransicaoStatus
	err := fiscal.Cancelar(doc, "justificativa com tamanho suficiente")
	require.ErrorAs(t, err, &te)
	assert.Equal(t, entity.StatusRascunho, te.De)
	assert.Equal(t, entity.StatusCancelada, te.Para)
}
