package fiscal

import (
	"fmt"
	"unicode/utf8"

	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// Tabela de transições do ciclo de vida. Autorizada+Cancelada, Denegada e
// Cancelada são terminais; Rejeitada volta a ser editável e pode ser
// revalidada.
var transicoesValidas = map[string]map[string]bool{
	entity.StatusRascunho:   {entity.StatusValidada: true},
	entity.StatusValidada:   {entity.StatusAutorizada: true, entity.StatusRejeitada: true, entity.StatusDenegada: true},
	entity.StatusRejeitada:  {entity.StatusValidada: true},
	entity.StatusAutorizada: {entity.StatusCancelada: true},
}

// TransicionarStatus aplica uma transição do ciclo de vida, falhando com
// ErroTransicaoStatus quando fora de ordem. A chamada de rede (autorização,
// cancelamento na SEFAZ) é do transmissor externo; aqui só vale a tabela.
func TransicionarStatus(doc *entity.Documento, para string) error {
	if doc == nil {
		return fmt.Errorf("%w: documento nulo", domain.ErrDocumentoInvalido)
	}
	if !transicoesValidas[doc.Status][para] {
		return &domain.ErroTransicaoStatus{De: doc.Status, Para: para}
	}
	doc.Status = para
	return nil
}

// Validar leva o documento de Rascunho (ou Rejeitada) a Validada: confere os
// campos obrigatórios, exige ao menos um item com grupo fiscal, recomputa os
// totais e, só então, transiciona. Qualquer falha deixa o documento intocado.
func Validar(doc *entity.Documento) error {
	if doc == nil {
		return fmt.Errorf("%w: documento nulo", domain.ErrDocumentoInvalido)
	}
	if doc.Status != entity.StatusRascunho && doc.Status != entity.StatusRejeitada {
		return &domain.ErroTransicaoStatus{De: doc.Status, Para: entity.StatusValidada}
	}

	if err := nfe.ValidarCNPJ(doc.Emitente.CNPJ); err != nil {
		return fmt.Errorf("%w: emitente: %v", domain.ErrDocumentoInvalido, err)
	}
	if doc.Destinatario.Nome == "" || doc.Destinatario.CPFCNPJ == "" {
		return fmt.Errorf("%w: destinatário incompleto", domain.ErrDocumentoInvalido)
	}
	if doc.NaturezaOperacao == "" {
		return fmt.Errorf("%w: natureza da operação ausente", domain.ErrDocumentoInvalido)
	}
	for i, item := range doc.Itens {
		if doc.Grupos[item.GrupoFiscalID] == nil {
			return fmt.Errorf("%w: item %d sem grupo fiscal carregado", domain.ErrGrupoFiscalAusente, i)
		}
	}

	totais, _, err := CalcularTotais(doc)
	if err != nil {
		return err
	}

	doc.Totais = totais
	return TransicionarStatus(doc, entity.StatusValidada)
}

// Cancelar cancela um documento autorizado. A justificativa segue a regra do
// evento de cancelamento da SEFAZ: mínimo de 15 caracteres.
func Cancelar(doc *entity.Documento, justificativa string) error {
	if doc == nil {
		return fmt.Errorf("%w: documento nulo", domain.ErrDocumentoInvalido)
	}
	if utf8.RuneCountInString(justificativa) < 15 {
		return domain.ErrJustificativaCurta
	}
	if err := TransicionarStatus(doc, entity.StatusCancelada); err != nil {
		return err
	}
	doc.JustificativaCancelamento = justificativa
	return nil
}
