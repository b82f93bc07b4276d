package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio do motor fiscal (sem dependências externas).
var (
	// ErrCSTNaoSuportado: o CST/CSOSN do perfil não pertence ao conjunto
	// reconhecido pelo motor do tributo. Nunca degradar para zero silencioso.
	ErrCSTNaoSuportado = errors.New("código de situação tributária não suportado")

	// ErrParametroAusente: o modo de cálculo selecionado exige um parâmetro
	// (alíquota, valor por unidade) que o perfil não traz.
	ErrParametroAusente = errors.New("parâmetro tributário obrigatório ausente")

	// ErrGrupoFiscalAusente: item sem referência a grupo fiscal carregado.
	ErrGrupoFiscalAusente = errors.New("grupo fiscal ausente no item")

	// ErrDocumentoInvalido agrupa falhas de validação do documento.
	ErrDocumentoInvalido = errors.New("documento fiscal inválido")

	// ErrJustificativaCurta: cancelamento exige justificativa de ao menos 15 caracteres.
	ErrJustificativaCurta = errors.New("justificativa de cancelamento deve ter ao menos 15 caracteres")
)

// ErroAgregacao identifica qual item da lista fez a agregação de totais falhar.
type ErroAgregacao struct {
	IndiceItem int
	Causa      error
}

func (e *ErroAgregacao) Error() string {
	return fmt.Sprintf("agregação de totais falhou no item %d: %v", e.IndiceItem, e.Causa)
}

func (e *ErroAgregacao) Unwrap() error { return e.Causa }

// ErroEstrutura sinaliza violação estrutural na árvore montada do documento
// (grupo obrigatório ausente ou grupos mutuamente exclusivos emitidos juntos).
type ErroEstrutura struct {
	Campo string
	Causa error
}

func (e *ErroEstrutura) Error() string {
	if e.Causa != nil {
		return fmt.Sprintf("estrutura inválida no campo %s: %v", e.Campo, e.Causa)
	}
	return fmt.Sprintf("estrutura inválida no campo %s", e.Campo)
}

func (e *ErroEstrutura) Unwrap() error { return e.Causa }

// ErroTransicaoStatus sinaliza transição fora da ordem do ciclo de vida.
type ErroTransicaoStatus struct {
	De   string
	Para string
}

func (e *ErroTransicaoStatus) Error() string {
	return fmt.Sprintf("transição de status inválida: %s → %s", e.De, e.Para)
}
