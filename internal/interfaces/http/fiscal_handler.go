package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiscal-nfe/internal/application/dto"
	"github.com/tu-usuario/fiscal-nfe/internal/application/fiscal"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
)

// FiscalHandler atende as requisições HTTP do motor fiscal. A API é
// stateless: o documento completo viaja no corpo e o resultado volta na
// resposta.
type FiscalHandler struct {
	uc *fiscal.DocumentoUseCase
}

// NewFiscalHandler constrói o handler.
func NewFiscalHandler(uc *fiscal.DocumentoUseCase) *FiscalHandler {
	return &FiscalHandler{uc: uc}
}

// Totais calcula os totais do documento sem mudar o status.
// POST /api/documentos/totais
func (h *FiscalHandler) Totais(c *fiber.Ctx) error {
	var in dto.DocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	totais, err := h.uc.Totais(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(totais)
}

// Validar valida o documento, calcula totais e chave de acesso.
// POST /api/documentos/validar
func (h *FiscalHandler) Validar(c *fiber.Ctx) error {
	var in dto.DocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Validar(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// Montar devolve a árvore da NF-e pronta para o serializador.
// POST /api/documentos/montar
func (h *FiscalHandler) Montar(c *fiber.Ctx) error {
	var in dto.DocumentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	arvore, err := h.uc.Montar(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(arvore)
}

// Cancelar cancela um documento autorizado.
// POST /api/documentos/cancelar
func (h *FiscalHandler) Cancelar(c *fiber.Ctx) error {
	var in dto.CancelamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Cancelar(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// Status aplica uma transição explícita do ciclo de vida.
// POST /api/documentos/status
func (h *FiscalHandler) Status(c *fiber.Ctx) error {
	var in dto.StatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Transicionar(in)
	if err != nil {
		return respostaDeErro(c, err)
	}
	return c.JSON(out)
}

// respostaDeErro traduz a taxonomia de erros do domínio em códigos HTTP.
func respostaDeErro(c *fiber.Ctx, err error) error {
	var transicao *domain.ErroTransicaoStatus
	if errors.As(err, &transicao) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TRANSICAO_INVALIDA", Message: err.Error()})
	}
	switch {
	case errors.Is(err, domain.ErrGrupoFiscalAusente):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "GRUPO_FISCAL_AUSENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrCSTNaoSuportado):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CST_NAO_SUPORTADO", Message: err.Error()})
	case errors.Is(err, domain.ErrParametroAusente):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PARAMETRO_AUSENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrJustificativaCurta):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "JUSTIFICATIVA_CURTA", Message: err.Error()})
	case errors.Is(err, domain.ErrDocumentoInvalido), errors.Is(err, moeda.ErrValorInvalido):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
