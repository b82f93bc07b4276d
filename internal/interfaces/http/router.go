package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/fiscal-nfe/internal/application/fiscal"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	DocumentoUC *fiscal.DocumentoUseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Motor fiscal (stateless: o documento viaja no corpo)
	documentos := api.Group("/documentos")
	fiscalHandler := NewFiscalHandler(deps.DocumentoUC)
	documentos.Post("/totais", fiscalHandler.Totais)
	documentos.Post("/validar", fiscalHandler.Validar)
	documentos.Post("/montar", fiscalHandler.Montar)
	documentos.Post("/cancelar", fiscalHandler.Cancelar)
	documentos.Post("/status", fiscalHandler.Status)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
