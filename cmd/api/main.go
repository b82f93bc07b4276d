package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/fiscal-nfe/internal/application/fiscal"
	"github.com/tu-usuario/fiscal-nfe/internal/infrastructure/catalogo"
	httpRouter "github.com/tu-usuario/fiscal-nfe/internal/interfaces/http"
	"github.com/tu-usuario/fiscal-nfe/pkg/config"
	"github.com/tu-usuario/fiscal-nfe/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("ambiente_nfe", cfg.NFE.Ambiente).
		Msg("iniciando aplicação")

	cat, err := catalogo.Carregar(cfg.NFE.CatalogoPath)
	if err != nil {
		log.Fatal().Err(err).Str("caminho", cfg.NFE.CatalogoPath).Msg("catálogo de grupos fiscais")
	}
	log.Info().Strs("grupos", cat.IDs()).Msg("catálogo fiscal carregado")

	documentoUC := fiscal.NewDocumentoUseCase(cat, cfg.NFE.Ambiente)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		DocumentoUC: documentoUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
