package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpRouter "github.com/jhoicas/pyrostore/internal/interfaces/http"
	"github.com/jhoicas/pyrostore/pkg/config"
	"github.com/jhoicas/pyrostore/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	secret := cfg.JWT.Secret
	if secret == "" {
		// Backend de desarrollo: un secret efímero por proceso es suficiente.
		secret = "mockapi-dev-secret"
		log.Warn().Msg("JWT_SECRET no configurado; usando secret de desarrollo")
	}

	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Client.StoreID).
		Msg("iniciando backend de desarrollo")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name + "-mockapi",
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:         httpRouter.NewMemStore(),
		StoreID:       cfg.Client.StoreID,
		JWTSecret:     secret,
		JWTIssuer:     cfg.JWT.Issuer,
		JWTExpMinutes: cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
