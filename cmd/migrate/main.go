// Aplica el esquema del ledger de inventario sobre la base configurada.
package main

import (
	"context"
	"time"

	"github.com/jdcampos/inventario-ledger/internal/infrastructure/postgres"
	"github.com/jdcampos/inventario-ledger/pkg/config"
	"github.com/jdcampos/inventario-ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().Str("env", cfg.App.Env).Str("app", cfg.App.Name).Msg("aplicando esquema")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración")
	}
	log.Info().Msg("esquema aplicado")
}
