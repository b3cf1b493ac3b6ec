package main

import (
	"flag"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pesl98/erp/pkg/config"
	"github.com/pesl98/erp/pkg/logger"
)

// Aplica las migraciones SQL de ./migrations contra la base configurada.
// Uso: go run ./cmd/migrate [-dir migrations] [-down]
func main() {
	dir := flag.String("dir", "migrations", "directorio de migraciones")
	down := flag.Bool("down", false, "revertir la última migración en vez de aplicar")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	db, err := goose.OpenDBWithDriver("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir conexión para migraciones")
	}
	defer func() { _ = db.Close() }()

	if *down {
		if err := goose.Down(db, *dir); err != nil {
			log.Error().Err(err).Msg("revertir migración")
			os.Exit(1)
		}
		log.Info().Msg("migración revertida")
		return
	}

	if err := goose.Up(db, *dir); err != nil {
		log.Error().Err(err).Msg("aplicar migraciones")
		os.Exit(1)
	}
	log.Info().Msg("migraciones aplicadas")
}
