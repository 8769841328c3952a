// Comando de migraciones: aplica las migraciones SQL de ./migrations
// contra la base configurada.
//
//	go run ./cmd/migrate up
//	go run ./cmd/migrate down 1
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	m, err := migrate.New("file://migrations", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("crear migrador")
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				log.Fatal().Err(err).Msg("número de pasos inválido")
			}
		}
		err = m.Steps(-steps)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatal().Err(verr).Msg("leer versión")
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
		return
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up | down [n] | version)")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Str("cmd", cmd).Msg("migraciones aplicadas")
}
