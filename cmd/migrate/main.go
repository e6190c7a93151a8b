package main

import (
	"context"
	"dinehub/internal/core/domain/logging"
	"dinehub/internal/db/migrations"
	zaplogger "dinehub/internal/implementations/logging"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
)

type migrateConfig struct {
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
}

const usage = "usage: migrate up | down [steps] | version"

func main() {
	log := zaplogger.NewZapLogger(false)
	defer log.Sync()

	cfg := migrateConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Error(context.Background(), "Could not parse config.", logging.Entry("err", err))
		os.Exit(1)
	}

	if err := run(cfg.PostgresqlURL, os.Args[1:], log); err != nil {
		log.Error(context.Background(), "Migration failed.", logging.Entry("err", err))
		os.Exit(1)
	}
}

func run(connString string, args []string, log logging.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	switch args[0] {
	case "up":
		if err := migrations.Up(connString); err != nil {
			return err
		}
		log.Info(context.Background(), "DB migrations have been applied.")
	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid number of steps: %s", args[1])
			}
			steps = n
		}
		if err := migrations.Down(connString, steps); err != nil {
			return err
		}
		log.Info(context.Background(), "DB migrations have been reverted.", logging.Entry("steps", steps))
	case "version":
		version, dirty, err := migrations.Version(connString)
		if err != nil {
			return err
		}
		log.Info(
			context.Background(),
			"Current DB schema version.",
			logging.Entry("version", version),
			logging.Entry("dirty", dirty),
		)
	default:
		return errors.New(usage)
	}
	return nil
}
