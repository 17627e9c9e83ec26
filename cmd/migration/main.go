package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/erp-vendas/internal/config"
	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "reverte todas as migrações")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("Migrações exigem DB_DRIVER=postgres (atual: %s)", cfg.Database.Driver)
	}

	appLogger := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	direction := database.Up
	if *down {
		direction = database.Down
	}

	// Executar as migrações
	if err := database.RunMigrations(cfg.Database, direction, appLogger); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
