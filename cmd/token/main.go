// Command token emite um token JWT para um tenant existente. É a forma de
// obter credenciais para a API, que não tem cadastro de usuários.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/hugohenrick/erp-vendas/internal/adapter/repository"
	"github.com/hugohenrick/erp-vendas/internal/config"
	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/hugohenrick/erp-vendas/pkg/auth"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

func main() {
	tenantID := flag.String("tenant", "", "ID do tenant")
	operator := flag.String("operator", "", "nome do operador gravado no token")
	flag.Parse()

	if *tenantID == "" || *operator == "" {
		flag.Usage()
		log.Fatal("-tenant e -operator são obrigatórios")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}
	appLogger := logger.New(logger.Options{Level: "warn", Format: cfg.LogFormat})

	// Com postgres o tenant precisa existir; em memória não há o que consultar
	if cfg.Database.Driver == config.DriverPostgres {
		ctx := context.Background()
		db, err := database.NewPostgresDB(ctx, cfg.Database, appLogger)
		if err != nil {
			log.Fatalf("Erro ao conectar com o banco de dados: %v", err)
		}
		defer db.Close()

		ok, err := repository.NewTenantValidator(repository.NewTenantRepository(db.Pool())).ValidateTenant(ctx, *tenantID)
		if err != nil {
			log.Fatalf("Erro ao validar tenant: %v", err)
		}
		if !ok {
			log.Fatalf("Tenant %s não encontrado ou inativo", *tenantID)
		}
	}

	jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
	if err != nil {
		log.Fatalf("Erro ao configurar JWT: %v", err)
	}

	token, err := jwtService.GenerateToken(*tenantID, *operator)
	if err != nil {
		log.Fatalf("Erro ao gerar token: %v", err)
	}
	fmt.Println(token)
}
