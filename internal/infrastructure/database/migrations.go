package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hugohenrick/erp-vendas/internal/config"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// Direction indica o sentido da migração
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations aplica (ou desfaz) as migrações SQL do diretório configurado
func RunMigrations(cfg config.DatabaseConfig, direction Direction, log logger.Logger) error {
	absPath, err := filepath.Abs(cfg.MigrationsPath)
	if err != nil {
		return fmt.Errorf("erro ao resolver caminho das migrações: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absPath), cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("erro ao criar migrate: %w", err)
	}
	defer m.Close()

	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("direção de migração inválida: %s", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("erro ao ler versão das migrações: %w", verr)
	}

	log.Info("migrações aplicadas", "direction", string(direction), "version", version, "dirty", dirty)
	return nil
}
