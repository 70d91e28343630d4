// Package migration aplica o schema do PostgreSQL a partir dos arquivos SQL
// embutidos no binário.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-campaign-api/infrastructure/database/postgres"
)

//go:embed sql/*.sql
var files embed.FS

// chave do pg_advisory_xact_lock que serializa migrações concorrentes
const advisoryLockKey = 72_610_001

const createVersionsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version     INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    applied_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Load lê as migrações embutidas ordenadas pela versão do prefixo do arquivo
// (0001_nome.sql).
func Load() ([]Migration, error) {
	entries, err := files.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrações: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	seen := make(map[int]string)
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".sql")
		prefix, rest, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migração sem versão: %s", entry.Name())
		}

		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("versão inválida em %s: %w", entry.Name(), err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("versão %d duplicada: %s e %s", version, other, entry.Name())
		}
		seen[version] = entry.Name()

		content, err := files.ReadFile(path.Join("sql", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("erro ao ler %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    rest,
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Apply executa as migrações pendentes, cada uma na sua transação, e
// retorna os nomes aplicados.
func Apply(ctx context.Context, conn postgres.Conn) ([]string, error) {
	migrations, err := Load()
	if err != nil {
		return nil, err
	}

	if _, err := conn.ExecContext(ctx, createVersionsTable); err != nil {
		return nil, fmt.Errorf("erro ao criar tabela de versões: %w", err)
	}

	applied := make([]string, 0)
	for _, migration := range migrations {
		ran := false

		err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", advisoryLockKey); err != nil {
				return fmt.Errorf("erro ao obter lock de migração: %w", err)
			}

			var exists bool
			err := tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", migration.Version).Scan(&exists)
			if err != nil {
				return fmt.Errorf("erro ao consultar versão: %w", err)
			}
			if exists {
				return nil
			}

			if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
				return fmt.Errorf("erro ao executar migração %04d_%s: %w", migration.Version, migration.Name, err)
			}

			query, args, err := squirrel.StatementBuilder.
				Insert("schema_migrations").
				Columns("version", "name").
				Values(migration.Version, migration.Name).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("erro ao construir query de inserção: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("erro ao registrar versão: %w", err)
			}

			ran = true
			return nil
		})
		if err != nil {
			return applied, err
		}

		if ran {
			logrus.WithFields(logrus.Fields{
				"version": migration.Version,
				"name":    migration.Name,
			}).Info("Migração aplicada")
			applied = append(applied, fmt.Sprintf("%04d_%s", migration.Version, migration.Name))
		}
	}

	return applied, nil
}
