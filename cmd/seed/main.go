// Command seed creates or resets an admin account and can load sample
// portfolio content. It reads the same configuration as the server plus the
// SEED_* variables.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/raselahmedweb/innovensky/internal/auth"
	"github.com/raselahmedweb/innovensky/internal/config"
	"github.com/raselahmedweb/innovensky/internal/repository/postgres"
	"github.com/raselahmedweb/innovensky/internal/service"
	"github.com/raselahmedweb/innovensky/migrations"
	pkgconfig "github.com/raselahmedweb/innovensky/pkg/config"
	"github.com/raselahmedweb/innovensky/pkg/database"
	"github.com/raselahmedweb/innovensky/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var seedCfg seedConfig
	if err := pkgconfig.Load(&seedCfg); err != nil {
		slog.Error("failed to load seed config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("innovensky-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Error("failed to run migrations", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	s := &seeder{
		accounts: service.NewAccountService(postgres.NewAccountRepository(pool), auth.NewHasher(auth.DefaultCost), log),
		projects: service.NewProjectService(postgres.NewProjectRepository(pool), log),
		team:     service.NewTeamService(postgres.NewTeamRepository(pool), log),
		stats:    service.NewStatsService(postgres.NewStatsRepository(pool)),
		logger:   log,
	}
	if err := s.run(ctx, seedCfg); err != nil {
		log.Error("seed failed", slog.String("error", err.Error()))
		pool.Close()
		os.Exit(1)
	}

	log.Info("seed complete")
}
