// Package repository provides factory for repositories.
package repository

import (
	"context"
	"fmt"

	"team-formation/config"
	"team-formation/internal/repository/memory"
	"team-formation/internal/repository/postgres"

	"go.uber.org/zap"
)

// Repository aggregates all persistence interfaces.
type Repository interface {
	LifecycleInterface
	UserInterface
	EventInterface
	TeamInterface
}

// New constructs repository backend by name.
func New(ctx context.Context, name string, log *zap.SugaredLogger, cfg *config.Config) (Repository, error) {
	switch name {
	case config.BackendPostgres:
		return postgres.New(ctx, log, cfg), nil
	case config.BackendMemory:
		repo := memory.New(log)
		if cfg.Storage.SeedFile != "" {
			if err := repo.LoadSeed(cfg.Storage.SeedFile); err != nil {
				return nil, err
			}
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown repo backend: %s", name)
	}
}
