package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	votingengine "electra/contexts/election-core/voting-engine"
	enginepostgres "electra/contexts/election-core/voting-engine/adapters/postgres"
	engineentities "electra/contexts/election-core/voting-engine/domain/entities"
	voterregistry "electra/contexts/identity-access/voter-registry"
	registrypostgres "electra/contexts/identity-access/voter-registry/adapters/postgres"
	registryentities "electra/contexts/identity-access/voter-registry/domain/entities"
	"electra/internal/platform/config"
	"electra/internal/platform/db"
	"electra/internal/platform/httpserver"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	registrySettings := registryentities.Settings{
		Admin:            cfg.AdminPrincipal,
		RegistrationFee:  cfg.RegistrationFee,
		MaxVoters:        cfg.MaxVoters,
		RegistrationOpen: true,
	}
	engineSettings := engineentities.Settings{
		Admin:            cfg.AdminPrincipal,
		VoteFee:          cfg.VoteFee,
		MaxVotesPerVoter: cfg.MaxVotesPerVoter,
	}

	ctx := context.Background()

	// Without a DSN both ledgers run on the in-memory stores. That is the
	// authoritative deterministic configuration; postgres adds durability.
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		registryModule := voterregistry.NewInMemoryModule(cfg.AdminPrincipal, logger)
		if err := registryModule.Store.SaveSettings(ctx, registrySettings); err != nil {
			return nil, err
		}
		engineModule := votingengine.NewInMemoryModule(cfg.AdminPrincipal, logger)
		if err := engineModule.Store.SaveSettings(ctx, engineSettings); err != nil {
			return nil, err
		}
		server := httpserver.New(registryModule, engineModule, logger, normalizeAddr(cfg.HTTPPort))
		return &APIApp{server: server, logger: logger}, nil
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}
	if err := registrypostgres.Migrate(pg.DB); err != nil {
		return nil, err
	}
	if err := enginepostgres.Migrate(pg.DB); err != nil {
		return nil, err
	}

	registryRepo := registrypostgres.NewRepository(pg.DB, logger)
	if err := registryRepo.EnsureSettings(ctx, registrySettings); err != nil {
		return nil, err
	}
	registryModule := voterregistry.NewModule(voterregistry.Dependencies{
		Voters:    registryRepo,
		Settings:  registryRepo,
		Audit:     registryRepo,
		Transfers: registryRepo,
		Logger:    logger,
	})

	engineRepo := enginepostgres.NewRepository(pg.DB, logger)
	if err := engineRepo.EnsureSettings(ctx, engineSettings); err != nil {
		return nil, err
	}
	engineModule := votingengine.NewModule(votingengine.Dependencies{
		Elections:   engineRepo,
		Eligibility: engineRepo,
		Ballots:     engineRepo,
		Delegations: engineRepo,
		Balances:    engineRepo,
		Settings:    engineRepo,
		Audit:       engineRepo,
		Transfers:   engineRepo,
		Logger:      logger,
	})

	server := httpserver.New(registryModule, engineModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
