package votingengine

import (
	"log/slog"

	httpadapter "electra/contexts/election-core/voting-engine/adapters/http"
	"electra/contexts/election-core/voting-engine/adapters/memory"
	"electra/contexts/election-core/voting-engine/application/commands"
	"electra/contexts/election-core/voting-engine/application/queries"
	"electra/contexts/election-core/voting-engine/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Elections   commands.ElectionUseCase
	Ballots     commands.BallotUseCase
	Delegations commands.DelegationUseCase
	Treasury    commands.TreasuryUseCase
	Queries     queries.UseCase
	Store       *memory.Store
}

type Dependencies struct {
	Elections   ports.ElectionRepository
	Eligibility ports.EligibilityRepository
	Ballots     ports.BallotRepository
	Delegations ports.DelegationRepository
	Balances    ports.BalanceRepository
	Settings    ports.SettingsRepository
	Audit       ports.AuditLog
	Transfers   ports.TransferSink
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	elections := commands.ElectionUseCase{
		Elections: deps.Elections,
		Settings:  deps.Settings,
		Audit:     deps.Audit,
		Logger:    deps.Logger,
	}
	ballots := commands.BallotUseCase{
		Elections:   deps.Elections,
		Eligibility: deps.Eligibility,
		Ballots:     deps.Ballots,
		Delegations: deps.Delegations,
		Settings:    deps.Settings,
		Audit:       deps.Audit,
		Transfers:   deps.Transfers,
		Logger:      deps.Logger,
	}
	delegations := commands.DelegationUseCase{
		Delegations: deps.Delegations,
		Audit:       deps.Audit,
		Logger:      deps.Logger,
	}
	treasury := commands.TreasuryUseCase{
		Balances:  deps.Balances,
		Audit:     deps.Audit,
		Transfers: deps.Transfers,
		Logger:    deps.Logger,
	}
	queryUseCase := queries.UseCase{
		Elections:   deps.Elections,
		Eligibility: deps.Eligibility,
		Ballots:     deps.Ballots,
		Delegations: deps.Delegations,
		Balances:    deps.Balances,
		Settings:    deps.Settings,
		Audit:       deps.Audit,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Elections:   elections,
			Ballots:     ballots,
			Delegations: delegations,
			Treasury:    treasury,
			Queries:     queryUseCase,
			Logger:      deps.Logger,
		},
		Elections:   elections,
		Ballots:     ballots,
		Delegations: delegations,
		Treasury:    treasury,
		Queries:     queryUseCase,
	}
}

func NewInMemoryModule(admin string, logger *slog.Logger) Module {
	store := memory.NewStore(admin)
	module := NewModule(Dependencies{
		Elections:   store,
		Eligibility: store,
		Ballots:     store,
		Delegations: store,
		Balances:    store,
		Settings:    store,
		Audit:       store,
		Transfers:   store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
