package voterregistry

import (
	"log/slog"

	httpadapter "electra/contexts/identity-access/voter-registry/adapters/http"
	"electra/contexts/identity-access/voter-registry/adapters/memory"
	"electra/contexts/identity-access/voter-registry/application"
	"electra/contexts/identity-access/voter-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Service application.Service
	Store   *memory.Store
}

type Dependencies struct {
	Voters    ports.VoterRepository
	Settings  ports.SettingsRepository
	Audit     ports.AuditLog
	Transfers ports.TransferSink
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Voters:    deps.Voters,
		Settings:  deps.Settings,
		Audit:     deps.Audit,
		Transfers: deps.Transfers,
		Logger:    deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: service,
			Logger:   deps.Logger,
		},
		Service: service,
	}
}

func NewInMemoryModule(admin string, logger *slog.Logger) Module {
	store := memory.NewStore(admin)
	module := NewModule(Dependencies{
		Voters:    store,
		Settings:  store,
		Audit:     store,
		Transfers: store,
		Logger:    logger,
	})
	module.Store = store
	return module
}
