package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string
	HTTPPort       string
	PostgresDSN    string
	AdminPrincipal string

	RegistrationFee  uint64
	MaxVoters        uint64
	VoteFee          uint64
	MaxVotesPerVoter uint64
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "electra"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	// The deploying admin principal. Both ledgers boot with this principal
	// as their admin.
	admin := strings.TrimSpace(os.Getenv("ADMIN_PRINCIPAL"))
	if admin == "" {
		admin = "ST1ADMIN"
	}

	return Config{
		ServiceName:    service,
		HTTPPort:       port,
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		AdminPrincipal: admin,

		RegistrationFee:  envUint("REGISTRATION_FEE", 50),
		MaxVoters:        envUint("MAX_VOTERS", 10000),
		VoteFee:          envUint("VOTE_FEE", 10),
		MaxVotesPerVoter: envUint("MAX_VOTES_PER_VOTER", 1),
	}, nil
}

func envUint(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return fallback
	}
	return value
}
