package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	votingengine "electra/contexts/election-core/voting-engine"
	engineerrors "electra/contexts/election-core/voting-engine/domain/errors"
	enginehttp "electra/contexts/election-core/voting-engine/transport/http"
	voterregistry "electra/contexts/identity-access/voter-registry"
	registryerrors "electra/contexts/identity-access/voter-registry/domain/errors"
	registryhttp "electra/contexts/identity-access/voter-registry/transport/http"
	_ "electra/internal/platform/httpserver/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	addr     string
	registry voterregistry.Module
	engine   votingengine.Module
}

func New(
	registry voterregistry.Module,
	engine votingengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     addr,
		registry: registry,
		engine:   engine,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, requestID(s.logger, s.mux))
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/registry/v1/voters", s.handleRegisterVoter)
	s.mux.HandleFunc("POST /api/registry/v1/voters/{voter_id}/verify", s.handleVerifyVoter)
	s.mux.HandleFunc("POST /api/registry/v1/voters/{voter_id}/status", s.handleUpdateVoterStatus)
	s.mux.HandleFunc("GET /api/registry/v1/voters/{voter_id}", s.handleGetVoter)
	s.mux.HandleFunc("GET /api/registry/v1/principals/{principal}", s.handleGetVoterIDByPrincipal)
	s.mux.HandleFunc("GET /api/registry/v1/status", s.handleRegistrationStatus)
	s.mux.HandleFunc("POST /api/registry/v1/admin", s.handleRegistrySetAdmin)
	s.mux.HandleFunc("POST /api/registry/v1/fee", s.handleSetRegistrationFee)
	s.mux.HandleFunc("POST /api/registry/v1/registration", s.handleToggleRegistration)
	s.mux.HandleFunc("POST /api/registry/v1/max-voters", s.handleSetMaxVoters)
	s.mux.HandleFunc("GET /api/registry/v1/audit/{log_id}", s.handleRegistryAuditRecord)

	s.mux.HandleFunc("POST /api/engine/v1/elections", s.handleConfigureElection)
	s.mux.HandleFunc("POST /api/engine/v1/elections/{election_id}/finalize", s.handleFinalizeElection)
	s.mux.HandleFunc("GET /api/engine/v1/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("GET /api/engine/v1/elections/{election_id}/results", s.handleGetResults)
	s.mux.HandleFunc("GET /api/engine/v1/elections/{election_id}/tally/{option}", s.handleGetTally)
	s.mux.HandleFunc("GET /api/engine/v1/elections/{election_id}/ballots/{voter}", s.handleGetBallot)
	s.mux.HandleFunc("POST /api/engine/v1/voters", s.handleRegisterEligibility)
	s.mux.HandleFunc("GET /api/engine/v1/voters/{voter}/eligibility", s.handleGetEligibility)
	s.mux.HandleFunc("POST /api/engine/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /api/engine/v1/votes/proxy", s.handleCastProxyVote)
	s.mux.HandleFunc("POST /api/engine/v1/proxies", s.handleAssignProxy)
	s.mux.HandleFunc("POST /api/engine/v1/proxies/revoke", s.handleRevokeProxy)
	s.mux.HandleFunc("GET /api/engine/v1/proxies/{voter}", s.handleGetProxy)
	s.mux.HandleFunc("GET /api/engine/v1/delegations/{delegation_id}", s.handleGetDelegation)
	s.mux.HandleFunc("POST /api/engine/v1/balances/deposit", s.handleDeposit)
	s.mux.HandleFunc("POST /api/engine/v1/balances/withdraw", s.handleWithdraw)
	s.mux.HandleFunc("GET /api/engine/v1/balances/{principal}", s.handleGetBalance)
	s.mux.HandleFunc("POST /api/engine/v1/admin", s.handleEngineSetAdmin)
	s.mux.HandleFunc("POST /api/engine/v1/fee", s.handleSetVoteFee)
	s.mux.HandleFunc("POST /api/engine/v1/max-votes", s.handleSetMaxVotes)
	s.mux.HandleFunc("GET /api/engine/v1/audit/{log_id}", s.handleEngineAuditRecord)
}

// resolveCall extracts the authenticated caller principal and the logical
// block height every state-changing operation requires. The upstream gateway
// authenticates the principal; this server trusts the headers.
func resolveCall(r *http.Request) (string, uint64, bool) {
	caller := strings.TrimSpace(r.Header.Get("X-Principal"))
	if caller == "" {
		return "", 0, false
	}
	height, err := strconv.ParseUint(strings.TrimSpace(r.Header.Get("X-Block-Height")), 10, 64)
	if err != nil {
		return "", 0, false
	}
	return caller, height, true
}

func pathUint(r *http.Request, name string) (uint64, bool) {
	value, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	return value, err == nil
}

func (s *Server) handleRegisterVoter(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req registryhttp.RegisterVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.RegisterVoterHandler(r.Context(), caller, height, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVerifyVoter(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	voterID, ok := pathUint(r, "voter_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "invalid_voter_id", "voter_id must be an integer")
		return
	}
	var req registryhttp.VerifyVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.VerifyVoterHandler(r.Context(), caller, height, voterID, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVoterStatus(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	voterID, ok := pathUint(r, "voter_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "invalid_voter_id", "voter_id must be an integer")
		return
	}
	var req registryhttp.UpdateVoterStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.UpdateVoterStatusHandler(r.Context(), caller, height, voterID, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetVoter(w http.ResponseWriter, r *http.Request) {
	voterID, ok := pathUint(r, "voter_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "invalid_voter_id", "voter_id must be an integer")
		return
	}
	resp, err := s.registry.Handler.GetVoterHandler(r.Context(), voterID)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetVoterIDByPrincipal(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetVoterIDByPrincipalHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.RegistrationStatusHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegistrySetAdmin(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req registryhttp.SetAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.SetAdminHandler(r.Context(), caller, height, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleSetRegistrationFee(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req registryhttp.SetRegistrationFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.SetRegistrationFeeHandler(r.Context(), caller, height, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleToggleRegistration(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req registryhttp.ToggleRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.ToggleRegistrationHandler(r.Context(), caller, height, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleSetMaxVoters(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeRegistryError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req registryhttp.SetMaxVotersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.registry.Handler.SetMaxVotersHandler(r.Context(), caller, height, req); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleRegistryAuditRecord(w http.ResponseWriter, r *http.Request) {
	logID, ok := pathUint(r, "log_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "invalid_log_id", "log_id must be an integer")
		return
	}
	resp, err := s.registry.Handler.GetAuditRecordHandler(r.Context(), logID)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrNotAuthorized):
		writeRegistryError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, registryerrors.ErrRegistrationClosed):
		writeRegistryError(w, http.StatusConflict, "registration_closed", err.Error())
	case errors.Is(err, registryerrors.ErrMaxVotersExceeded):
		writeRegistryError(w, http.StatusConflict, "max_voters_exceeded", err.Error())
	case errors.Is(err, registryerrors.ErrAlreadyRegistered):
		writeRegistryError(w, http.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, registryerrors.ErrVoterNotFound):
		writeRegistryError(w, http.StatusNotFound, "voter_not_found", err.Error())
	case errors.Is(err, registryerrors.ErrAuditLogNotFound):
		writeRegistryError(w, http.StatusNotFound, "audit_record_not_found", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidProof):
		writeRegistryError(w, http.StatusUnprocessableEntity, "invalid_proof", err.Error())
	case errors.Is(err, registryerrors.ErrInactiveVoter):
		writeRegistryError(w, http.StatusConflict, "inactive_voter", err.Error())
	case errors.Is(err, registryerrors.ErrInvalidAmount):
		writeRegistryError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEngineDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engineerrors.ErrNotAuthorized):
		writeEngineError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidTimestamp):
		writeEngineError(w, http.StatusBadRequest, "invalid_timestamp", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidElection),
		errors.Is(err, engineerrors.ErrBallotNotFound),
		errors.Is(err, engineerrors.ErrDelegationNotFound),
		errors.Is(err, engineerrors.ErrProxyNotAssigned),
		errors.Is(err, engineerrors.ErrAuditLogNotFound):
		writeEngineError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, engineerrors.ErrElectionClosed):
		writeEngineError(w, http.StatusConflict, "election_closed", err.Error())
	case errors.Is(err, engineerrors.ErrElectionFinalized):
		writeEngineError(w, http.StatusConflict, "election_finalized", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidVoter):
		writeEngineError(w, http.StatusUnprocessableEntity, "invalid_voter", err.Error())
	case errors.Is(err, engineerrors.ErrMaxVotesExceeded):
		writeEngineError(w, http.StatusConflict, "max_votes_exceeded", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidOption):
		writeEngineError(w, http.StatusUnprocessableEntity, "invalid_option", err.Error())
	case errors.Is(err, engineerrors.ErrVoteAlreadyCast):
		writeEngineError(w, http.StatusConflict, "vote_already_cast", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidProxy):
		writeEngineError(w, http.StatusForbidden, "invalid_proxy", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidProof):
		writeEngineError(w, http.StatusUnprocessableEntity, "invalid_proof", err.Error())
	case errors.Is(err, engineerrors.ErrInvalidAmount):
		writeEngineError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, engineerrors.ErrInsufficientBalance):
		writeEngineError(w, http.StatusConflict, "insufficient_balance", err.Error())
	default:
		writeEngineError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRegistryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeEngineError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, enginehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
