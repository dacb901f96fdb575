package httpserver

import (
	"encoding/json"
	"net/http"

	enginehttp "electra/contexts/election-core/voting-engine/transport/http"
)

func (s *Server) handleConfigureElection(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.ConfigureElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.ConfigureElectionHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleFinalizeElection(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	electionID, ok := pathUint(r, "election_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_election_id", "election_id must be an integer")
		return
	}
	req := enginehttp.FinalizeElectionRequest{ElectionID: electionID}
	if err := s.engine.Handler.FinalizeElectionHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathUint(r, "election_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_election_id", "election_id must be an integer")
		return
	}
	resp, err := s.engine.Handler.GetElectionHandler(r.Context(), electionID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetResults(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathUint(r, "election_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_election_id", "election_id must be an integer")
		return
	}
	resp, err := s.engine.Handler.GetResultsHandler(r.Context(), electionID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTally(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathUint(r, "election_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_election_id", "election_id must be an integer")
		return
	}
	option, ok := pathUint(r, "option")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_option", "option must be an integer")
		return
	}
	resp, err := s.engine.Handler.GetTallyHandler(r.Context(), electionID, option)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBallot(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathUint(r, "election_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_election_id", "election_id must be an integer")
		return
	}
	resp, err := s.engine.Handler.GetBallotHandler(r.Context(), electionID, r.PathValue("voter"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterEligibility(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.RegisterEligibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.RegisterEligibilityHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetEligibility(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.GetEligibilityHandler(r.Context(), r.PathValue("voter"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.CastVoteHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleCastProxyVote(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.CastProxyVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.CastProxyVoteHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleAssignProxy(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.AssignProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.engine.Handler.AssignProxyHandler(r.Context(), caller, height, req)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeProxy(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.RevokeProxyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.RevokeProxyHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetProxy(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.GetProxyHandler(r.Context(), r.PathValue("voter"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetDelegation(w http.ResponseWriter, r *http.Request) {
	delegationID, ok := pathUint(r, "delegation_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_delegation_id", "delegation_id must be an integer")
		return
	}
	resp, err := s.engine.Handler.GetDelegationHandler(r.Context(), delegationID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.DepositHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.WithdrawHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.Handler.GetBalanceHandler(r.Context(), r.PathValue("principal"))
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEngineSetAdmin(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.SetAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.SetAdminHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleSetVoteFee(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.SetVoteFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.SetVoteFeeHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleSetMaxVotes(w http.ResponseWriter, r *http.Request) {
	caller, height, ok := resolveCall(r)
	if !ok {
		writeEngineError(w, http.StatusUnauthorized, "missing_call_context", "X-Principal and X-Block-Height headers are required")
		return
	}
	var req enginehttp.SetMaxVotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEngineError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.engine.Handler.SetMaxVotesHandler(r.Context(), caller, height, req); err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) handleEngineAuditRecord(w http.ResponseWriter, r *http.Request) {
	logID, ok := pathUint(r, "log_id")
	if !ok {
		writeEngineError(w, http.StatusBadRequest, "invalid_log_id", "log_id must be an integer")
		return
	}
	resp, err := s.engine.Handler.GetAuditRecordHandler(r.Context(), logID)
	if err != nil {
		writeEngineDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
