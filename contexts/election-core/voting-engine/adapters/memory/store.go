package memory

import (
	"context"
	"sync"

	"electra/contexts/election-core/voting-engine/domain/entities"
	"electra/internal/shared/audit"
)

type ballotKey struct {
	electionID uint64
	voter      string
}

type tallyKey struct {
	electionID uint64
	option     uint64
}

// Store is the in-memory engine state. It implements every engine port; the
// mutex only guards against misuse from concurrent test harnesses, the host
// delivers one call at a time.
type Store struct {
	mu sync.RWMutex

	elections   map[uint64]entities.Election
	eligibility map[string]entities.Eligibility
	ballots     map[ballotKey]entities.Ballot
	tallies     map[tallyKey]uint64
	proxies     map[string]entities.Proxy
	delegations []entities.Delegation
	balances    map[string]uint64
	settings    entities.Settings
	trail       audit.Trail
	transfers   []entities.TransferIntent
}

func NewStore(admin string) *Store {
	return &Store{
		elections:   make(map[uint64]entities.Election),
		eligibility: make(map[string]entities.Eligibility),
		ballots:     make(map[ballotKey]entities.Ballot),
		tallies:     make(map[tallyKey]uint64),
		proxies:     make(map[string]entities.Proxy),
		balances:    make(map[string]uint64),
		settings: entities.Settings{
			Admin:            admin,
			VoteFee:          10,
			MaxVotesPerVoter: 1,
		},
	}
}

func (s *Store) SaveElection(_ context.Context, election entities.Election) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elections[election.ID] = election
	return nil
}

func (s *Store) GetElection(_ context.Context, electionID uint64) (entities.Election, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	election, ok := s.elections[electionID]
	return election, ok, nil
}

func (s *Store) GetEligibility(_ context.Context, voter string) (entities.Eligibility, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	eligibility, ok := s.eligibility[voter]
	return eligibility, ok, nil
}

func (s *Store) SaveEligibility(_ context.Context, voter string, eligibility entities.Eligibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligibility[voter] = eligibility
	return nil
}

func (s *Store) GetBallot(_ context.Context, electionID uint64, voter string) (entities.Ballot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ballot, ok := s.ballots[ballotKey{electionID, voter}]
	return ballot, ok, nil
}

func (s *Store) SaveBallot(_ context.Context, ballot entities.Ballot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ballots[ballotKey{ballot.ElectionID, ballot.Voter}] = ballot
	return nil
}

func (s *Store) GetTally(_ context.Context, electionID uint64, option uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tallies[tallyKey{electionID, option}], nil
}

func (s *Store) IncrementTally(_ context.Context, electionID uint64, option uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tallyKey{electionID, option}
	s.tallies[key]++
	return s.tallies[key], nil
}

func (s *Store) GetProxy(_ context.Context, voter string) (entities.Proxy, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proxy, ok := s.proxies[voter]
	return proxy, ok, nil
}

func (s *Store) SaveProxy(_ context.Context, voter string, proxy entities.Proxy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proxies[voter] = proxy
	return nil
}

func (s *Store) AppendDelegation(_ context.Context, delegation entities.Delegation) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delegation.ID = uint64(len(s.delegations)) + 1
	s.delegations = append(s.delegations, delegation)
	return delegation.ID, nil
}

func (s *Store) FindDelegation(_ context.Context, voter string, proxy string, proofHash entities.ProofHash) (entities.Delegation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, delegation := range s.delegations {
		if delegation.Voter == voter && delegation.Proxy == proxy && delegation.ProofHash == proofHash {
			return delegation, true, nil
		}
	}
	return entities.Delegation{}, false, nil
}

func (s *Store) GetDelegation(_ context.Context, delegationID uint64) (entities.Delegation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if delegationID == 0 || delegationID > uint64(len(s.delegations)) {
		return entities.Delegation{}, false, nil
	}
	return s.delegations[delegationID-1], true, nil
}

func (s *Store) GetBalance(_ context.Context, principal string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[principal], nil
}

func (s *Store) SaveBalance(_ context.Context, principal string, balance uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[principal] = balance
	return nil
}

func (s *Store) GetSettings(_ context.Context) (entities.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings entities.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

func (s *Store) AppendAudit(_ context.Context, action string, actor string, height uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trail.Append(action, actor, height), nil
}

func (s *Store) GetAuditRecord(_ context.Context, logID uint64) (audit.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.trail.Get(logID)
	return record, ok, nil
}

func (s *Store) RecordTransfer(_ context.Context, intent entities.TransferIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transfers = append(s.transfers, intent)
	return nil
}

// Transfers returns the recorded transfer intents in order. The host ledger
// reads these to settle balances.
func (s *Store) Transfers() []entities.TransferIntent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.TransferIntent(nil), s.transfers...)
}

// AuditLen reports how many audit records the engine has appended.
func (s *Store) AuditLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trail.Len()
}
