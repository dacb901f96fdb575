package memory

import (
	"context"
	"sync"

	"electra/contexts/identity-access/voter-registry/domain/entities"
	"electra/internal/shared/audit"
)

// Store is the in-memory registry state. It implements every registry port
// and is the authoritative adapter for the deterministic semantics: the host
// delivers one call at a time, the mutex only guards against misuse from
// concurrent test harnesses.
type Store struct {
	mu sync.RWMutex

	voters      map[uint64]entities.Voter
	byPrincipal map[string]uint64
	nextVoterID uint64
	settings    entities.Settings
	trail       audit.Trail
	transfers   []entities.TransferIntent
}

func NewStore(admin string) *Store {
	return &Store{
		voters:      make(map[uint64]entities.Voter),
		byPrincipal: make(map[string]uint64),
		nextVoterID: 1,
		settings: entities.Settings{
			Admin:            admin,
			RegistrationFee:  50,
			MaxVoters:        10000,
			RegistrationOpen: true,
		},
	}
}

func (s *Store) NextVoterID(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextVoterID, nil
}

func (s *Store) InsertVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[voter.ID] = voter
	s.byPrincipal[voter.Principal] = voter.ID
	if voter.ID >= s.nextVoterID {
		s.nextVoterID = voter.ID + 1
	}
	return nil
}

func (s *Store) UpdateVoter(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voters[voter.ID] = voter
	return nil
}

func (s *Store) GetVoter(_ context.Context, voterID uint64) (entities.Voter, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[voterID]
	return voter, ok, nil
}

func (s *Store) GetVoterIDByPrincipal(_ context.Context, principal string) (uint64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voterID, ok := s.byPrincipal[principal]
	return voterID, ok, nil
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

// AuditLen reports how many audit records the registry has appended.
func (s *Store) AuditLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trail.Len()
}
