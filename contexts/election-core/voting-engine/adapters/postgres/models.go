package postgresadapter

import "electra/contexts/election-core/voting-engine/domain/entities"

const settingsRowID = 1

type electionModel struct {
	ID        uint64 `gorm:"column:id;primaryKey"`
	Start     uint64 `gorm:"column:start_height"`
	End       uint64 `gorm:"column:end_height"`
	Active    bool   `gorm:"column:active"`
	Finalized bool   `gorm:"column:finalized"`
	Options []int64 `gorm:"column:options;type:jsonb;serializer:json"`
}

func (electionModel) TableName() string {
	return "engine_elections"
}

func electionModelFromEntity(election entities.Election) electionModel {
	options := make([]int64, len(election.Options))
	for i, option := range election.Options {
		options[i] = int64(option)
	}
	return electionModel{
		ID:        election.ID,
		Start:     election.Start,
		End:       election.End,
		Active:    election.Active,
		Finalized: election.Finalized,
		Options:   options,
	}
}

func (m electionModel) toEntity() entities.Election {
	options := make([]uint64, len(m.Options))
	for i, option := range m.Options {
		options[i] = uint64(option)
	}
	return entities.Election{
		ID:        m.ID,
		Start:     m.Start,
		End:       m.End,
		Active:    m.Active,
		Finalized: m.Finalized,
		Options:   options,
	}
}

type eligibilityModel struct {
	Voter     string `gorm:"column:voter;primaryKey"`
	Eligible  bool   `gorm:"column:eligible"`
	VotesCast uint64 `gorm:"column:votes_cast"`
}

func (eligibilityModel) TableName() string {
	return "engine_eligibility"
}

type ballotModel struct {
	ElectionID uint64  `gorm:"column:election_id;primaryKey"`
	Voter      string  `gorm:"column:voter;primaryKey"`
	Option     uint64  `gorm:"column:option"`
	CastAt     uint64  `gorm:"column:cast_at"`
	Proxy      *string `gorm:"column:proxy"`
}

func (ballotModel) TableName() string {
	return "engine_ballots"
}

func (m ballotModel) toEntity() entities.Ballot {
	return entities.Ballot{
		ElectionID: m.ElectionID,
		Voter:      m.Voter,
		Option:     m.Option,
		CastAt:     m.CastAt,
		Proxy:      m.Proxy,
	}
}

type tallyModel struct {
	ElectionID uint64 `gorm:"column:election_id;primaryKey"`
	Option     uint64 `gorm:"column:option;primaryKey"`
	Count      uint64 `gorm:"column:count"`
}

func (tallyModel) TableName() string {
	return "engine_tallies"
}

type proxyModel struct {
	Voter       string `gorm:"column:voter;primaryKey"`
	Proxy       string `gorm:"column:proxy"`
	DelegatedAt uint64 `gorm:"column:delegated_at"`
	Revoked     bool   `gorm:"column:revoked"`
}

func (proxyModel) TableName() string {
	return "engine_proxies"
}

type delegationModel struct {
	ID        uint64 `gorm:"column:id;primaryKey"`
	Voter     string `gorm:"column:voter;index"`
	Proxy     string `gorm:"column:proxy"`
	ProofHash []byte `gorm:"column:proof_hash"`
}

func (delegationModel) TableName() string {
	return "engine_delegations"
}

func (m delegationModel) toEntity() entities.Delegation {
	var proofHash entities.ProofHash
	copy(proofHash[:], m.ProofHash)
	return entities.Delegation{
		ID:        m.ID,
		Voter:     m.Voter,
		Proxy:     m.Proxy,
		ProofHash: proofHash,
	}
}

type balanceModel struct {
	Principal string `gorm:"column:principal;primaryKey"`
	Balance   uint64 `gorm:"column:balance"`
}

func (balanceModel) TableName() string {
	return "engine_balances"
}

type settingsModel struct {
	ID               int    `gorm:"column:id;primaryKey"`
	Admin            string `gorm:"column:admin"`
	VoteFee          uint64 `gorm:"column:vote_fee"`
	MaxVotesPerVoter uint64 `gorm:"column:max_votes_per_voter"`
}

func (settingsModel) TableName() string {
	return "engine_settings"
}

type auditModel struct {
	LogID     uint64 `gorm:"column:log_id;primaryKey"`
	Action    string `gorm:"column:action"`
	Actor     string `gorm:"column:actor"`
	Timestamp uint64 `gorm:"column:timestamp"`
}

func (auditModel) TableName() string {
	return "engine_audit_log"
}

type transferModel struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Amount        uint64 `gorm:"column:amount"`
	FromPrincipal string `gorm:"column:from_principal"`
	ToPrincipal   string `gorm:"column:to_principal"`
}

func (transferModel) TableName() string {
	return "engine_transfer_intents"
}
