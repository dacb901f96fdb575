package postgresadapter

import "electra/contexts/identity-access/voter-registry/domain/entities"

const settingsRowID = 1

type voterModel struct {
	ID           uint64 `gorm:"column:id;primaryKey"`
	Principal    string `gorm:"column:principal;uniqueIndex"`
	ProofHash    []byte `gorm:"column:proof_hash"`
	RegisteredAt uint64 `gorm:"column:registered_at"`
	Active       bool   `gorm:"column:active"`
}

func (voterModel) TableName() string {
	return "registry_voters"
}

func voterModelFromEntity(voter entities.Voter) voterModel {
	return voterModel{
		ID:           voter.ID,
		Principal:    voter.Principal,
		ProofHash:    append([]byte(nil), voter.ProofHash[:]...),
		RegisteredAt: voter.RegisteredAt,
		Active:       voter.Active,
	}
}

func (m voterModel) toEntity() entities.Voter {
	var proofHash entities.ProofHash
	copy(proofHash[:], m.ProofHash)
	return entities.Voter{
		ID:           m.ID,
		Principal:    m.Principal,
		ProofHash:    proofHash,
		RegisteredAt: m.RegisteredAt,
		Active:       m.Active,
	}
}

type settingsModel struct {
	ID               int    `gorm:"column:id;primaryKey"`
	Admin            string `gorm:"column:admin"`
	RegistrationFee  uint64 `gorm:"column:registration_fee"`
	MaxVoters        uint64 `gorm:"column:max_voters"`
	RegistrationOpen bool   `gorm:"column:registration_open"`
}

func (settingsModel) TableName() string {
	return "registry_settings"
}

func settingsModelFromEntity(settings entities.Settings) settingsModel {
	return settingsModel{
		ID:               settingsRowID,
		Admin:            settings.Admin,
		RegistrationFee:  settings.RegistrationFee,
		MaxVoters:        settings.MaxVoters,
		RegistrationOpen: settings.RegistrationOpen,
	}
}

func (m settingsModel) toEntity() entities.Settings {
	return entities.Settings{
		Admin:            m.Admin,
		RegistrationFee:  m.RegistrationFee,
		MaxVoters:        m.MaxVoters,
		RegistrationOpen: m.RegistrationOpen,
	}
}

type auditModel struct {
	LogID     uint64 `gorm:"column:log_id;primaryKey"`
	Action    string `gorm:"column:action"`
	Actor     string `gorm:"column:actor"`
	Timestamp uint64 `gorm:"column:timestamp"`
}

func (auditModel) TableName() string {
	return "registry_audit_log"
}

type transferModel struct {
	ID            uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	Amount        uint64 `gorm:"column:amount"`
	FromPrincipal string `gorm:"column:from_principal"`
	ToPrincipal   string `gorm:"column:to_principal"`
}

func (transferModel) TableName() string {
	return "registry_transfer_intents"
}
