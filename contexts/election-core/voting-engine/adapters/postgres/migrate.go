package postgresadapter

import "gorm.io/gorm"

// Migrate creates or updates the engine tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&electionModel{},
		&eligibilityModel{},
		&ballotModel{},
		&tallyModel{},
		&proxyModel{},
		&delegationModel{},
		&balanceModel{},
		&settingsModel{},
		&auditModel{},
		&transferModel{},
	)
}
