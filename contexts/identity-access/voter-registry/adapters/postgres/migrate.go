package postgresadapter

import "gorm.io/gorm"

// Migrate creates or updates the registry tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&voterModel{},
		&settingsModel{},
		&auditModel{},
		&transferModel{},
	)
}
