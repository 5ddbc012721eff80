package models

import "github.com/google/uuid"

// assignID fills a missing primary key before insert. IDs are generated in
// the application so the schema migrates on both Postgres and SQLite.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All returns every model that AutoMigrate must create, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&OtpCode{},
		&RefreshToken{},
		&ReportCategory{},
		&Report{},
		&CartEntry{},
		&Ad{},
		&AdWatch{},
		&UserGeneratedReport{},
		&SystemLog{},
	}
}

