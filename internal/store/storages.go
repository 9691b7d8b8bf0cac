package store

import "github.com/MKhiriev/go-vault-warden/internal/logger"

// Storages aggregates all repository implementations behind their
// interfaces, so the service layer receives a single dependency.
type Storages struct {
	RequestRepository  RequestRepository
	SettingsRepository SettingsRepository
	ProposerRepository ProposerRepository
	EventRepository    EventRepository
}

// NewStorages constructs every PostgreSQL-backed repository over the shared
// database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		RequestRepository:  NewRequestRepository(db, log),
		SettingsRepository: NewSettingsRepository(db, log),
		ProposerRepository: NewProposerRepository(db, log),
		EventRepository:    NewEventRepository(db, log),
	}
}
