// Package repository holds the SQL behind the PostgreSQL-backed parts of
// the service.
package repository

import (
	"github.com/deppfellow/valeria-photo/internal/database"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Sessions *SessionRepository
}

// NewRepositories builds the repositories on top of db.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		Sessions: NewSessionRepository(db.Pool),
	}
}
