// internal/data/models.go
package data

import (
	"database/sql"
	"errors"
)

// Models is a top-level container that groups all database model types
// together. It is passed around via applicationDependencies so every handler
// reaches the store through a single dependency.
type Models struct {
	Authors AuthorModel // Database operations for the authors table
	Books   BookModel   // Database operations for the books table
}

// NewModels constructs a Models value wired up to the given connection pool.
// Call this once during application startup.
func NewModels(db *sql.DB) Models {
	return Models{
		Authors: AuthorModel{DB: db},
		Books:   BookModel{DB: db},
	}
}

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Registry type names used to key the property mapping registry. Kept as
// constants so handlers and startup registration cannot drift apart.
const (
	AuthorViewType   = "AuthorView"
	AuthorEntityType = "Author"
	BookViewType     = "BookView"
	BookEntityType   = "Book"
)
