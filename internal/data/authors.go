// Package data provides the entities, public views and database models for
// the library service.
package data

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rsen253/library-api/internal/query"
	"github.com/rsen253/library-api/internal/validator"
)

// Author represents a single author record stored in the database.
// It maps directly to a row in the "authors" table.
type Author struct {
	ID          uuid.UUID // Unique identifier, assigned by the repository on insert
	FirstName   string    // Author's first name
	LastName    string    // Author's last name
	DateOfBirth time.Time // Date of birth, used to derive the public age field
	Genre       string    // Main genre the author writes in
}

// AuthorView is the public-facing shape of an author returned to clients.
// Name and Age are derived: clients never see the raw name parts or the
// birth date.
type AuthorView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Age   int       `json:"age"`
	Genre string    `json:"genre"`
}

// NewAuthorView maps a stored author onto its public view.
func NewAuthorView(author *Author) AuthorView {
	return AuthorView{
		ID:    author.ID,
		Name:  strings.TrimSpace(author.FirstName + " " + author.LastName),
		Age:   ageAt(author.DateOfBirth, time.Now().UTC()),
		Genre: author.Genre,
	}
}

// ageAt computes full years elapsed between birth and now.
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.YearDay() < birth.YearDay() {
		years--
	}
	return years
}

// AuthorFields is the field-descriptor table driving field-list validation
// and shaping for author views. Declaration order here is the order clients
// see when they do not request specific fields.
var AuthorFields = query.NewView(
	query.Field[AuthorView]{Name: "id", Value: func(v AuthorView) any { return v.ID }},
	query.Field[AuthorView]{Name: "name", Value: func(v AuthorView) any { return v.Name }},
	query.Field[AuthorView]{Name: "age", Value: func(v AuthorView) any { return v.Age }},
	query.Field[AuthorView]{Name: "genre", Value: func(v AuthorView) any { return v.Genre }},
)

// AuthorSortMappings returns the sortable-field translations for author
// views. Name fans out to the two name columns; age maps to date_of_birth
// with the direction reversed, since an older author has an earlier birth
// date.
func AuthorSortMappings() query.MappingSet {
	return query.MappingSet{
		"id":    {Columns: []string{"id"}},
		"name":  {Columns: []string{"first_name", "last_name"}},
		"age":   {Columns: []string{"date_of_birth"}, Reverse: true},
		"genre": {Columns: []string{"genre"}},
	}
}

// AuthorFilters builds the store predicates for an author listing: an exact
// genre match and a free-text search across the name columns and genre.
// Both are optional; absent values contribute no predicate.
func AuthorFilters(genre, searchQuery string) []query.Filter {
	var filters []query.Filter
	if strings.TrimSpace(genre) != "" {
		filters = append(filters, query.Filter{
			Columns: []string{"genre"},
			Op:      query.FilterEquals,
			Value:   genre,
		})
	}
	if strings.TrimSpace(searchQuery) != "" {
		filters = append(filters, query.Filter{
			Columns: []string{"first_name", "last_name", "genre"},
			Op:      query.FilterContains,
			Value:   searchQuery,
		})
	}
	return filters
}

// CreateAuthorInput holds the fields a client must supply when creating an
// author. DateOfBirth uses RFC 3339 timestamps.
type CreateAuthorInput struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Genre       string    `json:"genre"`
}

// ValidateAuthorInput records validation failures for an author creation
// request on v.
func ValidateAuthorInput(v *validator.Validator, input *CreateAuthorInput) {
	v.Check(strings.TrimSpace(input.FirstName) != "", "firstName", "must be provided")
	v.Check(strings.TrimSpace(input.LastName) != "", "lastName", "must be provided")
	v.Check(strings.TrimSpace(input.Genre) != "", "genre", "must be provided")
	v.Check(!input.DateOfBirth.IsZero(), "dateOfBirth", "must be provided")
	v.Check(input.DateOfBirth.Before(time.Now()), "dateOfBirth", "must be in the past")
}

// AuthorModel wraps a *sql.DB connection and provides methods for reading
// and writing author records.
type AuthorModel struct {
	DB *sql.DB // Shared database connection pool
}

// GetAll retrieves one page of authors according to a validated query plan.
// It uses a COUNT(*) OVER() window function so only one round-trip is
// needed for both the page and the total count.
func (m AuthorModel) GetAll(plan query.Plan) (query.Page[*Author], error) {
	where, args := whereClause(plan.Filters, 1)

	// The WHERE and ORDER BY bodies come from the validated plan, the values
	// ride in as placeholders.
	stmt := fmt.Sprintf(`
		SELECT count(*) OVER(), id, first_name, last_name, date_of_birth, genre
		FROM authors
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		where, orderByClause(plan.Sort, "id"), len(args)+1, len(args)+2)
	args = append(args, plan.Limit(), plan.Offset())

	rows, err := m.DB.Query(stmt, args...)
	if err != nil {
		return query.Page[*Author]{}, err
	}
	defer rows.Close()

	totalRecords := 0
	authors := []*Author{}

	for rows.Next() {
		var author Author
		err := rows.Scan(
			&totalRecords, // same value on every row
			&author.ID,
			&author.FirstName,
			&author.LastName,
			&author.DateOfBirth,
			&author.Genre,
		)
		if err != nil {
			return query.Page[*Author]{}, err
		}
		authors = append(authors, &author)
	}

	if err = rows.Err(); err != nil {
		return query.Page[*Author]{}, err
	}

	return query.NewPage(authors, totalRecords, plan.PageNumber, plan.PageSize)
}

// Get retrieves a single author by primary key.
// Returns ErrRecordNotFound if no author with the given id exists.
func (m AuthorModel) Get(id uuid.UUID) (*Author, error) {
	stmt := `
		SELECT id, first_name, last_name, date_of_birth, genre
		FROM authors
		WHERE id = $1`

	var author Author
	err := m.DB.QueryRow(stmt, id).Scan(
		&author.ID,
		&author.FirstName,
		&author.LastName,
		&author.DateOfBirth,
		&author.Genre,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetByIDs retrieves the authors whose ids appear in ids, ordered by name.
// Missing ids are simply absent from the result; the caller decides whether
// that is an error.
func (m AuthorModel) GetByIDs(ids []uuid.UUID) ([]*Author, error) {
	stmt := `
		SELECT id, first_name, last_name, date_of_birth, genre
		FROM authors
		WHERE id = ANY($1)
		ORDER BY first_name ASC, last_name ASC, id ASC`

	rows, err := m.DB.Query(stmt, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*Author{}
	for rows.Next() {
		var author Author
		err := rows.Scan(
			&author.ID,
			&author.FirstName,
			&author.LastName,
			&author.DateOfBirth,
			&author.Genre,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// Exists reports whether an author with the given id is stored.
func (m AuthorModel) Exists(id uuid.UUID) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(`SELECT EXISTS (SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Insert adds a new author record. The repository assigns the id when the
// caller has not provided one.
func (m AuthorModel) Insert(author *Author) error {
	if author.ID == uuid.Nil {
		author.ID = uuid.New()
	}

	stmt := `
		INSERT INTO authors (id, first_name, last_name, date_of_birth, genre)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := m.DB.Exec(stmt,
		author.ID,
		author.FirstName,
		author.LastName,
		author.DateOfBirth,
		author.Genre,
	)
	return err
}

// InsertAll adds every author in a single transaction, so a batch either
// commits completely or leaves no trace. Ids are assigned where the caller
// has not provided them.
func (m AuthorModel) InsertAll(authors []*Author) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := `
		INSERT INTO authors (id, first_name, last_name, date_of_birth, genre)
		VALUES ($1, $2, $3, $4, $5)`

	for _, author := range authors {
		if author.ID == uuid.Nil {
			author.ID = uuid.New()
		}
		_, err := tx.Exec(stmt,
			author.ID,
			author.FirstName,
			author.LastName,
			author.DateOfBirth,
			author.Genre,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Delete removes the author with the given id together with their books.
// Returns ErrRecordNotFound if no matching author exists.
func (m AuthorModel) Delete(id uuid.UUID) error {
	tx, err := m.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM books WHERE author_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return tx.Commit()
}
