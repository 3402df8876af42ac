package data

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rsen253/library-api/internal/query"
	"github.com/rsen253/library-api/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID          uuid.UUID // Unique identifier, assigned by the repository unless upserted
	AuthorID    uuid.UUID // Owning author
	Title       string    // Title of the book
	Description string    // Short description, must differ from the title
}

// BookView is the public-facing shape of a book returned to clients.
type BookView struct {
	ID          uuid.UUID `json:"id"`
	AuthorID    uuid.UUID `json:"authorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// NewBookView maps a stored book onto its public view.
func NewBookView(book *Book) BookView {
	return BookView{
		ID:          book.ID,
		AuthorID:    book.AuthorID,
		Title:       book.Title,
		Description: book.Description,
	}
}

// BookFields is the field-descriptor table for book views.
var BookFields = query.NewView(
	query.Field[BookView]{Name: "id", Value: func(v BookView) any { return v.ID }},
	query.Field[BookView]{Name: "authorId", Value: func(v BookView) any { return v.AuthorID }},
	query.Field[BookView]{Name: "title", Value: func(v BookView) any { return v.Title }},
	query.Field[BookView]{Name: "description", Value: func(v BookView) any { return v.Description }},
)

// BookSortMappings returns the sortable-field translations for book views.
func BookSortMappings() query.MappingSet {
	return query.MappingSet{
		"id":    {Columns: []string{"id"}},
		"title": {Columns: []string{"title"}},
	}
}

// BookFilters builds the store predicates for a book listing: a free-text
// search across title and description.
func BookFilters(searchQuery string) []query.Filter {
	var filters []query.Filter
	if strings.TrimSpace(searchQuery) != "" {
		filters = append(filters, query.Filter{
			Columns: []string{"title", "description"},
			Op:      query.FilterContains,
			Value:   searchQuery,
		})
	}
	return filters
}

// BookInput holds the fields a client supplies when creating or fully
// updating a book.
type BookInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ValidateBookInput records validation failures for a book create or update
// request on v. The description must differ from the title.
func ValidateBookInput(v *validator.Validator, input *BookInput) {
	v.Check(strings.TrimSpace(input.Title) != "", "title", "must be provided")
	v.Check(input.Description != input.Title, "description", "must be different from the title")
}

// BookModel wraps a *sql.DB connection and provides methods for reading and
// writing book records.
type BookModel struct {
	DB *sql.DB // Shared database connection pool
}

// GetAllForAuthor retrieves one page of an author's books according to a
// validated query plan, using the same single-round-trip window-function
// pattern as the author listing.
func (m BookModel) GetAllForAuthor(authorID uuid.UUID, plan query.Plan) (query.Page[*Book], error) {
	where, args := whereClause(plan.Filters, 2)

	stmt := fmt.Sprintf(`
		SELECT count(*) OVER(), id, author_id, title, description
		FROM books
		WHERE author_id = $1 AND (%s)
		ORDER BY %s
		LIMIT $%d OFFSET $%d`,
		where, orderByClause(plan.Sort, "id"), len(args)+2, len(args)+3)

	queryArgs := append([]any{authorID}, args...)
	queryArgs = append(queryArgs, plan.Limit(), plan.Offset())

	rows, err := m.DB.Query(stmt, queryArgs...)
	if err != nil {
		return query.Page[*Book]{}, err
	}
	defer rows.Close()

	totalRecords := 0
	books := []*Book{}

	for rows.Next() {
		var book Book
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.AuthorID,
			&book.Title,
			&book.Description,
		)
		if err != nil {
			return query.Page[*Book]{}, err
		}
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return query.Page[*Book]{}, err
	}

	return query.NewPage(books, totalRecords, plan.PageNumber, plan.PageSize)
}

// Get retrieves a single book scoped to its author.
// Returns ErrRecordNotFound if the pair does not exist.
func (m BookModel) Get(authorID, id uuid.UUID) (*Book, error) {
	stmt := `
		SELECT id, author_id, title, description
		FROM books
		WHERE author_id = $1 AND id = $2`

	var book Book
	err := m.DB.QueryRow(stmt, authorID, id).Scan(
		&book.ID,
		&book.AuthorID,
		&book.Title,
		&book.Description,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &book, nil
}

// Insert adds a new book record. A caller-provided id is respected, which
// is what makes PUT upserts work; otherwise the repository assigns one.
func (m BookModel) Insert(book *Book) error {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}

	stmt := `
		INSERT INTO books (id, author_id, title, description)
		VALUES ($1, $2, $3, $4)`

	_, err := m.DB.Exec(stmt, book.ID, book.AuthorID, book.Title, book.Description)
	return err
}

// Update saves the modified fields of book back to the database.
// Returns ErrRecordNotFound if the book no longer exists.
func (m BookModel) Update(book *Book) error {
	stmt := `
		UPDATE books
		SET title = $1, description = $2
		WHERE author_id = $3 AND id = $4`

	result, err := m.DB.Exec(stmt, book.Title, book.Description, book.AuthorID, book.ID)
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
	return nil
}

// Delete removes a book scoped to its author.
// Returns ErrRecordNotFound if no matching record exists.
func (m BookModel) Delete(authorID, id uuid.UUID) error {
	result, err := m.DB.Exec(`DELETE FROM books WHERE author_id = $1 AND id = $2`, authorID, id)
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
	return nil
}
