package data

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"
)

type Book struct {
	ID        int64
	Title     string
	Author    string
	Category  string
	Available bool
}

type BookModel struct {
	DB *sql.DB
}

// Insert adds a book under its caller-supplied id. The id column is the
// table's identity column, but an explicit id always wins; a clash with an
// existing row surfaces as ErrDuplicateID.
func (m BookModel) Insert(book *Book) error {
	query := `
		INSERT INTO books (id, title, author, category, available)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (id) DO NOTHING`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	args := []any{book.ID, book.Title, book.Author, book.Category}
	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrDuplicateID
	}

	book.Available = true
	return nil
}

func (m BookModel) Get(id int64) (*Book, error) {
	query := `
		SELECT id, title, author, category, available
		FROM books
		WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var b Book
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.Title, &b.Author, &b.Category, &b.Available,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (m BookModel) GetAll() ([]*Book, error) {
	query := `
		SELECT id, title, author, category, available
		FROM books
		ORDER BY title ASC`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBooks(rows)
}

// Search looks a book up by exact id when the query is a plain non-negative
// integer; any other query is a case-insensitive substring match against
// title, author, and category. An empty query matches the whole catalog.
func (m BookModel) Search(query string) ([]*Book, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if id, ok := parseBookID(query); ok {
		stmt := `
			SELECT id, title, author, category, available
			FROM books
			WHERE id = $1`

		rows, err := m.DB.QueryContext(ctx, stmt, id)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		return collectBooks(rows)
	}

	stmt := `
		SELECT id, title, author, category, available
		FROM books
		WHERE LOWER(title) LIKE $1 OR LOWER(author) LIKE $2 OR LOWER(category) LIKE $3
		ORDER BY title ASC`

	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := m.DB.QueryContext(ctx, stmt, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBooks(rows)
}

// Issue flips a book from available to issued. The state check and the
// write are one conditional statement, so two racing calls can never both
// succeed; zero affected rows means the book is missing or already issued,
// and the two causes are intentionally not distinguished.
func (m BookModel) Issue(id int64) error {
	query := `
		UPDATE books
		SET available = FALSE
		WHERE id = $1 AND available = TRUE`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotAvailable
	}
	return nil
}

// Return flips a book from issued back to available, with the same
// single-statement guard as Issue.
func (m BookModel) Return(id int64) error {
	query := `
		UPDATE books
		SET available = TRUE
		WHERE id = $1 AND available = FALSE`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotIssued
	}
	return nil
}

// Delete removes a book in any state.
func (m BookModel) Delete(id int64) error {
	query := `DELETE FROM books WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	result, err := m.DB.ExecContext(ctx, query, id)
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

func (m BookModel) Count() (total, available int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE available)
		FROM books`

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = m.DB.QueryRowContext(ctx, query).Scan(&total, &available)
	if err != nil {
		return 0, 0, err
	}
	return total, available, nil
}

func collectBooks(rows *sql.Rows) ([]*Book, error) {
	var books []*Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Available); err != nil {
			return nil, err
		}
		books = append(books, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// parseBookID reports whether s is a plain run of ASCII digits, the only
// form the id-lookup path accepts. Signs, spaces, and anything non-numeric
// fall through to the substring search.
func parseBookID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
