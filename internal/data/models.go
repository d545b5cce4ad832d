package data

import (
	"database/sql"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("models: record not found")

	// ErrDuplicateID is returned when adding a book whose caller-supplied
	// id already exists in the catalog.
	ErrDuplicateID = errors.New("models: duplicate book id")

	// ErrNotAvailable covers both a missing book and a book that is
	// already issued out; issue deliberately does not distinguish them.
	ErrNotAvailable = errors.New("models: book not found or already issued")

	// ErrNotIssued is the mirror for return: missing book or a book that
	// is already on the shelf.
	ErrNotIssued = errors.New("models: book not found or not issued")

	ErrDuplicateUsername  = errors.New("models: duplicate username")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
)

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

type Models struct {
	Users interface {
		Insert(user *User) error
		Authenticate(username, password, role string) (*User, error)
		Get(id int64) (*User, error)
		UpdatePassword(username, plaintext string) error
		Count() (int, error)
	}

	Books interface {
		Insert(book *Book) error
		Get(id int64) (*Book, error)
		GetAll() ([]*Book, error)
		Search(query string) ([]*Book, error)
		Issue(id int64) error
		Return(id int64) error
		Delete(id int64) error
		Count() (total, available int, err error)
	}
}

func NewModels(db *sql.DB) Models {
	return Models{
		Users: UserModel{DB: db},
		Books: BookModel{DB: db},
	}
}
