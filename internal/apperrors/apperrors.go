// Package apperrors defines the error taxonomy shared by services and the
// HTTP layer.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Kind classifies an error for the caller.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindConflict
	KindNotFound
)

// uniqueViolation is the PostgreSQL SQLSTATE for duplicate keys.
const uniqueViolation = "23505"

// InternalMessage is the only text an Internal error exposes to clients.
const InternalMessage = "Unexpected error, check server logs"

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Error is an error with a kind and a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Status maps the kind to an HTTP status code. Conflicts are client input
// errors and share 400 with Validation.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string, fields ...FieldError) error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthorized(msg string) error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps cause; the message is never the cause's text.
func Internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}

// FromDB classifies a persistence error. Unique violations become Conflict
// carrying the constraint detail, everything else becomes Internal.
func FromDB(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		msg := pgErr.Detail
		if msg == "" {
			msg = pgErr.Message
		}
		return &Error{Kind: KindConflict, Message: msg, Err: err}
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && isSQLiteUnique(liteErr) {
		return &Error{Kind: KindConflict, Message: sqliteDetail(liteErr), Err: err}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: "duplicate key value violates unique constraint", Err: err}
	}

	return Internal(InternalMessage, err)
}

func isSQLiteUnique(err sqlite3.Error) bool {
	return err.ExtendedCode == sqlite3.ErrConstraintUnique ||
		err.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// sqliteDetail turns "UNIQUE constraint failed: products.title" into
// "Key (title) already exists.", the shape PostgreSQL reports.
func sqliteDetail(err sqlite3.Error) string {
	_, cols, ok := strings.Cut(err.Error(), "constraint failed: ")
	if !ok {
		return "duplicate key value violates unique constraint"
	}
	names := strings.Split(cols, ",")
	for i, n := range names {
		n = strings.TrimSpace(n)
		if _, col, found := strings.Cut(n, "."); found {
			n = col
		}
		names[i] = n
	}
	return fmt.Sprintf("Key (%s) already exists.", strings.Join(names, ", "))
}
