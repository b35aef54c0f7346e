package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrUniqueViolation     = errors.New("unique constraint violated")
	ErrForeignKeyViolation = errors.New("foreign key constraint violated")
	ErrNotNullViolation    = errors.New("not null constraint violated")
	ErrCheckViolation      = errors.New("check constraint violated")
	// ErrDataViolation covers values the column cannot hold, such as over-long strings.
	ErrDataViolation = errors.New("value rejected by column type")
)

// Postgres SQLSTATE codes for integrity constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"

	// class 22: data exception (string too long, numeric out of range, bad datetime)
	pgDataExceptionClass = "22"
)

// MapError wraps constraint violations reported by the driver with one of the
// package sentinels. The driver error stays in the chain. Other errors are returned as is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if kind := classify(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}

func classify(err error) error {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		switch pgErr.Field('C') {
		case pgUniqueViolation:
			return ErrUniqueViolation
		case pgForeignKeyViolation:
			return ErrForeignKeyViolation
		case pgNotNullViolation:
			return ErrNotNullViolation
		case pgCheckViolation:
			return ErrCheckViolation
		}
		if strings.HasPrefix(pgErr.Field('C'), pgDataExceptionClass) {
			return ErrDataViolation
		}
		return nil
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return ErrUniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ErrForeignKeyViolation
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ErrNotNullViolation
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return ErrCheckViolation
		case sqlite3.SQLITE_TOOBIG, sqlite3.SQLITE_MISMATCH:
			return ErrDataViolation
		}
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return classifyMessage(liteErr.Error())
		}
	}

	return nil
}

// classifyMessage covers connections opened without extended result codes.
func classifyMessage(msg string) error {
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrUniqueViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrForeignKeyViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return ErrNotNullViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return ErrCheckViolation
	}
	return nil
}
