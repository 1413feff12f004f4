package sqlerr

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// MapCode maps a SQLSTATE onto a Code. Whole classes are matched by their
// two-character prefix.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23505":
		return UniqueViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "42P01":
		return UndefinedTable
	case "40001", "40P01":
		return SerializationFailure
	}

	switch {
	case strings.HasPrefix(sqlState, "08"):
		return ConnectionException
	case strings.HasPrefix(sqlState, "53"):
		return InsufficientRes
	case strings.HasPrefix(sqlState, "57"):
		return OperatorIntervention
	}
	return Other
}

// ConvertPgError converts a server-reported error into an *Error.
func ConvertPgError(op string, src *pgconn.PgError) *Error {
	return &Error{
		Op:           op,
		Code:         MapCode(src.Code),
		DatabaseCode: src.Code,
		TableName:    src.TableName,
		Message:      src.Message,
		driverErr:    src,
	}
}

// Wrap classifies err for op. nil stays nil and context errors pass
// through untouched so callers can still match them directly.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(op, pgerr)
	}

	code := Other
	if pgconn.SafeToRetry(err) || isConnectError(err) {
		code = ConnectionException
	}
	return &Error{Op: op, Code: code, driverErr: err}
}

func isConnectError(err error) bool {
	var connectErr *pgconn.ConnectError
	return errors.As(err, &connectErr)
}

// ErrCode reports the Code of the first *Error in err's chain, Other if
// there is none.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	return Other
}

// Transient reports whether retrying the operation later may succeed.
func Transient(err error) bool {
	switch ErrCode(err) {
	case ConnectionException, InsufficientRes, OperatorIntervention, SerializationFailure:
		return true
	}
	return false
}
