// Package sqlerr classifies PostgreSQL driver errors.
//
// Raw SQLSTATE codes are mapped onto a small set of categories so callers
// can log a stable code and tell transient failures (connection loss,
// server shutdown) apart from schema or data problems.
package sqlerr

import "fmt"

// Code is a category of database error.
type Code string

const (
	Other                Code = "other"
	UniqueViolation      Code = "unique_violation"
	NotNullViolation     Code = "not_null_violation"
	CheckViolation       Code = "check_violation"
	UndefinedTable       Code = "undefined_table"
	ConnectionException  Code = "connection_exception"
	InsufficientRes      Code = "insufficient_resources"
	OperatorIntervention Code = "operator_intervention"
	SerializationFailure Code = "serialization_failure"
)

// Error is a classified database error. The driver error stays reachable
// through Unwrap.
type Error struct {
	// Op names the repository operation, e.g. "sessions.save".
	Op           string
	Code         Code
	DatabaseCode string
	TableName    string
	Message      string

	driverErr error
}

func (e *Error) Error() string {
	if e.DatabaseCode == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.driverErr)
	}
	return fmt.Sprintf("%s: %s (SQLSTATE %s)", e.Op, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
