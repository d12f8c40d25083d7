package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound     = errors.New("no matching row")
	ErrMultipleRows = errors.New("more than one matching row")
	ErrConflict     = errors.New("row conflicts with an existing row")
	ErrDenied       = errors.New("not allowed to access this row")
	ErrInvalid      = errors.New("row violates a constraint")
	ErrTransport    = errors.New("backend unavailable")
)

// GatewayError keeps the failure kind next to the driver error so callers
// can branch with errors.Is on the kind sentinels.
type GatewayError struct {
	Op    string
	Table string
	Kind  error
	Err   error
}

func (e *GatewayError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *GatewayError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return err
	}

	kind := ErrTransport
	var pqErr *pq.Error
	switch {
	case errors.Is(err, sql.ErrNoRows):
		kind = ErrNotFound
	case errors.As(err, &pqErr):
		switch pqErr.Code.Class() {
		case "23":
			kind = ErrInvalid
			if pqErr.Code == "23505" {
				kind = ErrConflict
			}
		case "42":
			if pqErr.Code == "42501" {
				kind = ErrDenied
			}
		case "22":
			kind = ErrInvalid
		}
	}
	return &GatewayError{Op: op, Table: table, Kind: kind, Err: err}
}

func kindError(op, table string, kind error) error {
	return &GatewayError{Op: op, Table: table, Kind: kind, Err: kind}
}
