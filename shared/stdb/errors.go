package stdb

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is returned by New when neither a URL nor a host and port are given.
	ErrInvalidConfig = errors.New("either url or both host and port must be provided")

	// ErrDatabaseRequired is returned when no database was given and none is configured.
	ErrDatabaseRequired = errors.New("database name is required")

	// ErrUnreachable is the cause of every failed Connect.
	ErrUnreachable = errors.New("spacetimedb instance unreachable")

	// ErrListDatabases is returned when every database listing endpoint failed.
	ErrListDatabases = errors.New("all database listing endpoints failed")

	ErrTableRequired = errors.New("table name is required")
	ErrEmptyData     = errors.New("at least one column value is required")
	ErrEmptyWhere    = errors.New("at least one where column is required")

	// ErrNoPrimaryKey is returned when a row carries none of its table's key columns.
	ErrNoPrimaryKey = errors.New("cannot identify row: no primary key found")
)

// ProbeError collects the failure of every endpoint tried by Connect.
type ProbeError struct {
	BaseURL string
	Errors  *multierror.Error
}

func (e *ProbeError) Error() string {
	if e.Errors == nil {
		return fmt.Sprintf("%s at %s", ErrUnreachable, e.BaseURL)
	}
	return fmt.Sprintf("%s at %s: %s", ErrUnreachable, e.BaseURL, e.Errors.Error())
}

func (e *ProbeError) Unwrap() error {
	return ErrUnreachable
}
