// Package store provides the named-scalar persistence backends behind
// the engine. State is a flat namespace of individual float entries,
// written one key at a time; there is no blob record to corrupt, and a
// write interrupted partway leaves each field individually readable.
//
// Two durable backends are available: BadgerDB (the default) and
// SQLite. Memory backs tests and store-less runs.
package store

import (
	"fmt"
	"strconv"
)

// Drivers accepted by Open.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Store is the full backend surface: the scalar get/put the engine
// consumes, plus lifecycle.
type Store interface {
	GetFloat(key string) (val float64, ok bool, err error)
	PutFloat(key string, val float64) error
	Close() error
}

// Open constructs the backend named by driver at path. An empty driver
// selects Badger.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", DriverBadger:
		return OpenBadger(path)
	case DriverSQLite:
		return OpenSQLite(path)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

// formatFloat and parseFloat are the text encoding for backends that
// store raw bytes (Badger). 'g' with precision -1 round-trips any
// float64 exactly. SQLite stores a REAL column directly and needs no
// text step.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
