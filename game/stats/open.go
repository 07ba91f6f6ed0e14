package stats

import (
	"fmt"
	"io"
)

// Backend names accepted by Open
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the store for backend at path. The returned closer must be
// closed when the store is no longer used.
func Open(backend, path string) (Store, io.Closer, error) {
	switch backend {
	case BackendJSON, "":
		return NewFileStore(path), nopCloser{}, nil
	case BackendSQLite:
		store, err := OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown stats backend %q", backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
