// Package sqlite exposes the SQLite contact backend to code outside this
// module while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/crm/internal/sqlite"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".crm-db",
//	})
//	defer backend.Detach()
func NewBackend() types.Backend {
	return sqlite.NewBackend()
}
