package cli

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/crm/internal/contacts"
	"github.com/mesh-intelligence/crm/internal/memory"
	"github.com/mesh-intelligence/crm/internal/sqlite"
	"github.com/mesh-intelligence/crm/pkg/types"
)

// newBackend returns an unattached backend for the configured name.
func newBackend(name string) (types.Backend, error) {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case types.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrBackendUnknown, name)
	}
}

// withStore attaches the configured backend, runs fn against a record store
// over it, and detaches. A detach failure is reported when fn succeeded,
// since with the on_close strategy it means pending writes were lost.
func (a *app) withStore(fn func(*contacts.Store) error) (err error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	backend, err := newBackend(cfg.Backend)
	if err != nil {
		return userError(err)
	}
	if err := backend.Attach(cfg); err != nil {
		return sysError(fmt.Errorf("attach %s backend: %w", cfg.Backend, err))
	}
	a.log.Debug("backend attached",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
		zap.String("sync_strategy", cfg.GetSyncStrategy()))

	defer func() {
		if derr := backend.Detach(); derr != nil && err == nil {
			err = sysError(fmt.Errorf("detach %s backend: %w", cfg.Backend, derr))
		}
	}()

	return classify(fn(contacts.New(backend, contacts.WithLogger(a.log))))
}
