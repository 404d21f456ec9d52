package types

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Config holds backend selection and parameters for opening a DocumentStore.
type Config struct {
	Backend      string `json:"backend" yaml:"backend" validate:"required,oneof=sqlite memory"`
	DataDir      string `json:"data_dir" yaml:"data_dir"`
	SyncStrategy string `json:"sync_strategy" yaml:"sync_strategy" validate:"omitempty,oneof=immediate on_close"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Sync strategies for the SQLite backend. Immediate rewrites the JSONL file
// after every mutation; on_close defers the write until Detach.
const (
	SyncImmediate = "immediate"
	SyncOnClose   = "on_close"
)

// Config validation errors.
var (
	ErrBackendEmpty        = errors.New("backend must not be empty")
	ErrBackendUnknown      = errors.New("unknown backend")
	ErrSyncStrategyUnknown = errors.New("unknown sync strategy")
)

var configValidator = validator.New()

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	switch fe.StructField() {
	case "Backend":
		if fe.Tag() == "required" {
			return ErrBackendEmpty
		}
		return ErrBackendUnknown
	case "SyncStrategy":
		return ErrSyncStrategyUnknown
	}
	return err
}

// GetSyncStrategy returns the effective sync strategy, defaulting to
// immediate.
func (c Config) GetSyncStrategy() string {
	if c.SyncStrategy == "" {
		return SyncImmediate
	}
	return c.SyncStrategy
}
