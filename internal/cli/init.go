package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/crm/internal/contacts"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize crm configuration and storage",
		Long: "Create the configuration directory and a default config.yaml when\n" +
			"missing, then initialize the storage backend in the data directory.",
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}

	path := configPath(a.configDir)
	written, err := writeConfigIfMissing(path, a.flags.dataDir)
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}
	if written {
		a.log.Info("wrote default config", zap.String("path", path))
	}

	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	if err := a.withStore(func(*contacts.Store) error { return nil }); err != nil {
		return err
	}

	if a.flags.jsonMode {
		return printJSON(cmd, map[string]string{
			"config": path,
			"data":   cfg.DataDir,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "crm initialized\nconfig: %s\ndata: %s\n", path, cfg.DataDir)
	return nil
}
