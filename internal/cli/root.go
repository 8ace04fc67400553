// Package cli contains the Cobra commands of the oid tool.
package cli

import (
	"context"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Lzww0608/oid/internal/config"
	"github.com/Lzww0608/oid/internal/log"
	"github.com/Lzww0608/oid/store"
	"github.com/Lzww0608/oid/store/filestore"
	"github.com/Lzww0608/oid/store/sqlstore"
)

// StoreOpener opens the record store selected by the configuration.
type StoreOpener func(ctx context.Context, cfg config.StoreConfig) (store.Store, error)

// OpenStore opens a filestore or a MySQL sqlstore depending on cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return filestore.Open(cfg.Path), nil
	case config.DriverMySQL:
		s, err := sqlstore.OpenMySQL(ctx, mysqlConfig(cfg.MySQL))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// mysqlConfig converts the mysql section of the configuration into a driver
// configuration.
func mysqlConfig(cfg config.MySQLConfig) *mysql.Config {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Addr
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Database
	return mc
}

// app is the state shared by all commands of one invocation.
type app struct {
	openStore StoreOpener

	configFile string
	output     string
	logLevel   string

	cfg    *config.Config
	logger zerolog.Logger
}

// NewRoot constructs the root `oid` command. open is used by the commands
// that read or write records; pass OpenStore outside of tests.
func NewRoot(open StoreOpener) *cobra.Command {
	a := &app{openStore: open}

	root := &cobra.Command{
		Use:   "oid",
		Short: "Generate, inspect and store prefixed object identifiers",
		Long: "oid works with identifiers of the form <prefix>-<base32 uuidv7>, " +
			"such as flt-agc6amh7z527vijkv2cutplwaa.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "Config file (default ./oid.yaml or ~/.config/oid/oid.yaml)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Output format: text|json")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error")

	root.AddCommand(
		newNewCommand(a),
		newParseCommand(a),
		newFromUUIDCommand(a),
		newListCommand(a),
		newGetCommand(a),
		newDeleteCommand(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and installs the
// logger in the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if a.output != "" {
		cfg.Output = a.output
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	a.cfg = cfg

	a.logger = log.New(cfg.Log, cmd.ErrOrStderr())
	log.Set(a.logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(log.WithLogger(ctx, a.logger))

	if cfg.File != "" {
		a.logger.Debug().Str(log.FieldConfigFile, cfg.File).Msg("config loaded")
	}
	return nil
}

// withStore opens the configured store and ensures it is closed.
func (a *app) withStore(ctx context.Context, fn func(store.Store) error) error {
	s, err := a.openStore(ctx, a.cfg.Store)
	if err != nil {
		return err
	}
	a.logger.Debug().Str(log.FieldDriver, a.cfg.Store.Driver).Msg("store opened")
	defer func() {
		if err := s.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close store")
		}
	}()
	return fn(s)
}
