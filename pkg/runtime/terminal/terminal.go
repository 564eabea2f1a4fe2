package terminal

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/runtime/app"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/runtime/terminal/commands"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/runtime/terminal/export"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/config"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	catalog  *Reporter
	reporter *export.Reporter
	output   io.Writer
	logs     io.Writer
	now      func() time.Time
	rootCmd  *cobra.Command

	cfgPath string
	store   config.StoreConfig
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Logs receives structured logs, stderr by default
	Logs io.Writer
	Now  func() time.Time
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logs == nil {
		opts.Logs = os.Stderr
	}

	cli := &CLI{
		catalog:  NewReporter(opts.Output),
		reporter: export.NewReporter(opts.Output),
		output:   opts.Output,
		logs:     opts.Logs,
		now:      opts.Now,
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, mostly for tests
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reports",
		Short:         "Storefront reports: preview and export",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(cli.output)

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a config file (REPORTS_* variables also apply)")
	cmd.PersistentFlags().StringVar(&cli.store.DSN, "dsn", "", "Postgres connection string")
	cmd.PersistentFlags().StringVar(&cli.store.Profile, "profile", "", "Data source profile name")
	cmd.PersistentFlags().StringVar(&cli.store.ProfilesPath, "profiles", "", "Path to the profiles file (default is $HOME/.reportscfg)")
	cmd.PersistentFlags().StringVar(&cli.store.Fixture, "fixture", "", "Path to a JSON store snapshot")

	cmd.AddCommand(commands.NewListCmd(registry.Default(), cli.catalog))
	cmd.AddCommand(commands.NewGenerateCmd(cli.open, cli.reporter))
	cmd.AddCommand(commands.NewExportCmd(cli.open))

	return cmd
}

// open loads the config file and lets the store flags take precedence over it
func (cli *CLI) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig(cli.cfgPath)
	if err != nil {
		return nil, err
	}

	if cli.store.DSN != "" {
		cfg.Store.DSN = cli.store.DSN
	}
	if cli.store.Profile != "" {
		cfg.Store.Profile = cli.store.Profile
	}
	if cli.store.ProfilesPath != "" {
		cfg.Store.ProfilesPath = cli.store.ProfilesPath
	}
	if cli.store.Fixture != "" {
		cfg.Store.Fixture = cli.store.Fixture
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(cli.logs).Level(level).With().Timestamp().Logger()

	return app.New(logger.WithContext(ctx), cfg, cli.now)
}
