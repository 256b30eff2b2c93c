// Package cli provides the command-line interface for the kundli application.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arvindbhardwaj2003/kundliDesign/internal/config"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/ephemeris"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/kundli"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/store"
	"github.com/arvindbhardwaj2003/kundliDesign/internal/validation"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2026-10-01"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	ConfigDir string
	Logger    zerolog.Logger
	Provider  ephemeris.Provider
	Store     store.ChartStore
}

// NewApp creates the application. configDir is where cfg was loaded from;
// empty means the default directory.
func NewApp(cfg *config.Config, configDir string, logger zerolog.Logger) *App {
	if configDir == "" {
		configDir = config.DefaultConfigDir()
	}
	return &App{
		Config:    cfg,
		ConfigDir: configDir,
		Logger:    logger,
	}
}

// NewRootCmd creates the root command for the CLI. Callers that open the store
// should run it through App.Execute instead so the store is closed.
func NewRootCmd(cfg *config.Config, configDir string, logger zerolog.Logger) *cobra.Command {
	return NewApp(cfg, configDir, logger).RootCmd()
}

// Execute runs args against a fresh command tree and closes the store,
// whether or not the command succeeded.
func (a *App) Execute(args []string) error {
	root := a.RootCmd()
	root.SetArgs(args)
	return a.execute(root)
}

func (a *App) execute(root *cobra.Command) error {
	err := root.Execute()
	if cerr := a.Close(); cerr != nil {
		a.Logger.Warn().Err(cerr).Msg("Failed to close chart store")
		if err == nil {
			err = cerr
		}
	}
	return err
}

// RootCmd builds the command tree bound to a.
func (a *App) RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kundli",
		Short: "Kundli - Vedic birth chart generator",
		Long: `Kundli generates Vedic birth charts.

From a Lagna (ascendant) chart it derives the Moon chart and the Navamsa (D9)
chart, stores the results and serves them over a small HTTP API.

Use 'kundli <command> --help' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Handle debug flag
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				a.Logger = a.Logger.Level(zerolog.DebugLevel)
			}

			provider, err := ephemeris.New(a.Config.Ephemeris)
			if err != nil {
				return err
			}
			a.Provider = provider
			a.Logger.Debug().Str("provider", provider.Name()).Msg("Position provider ready")
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/kundli)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, a)
	addChartCommands(rootCmd, a)
	addServeCommand(rootCmd, a)

	return rootCmd
}

// OpenStore opens the chart store on first use.
func (a *App) OpenStore() (store.ChartStore, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	st, err := store.NewSQLiteStore(a.Config.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("opening chart store %s: %w", a.Config.Storage.Path, err)
	}
	a.Logger.Debug().Str("path", a.Config.Storage.Path).Msg("SQLite store initialized")
	a.Store = st
	return st, nil
}

// Service builds the kundli service, opening the store when withStore is set.
func (a *App) Service(withStore bool) (*kundli.Service, error) {
	var st store.ChartStore
	if withStore {
		s, err := a.OpenStore()
		if err != nil {
			return nil, err
		}
		st = s
	}
	validator := validation.NewInputValidator(a.Config.Validation.Strict)
	return kundli.NewService(a.Provider, st, validator, a.Logger), nil
}

// Close releases the store, if one was opened.
func (a *App) Close() error {
	if a.Store == nil {
		return nil
	}
	err := a.Store.Close()
	a.Store = nil
	return err
}

func (a *App) output(cmd *cobra.Command) *Output {
	out := NewOutput(cmd)
	out.colorEnabled = out.colorEnabled && a.Config.UI.ColorEnabled
	return out
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			}
			output.Printf("Kundli v%s\n", Version)
			output.Dim("Build date: %s", BuildDate)
			return nil
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			path := filepath.Join(app.ConfigDir, "config.toml")
			if output.IsJSON() {
				return output.JSON(map[string]string{"path": path})
			}
			output.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := app.output(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Heading("Storage")
	output.Printf("  Path:            %s\n", cfg.Storage.Path)
	output.Println()

	output.Heading("Server")
	output.Printf("  Address:         %s\n", cfg.Server.Addr())
	output.Printf("  Timeouts:        read %s, write %s\n", cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	output.Printf("  Allowed Origins: %v\n", cfg.Server.AllowedOrigins)
	output.Println()

	output.Heading("Logging")
	output.Printf("  Level:           %s\n", cfg.Logging.Level)
	output.Printf("  File:            %v (%s)\n", cfg.Logging.File, cfg.Logging.FilePath)
	output.Println()

	output.Heading("Charts")
	output.Printf("  Provider:        %s\n", cfg.Ephemeris.Provider)
	if cfg.Ephemeris.ChartFile != "" {
		output.Printf("  Chart File:      %s\n", cfg.Ephemeris.ChartFile)
	}
	output.Printf("  Batch Workers:   %d\n", cfg.Batch.Concurrency)
	output.Printf("  Strict Checks:   %v\n", cfg.Validation.Strict)
}
