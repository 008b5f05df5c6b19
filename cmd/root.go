package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/remote-hub/internal/config"
	"github.com/quocvuong92/remote-hub/internal/display"
	"github.com/quocvuong92/remote-hub/internal/logging"
)

// App holds the application state
type App struct {
	cfg     *config.Config
	verbose bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd(NewApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "remote-hub",
		Short: "A simulated SSH terminal and file panel",
		Long: `Remote Hub is a demo remote-access dashboard: a simulated SSH terminal
with a fixed set of commands, editable connection settings, and a file panel
that describes uploaded files with an AI model.

Examples:
  remote-hub serve                      # Web UI on :8080
  remote-hub serve --listen :9000
  remote-hub terminal                   # Terminal in this shell
  remote-hub describe notes.md logo.png
  remote-hub describe -r report.pdf     # Render results as markdown
  remote-hub init-config`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&app.cfg.ConfigPath, "config", "", "Config file (default: search ./.remote-hub, user config dir)")
	rootCmd.PersistentFlags().StringVar(&app.cfg.Provider, "provider", "", "Description provider: openai, offline (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&app.cfg.Model, "model", "m", "", "Model name for descriptions")

	rootCmd.AddCommand(NewServeCmd(app))
	rootCmd.AddCommand(NewTerminalCmd(app))
	rootCmd.AddCommand(NewDescribeCmd(app))
	rootCmd.AddCommand(NewInitConfigCmd())

	return rootCmd
}

// loadConfig validates the configuration and configures logging from it.
func (app *App) loadConfig() error {
	app.cfg.Verbose = app.verbose
	if err := app.cfg.Validate(); err != nil {
		display.ShowError(err.Error())
		return err
	}
	logging.Configure(app.cfg.LogLevel, app.cfg.LogFormat)
	logging.Debug("configuration loaded", logging.Fields{
		"provider": app.cfg.Provider,
		"model":    app.cfg.Model,
		"listen":   app.cfg.ListenAddr,
	})
	return nil
}

// NewInitConfigCmd creates the init-config command
func NewInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file to the user config directory.

An existing file is never overwritten.

Examples:
  remote-hub init-config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfigFile()
			if err != nil {
				display.ShowError(err.Error())
				return err
			}
			display.ShowInfo("Config file created at " + path)
			return nil
		},
	}
}
