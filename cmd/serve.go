package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/remote-hub/internal/api"
	"github.com/quocvuong92/remote-hub/internal/display"
	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/server"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

// NewServeCmd creates the serve command
func NewServeCmd(app *App) *cobra.Command {
	var uploadDelay time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and HTTP API",
		Long: `Serve the web UI, the JSON API and the terminal websocket.

All browsers share one terminal and one file panel.

Examples:
  remote-hub serve
  remote-hub serve --listen 127.0.0.1:9000 --upload-delay 0s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("upload-delay") {
				app.cfg.SetUploadDelay(uploadDelay)
			}
			if err := app.loadConfig(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return app.runServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&app.cfg.ListenAddr, "listen", "l", "", "Listen address (default :8080)")
	cmd.Flags().DurationVar(&uploadDelay, "upload-delay", 0, "Simulated upload time before describing (default 1.5s)")
	cmd.Flags().StringVar(&app.cfg.MaxUploadSize, "max-upload-size", "", "Largest accepted upload, e.g. 32MB")

	return cmd
}

func (app *App) runServe(ctx context.Context) error {
	describer, err := api.NewDescriber(app.cfg)
	if err != nil {
		display.ShowError(err.Error())
		return err
	}

	session := terminal.NewSession(terminal.New(app.cfg.Connection(), time.Now()), logging.DefaultLogger)
	srv := server.New(session, describer, server.Options{
		ListenAddr:     app.cfg.ListenAddr,
		MaxUploadBytes: app.cfg.MaxUploadBytes,
		UploadDelay:    app.cfg.UploadDelay,
		Logger:         logging.DefaultLogger,
	})

	if err := srv.Run(ctx); err != nil {
		display.ShowError(err.Error())
		return err
	}
	return nil
}
