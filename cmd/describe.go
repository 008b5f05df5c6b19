package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quocvuong92/remote-hub/internal/api"
	"github.com/quocvuong92/remote-hub/internal/constants"
	"github.com/quocvuong92/remote-hub/internal/display"
	"github.com/quocvuong92/remote-hub/internal/files"
	"github.com/quocvuong92/remote-hub/internal/logging"
)

// NewDescribeCmd creates the describe command
func NewDescribeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <file>...",
		Short: "Describe local files with the configured provider",
		Long: `Describe local files the way the web file panel does, using their real content.

Examples:
  remote-hub describe notes.md
  remote-hub describe --provider offline *.go
  remote-hub describe -r report.pdf logo.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(); err != nil {
				return err
			}
			describer, err := api.NewDescriber(app.cfg)
			if err != nil {
				display.ShowError(err.Error())
				return err
			}
			if app.cfg.Render {
				if err := display.InitRenderer(); err != nil {
					logging.Warn("markdown renderer unavailable", logging.Fields{"error": err.Error()})
				}
			}
			return app.runDescribe(cmd.Context(), describer, args)
		},
	}

	cmd.Flags().BoolVarP(&app.cfg.Render, "render", "r", false, "Render results as a markdown table")

	return cmd
}

// runDescribe describes each path in order. A failed file gets an error
// record; the command only fails when every file failed.
func (app *App) runDescribe(ctx context.Context, describer files.Describer, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	records := make([]files.Record, 0, len(paths))
	failed := 0
	for _, path := range paths {
		record := describePath(ctx, describer, path, app.cfg.MaxUploadBytes, !app.cfg.Render)
		if record.Status == files.StatusError {
			failed++
		}
		records = append(records, record)
		if !app.cfg.Render {
			display.ShowRecord(record)
		}
	}

	if app.cfg.Render {
		display.ShowContentRendered(display.RecordsMarkdown(records))
	}

	if failed == len(paths) {
		return fmt.Errorf("no file could be described")
	}
	return nil
}

// describePath builds a finished record for one local file.
func describePath(ctx context.Context, describer files.Describer, path string, limit int64, spin bool) files.Record {
	name := filepath.Base(path)
	record := files.Record{
		ID:     uuid.New().String(),
		Name:   name,
		Size:   files.RemoteSize,
		Type:   files.FileTypeOf(name),
		Source: files.SourceLocal,
		Status: files.StatusError,
	}

	content, size, err := readLimited(path, limit)
	if err != nil {
		logging.Warn("cannot read file", logging.Fields{"path": path, "error": err.Error()})
		record.Description = err.Error()
		return record
	}
	record.Size = files.FormatBytes(size, 2)

	var sp *display.Spinner
	if spin {
		sp = display.NewSpinner(fmt.Sprintf("Describing %s...", name))
		sp.Start()
	}

	descCtx, cancel := context.WithTimeout(ctx, constants.DefaultAPITimeout)
	description, err := describer.Describe(descCtx, name, content)
	cancel()

	if sp != nil {
		sp.Stop()
	}

	if err != nil || strings.TrimSpace(description) == "" {
		if err != nil {
			logging.Warn("description failed", logging.Fields{"file": name, "error": err.Error()})
		}
		record.Description = files.FallbackDescription
		return record
	}

	record.Status = files.StatusComplete
	record.Description = description
	return record
}

// readLimited reads at most limit bytes of path and returns its full size.
func readLimited(path string, limit int64) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", 0, err
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%s is a directory", path)
	}

	r := io.Reader(f)
	if limit > 0 {
		r = io.LimitReader(f, limit)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	return string(data), info.Size(), nil
}
