package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/quocvuong92/remote-hub/internal/config"
	"github.com/quocvuong92/remote-hub/internal/display"
	"github.com/quocvuong92/remote-hub/internal/logging"
)

func init() {
	logging.DefaultLogger = logging.New(logging.Options{Level: logging.LevelNone})
}

// newTestApp creates an App with test defaults
func newTestApp() *App {
	app := NewApp()
	app.cfg.MaxUploadBytes = 1 << 20
	return app
}

// captureDisplay redirects display output for the duration of the test.
func captureDisplay(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := display.Out, display.ErrOut
	display.Out, display.ErrOut = &out, &errOut
	t.Cleanup(func() {
		display.Out, display.ErrOut = oldOut, oldErr
	})
	return &out, &errOut
}

// runInTempDir isolates the test from config files and REMOTE_HUB_* variables
func runInTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".xdg"))
	for _, name := range []string{"PROVIDER", "ENDPOINT", "API_KEY", "MODEL", "LISTEN_ADDR", "PORT", "HOST", "USERNAME"} {
		key := config.EnvPrefix + "_" + name
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		}
	}
	return tmpDir
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
