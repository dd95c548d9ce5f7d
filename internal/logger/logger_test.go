package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogFilePathDefaultsToWorkdirLogs(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := logFilePath(Options{}.withDefaults())
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	realTmpDir, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("resolve tmp dir symlink failed: %v", err)
	}
	realGot, err := filepath.EvalSymlinks(filepath.Dir(got))
	if err != nil {
		t.Fatalf("resolve log dir symlink failed: %v", err)
	}
	if realGot != filepath.Join(realTmpDir, defaultLogDirName) || filepath.Base(got) != "market.log" {
		t.Fatalf("unexpected default log path: %s", got)
	}
}

func TestOptionsWithDefaultsKeepsExplicitValues(t *testing.T) {
	opts := Options{Filename: " orders.log ", MaxBackups: 3, Compress: true}.withDefaults()
	if opts.Filename != "orders.log" || opts.MaxBackups != 3 || !opts.Compress {
		t.Fatalf("explicit values should survive: %+v", opts)
	}
	if opts.MaxSizeMB != defaultLogMaxSizeMB || opts.MaxAgeDays != defaultLogMaxAgeDays {
		t.Fatalf("missing values should use defaults: %+v", opts)
	}
}

func TestNewReleaseWritesJSONToConfiguredFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{Dir: tmpDir, Filename: "release.log"})
	log.Sugar().Infow("order_placed", "order_no", "MK-1")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "release.log"))
	if err != nil {
		t.Fatalf("read release log failed: %v", err)
	}
	if !strings.Contains(string(content), `"message":"order_placed"`) || !strings.Contains(string(content), `"order_no":"MK-1"`) {
		t.Fatalf("expected json log line, got=%s", string(content))
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{Dir: tmpDir, Filename: "debug.log"})
	log.Info("debug-log-test")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file")
	}
}

func TestZFallsBackBeforeInit(t *testing.T) {
	saved := L
	L = nil
	t.Cleanup(func() { L = saved })
	if Z() == nil || SW("request_id", "req-1") == nil {
		t.Fatalf("expected fallback logger")
	}
}
