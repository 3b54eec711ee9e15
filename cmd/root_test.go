// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/tarefas/internal/config"
	"github.com/nibzard/tarefas/internal/logging"
)

var tarefasEnv = []string{
	"TAREFAS_TITLE", "TAREFAS_SUBTITLE", "TAREFAS_PLACEHOLDER", "TAREFAS_ALT_SCREEN",
	"TAREFAS_SEED", "TAREFAS_LOG_DIR", "TAREFAS_LOG_LEVEL", "TAREFAS_LOG_FORMAT",
	"TAREFAS_LOG_TIMESTAMPS", "TAREFAS_LOG_CALLER",
}

// isolate runs the test in a fresh working directory with an empty HOME
// and no TAREFAS_* variables. It returns the working directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, key := range tarefasEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	work := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
	return work
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = oldStdout
	}()

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	runErr := fn()
	_ = w.Close()
	output := <-done
	_ = r.Close()

	return string(output), runErr
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "--help flag", args: []string{"--help"}, want: "Usage:"},
		{name: "-h flag", args: []string{"-h"}, want: "Commands:"},
		{name: "help command", args: []string{"help"}, want: "batch [file]"},
		{name: "--version flag", args: []string{"--version"}, want: "tarefas version dev"},
		{name: "-v flag", args: []string{"-v"}, want: "tarefas version"},
		{name: "version command", args: []string{"version"}, want: "tarefas version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out, err := captureStdout(t, func() error {
				return Run(context.Background(), tt.args)
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}

	t.Run("unknown command returns error", func(t *testing.T) {
		isolate(t)
		err := Run(context.Background(), []string{"unknown-command"})
		if err == nil {
			t.Fatal("expected error for unknown command, got nil")
		}
		if !strings.Contains(err.Error(), "unknown command") {
			t.Errorf("expected 'unknown command' error, got %v", err)
		}
	})

	t.Run("bad config is reported", func(t *testing.T) {
		isolate(t)
		writeFile(t, "tarefas.toml", "title = \n")
		err := Run(context.Background(), []string{"version"})
		if err == nil || !strings.Contains(err.Error(), "loading config") {
			t.Fatalf("expected config error, got %v", err)
		}
	})

	t.Run("tui without terminal", func(t *testing.T) {
		isolate(t)
		_, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", ""})
		})
		if err == nil || !strings.Contains(err.Error(), "terminal") {
			t.Fatalf("expected terminal error, got %v", err)
		}
	})
}

func TestBatchCommand(t *testing.T) {
	work := isolate(t)
	logDir := filepath.Join(work, "logs")
	script := writeFile(t, filepath.Join(work, "script.txt"), "add Buy milk\nadd buy milk\ntoggle 1\nadd Walk dog\n")

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"--log-dir", logDir, "--log-level", "debug", "batch", script})
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	for _, want := range []string{
		"Tarefa já existe: Você já adicionou essa tarefa.",
		"1. [ ] Walk dog",
		"2. [x] Buy milk",
		"1 tarefa ativa",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil || logPath == "" {
		t.Fatalf("expected a session log, got %q, %v", logPath, err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"session started", "task add", "task toggle", "duplicate title rejected"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("session log missing %q:\n%s", want, data)
		}
	}
}

func TestBatchCommandWithSeed(t *testing.T) {
	work := isolate(t)
	seed := writeFile(t, filepath.Join(work, "seed.json"), `{"tasks":[{"title":"First"},{"title":"Second","done":true}]}`)
	script := writeFile(t, filepath.Join(work, "script.txt"), "count\n")

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"--log-dir", "", "--seed", seed, "batch", "--file", script})
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if !strings.HasPrefix(out, "1 tarefa ativa\n") {
		t.Errorf("count before final list: %q", out)
	}
	first := strings.Index(out, "First")
	second := strings.Index(out, "[x] Second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("seed order not preserved:\n%s", out)
	}
}

func TestBatchCommandErrors(t *testing.T) {
	t.Run("invalid seed", func(t *testing.T) {
		work := isolate(t)
		seed := writeFile(t, filepath.Join(work, "seed.json"), `{"tasks":[{"title":"A"},{"title":"a"}]}`)
		script := writeFile(t, filepath.Join(work, "script.txt"), "list\n")

		err := Run(context.Background(), []string{"--log-dir", "", "--seed", seed, "batch", script})
		if err == nil || !strings.Contains(err.Error(), "seed") {
			t.Fatalf("expected seed error, got %v", err)
		}
	})

	t.Run("missing command file", func(t *testing.T) {
		isolate(t)
		err := Run(context.Background(), []string{"--log-dir", "", "batch", "nope.txt"})
		if err == nil || !strings.Contains(err.Error(), "opening command file") {
			t.Fatalf("expected open error, got %v", err)
		}
	})

	t.Run("unknown batch command", func(t *testing.T) {
		work := isolate(t)
		script := writeFile(t, filepath.Join(work, "script.txt"), "add A\nfly\n")
		_, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", "", "batch", script})
		})
		if err == nil || !strings.Contains(err.Error(), "line 2") {
			t.Fatalf("expected line error, got %v", err)
		}
	})
}

func TestLogsCommand(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		isolate(t)
		out, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", "", "logs"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "disabled") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("no logs yet", func(t *testing.T) {
		work := isolate(t)
		out, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", filepath.Join(work, "logs"), "logs"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "No log files found.") {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("prints latest session", func(t *testing.T) {
		work := isolate(t)
		logDir := filepath.Join(work, "logs")
		script := writeFile(t, filepath.Join(work, "script.txt"), "add A\n")
		if _, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", logDir, "batch", script})
		}); err != nil {
			t.Fatal(err)
		}

		out, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", logDir, "logs", "-n", "5"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "session started") {
			t.Errorf("expected log contents, got:\n%s", out)
		}

		out, err = captureStdout(t, func() error {
			return Run(context.Background(), []string{"--log-dir", logDir, "logs", "-list"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(out, "bytes") {
			t.Errorf("expected log listing, got:\n%s", out)
		}
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("shows values and sources", func(t *testing.T) {
		isolate(t)
		writeFile(t, "tarefas.toml", "subtitle = \"Projeto\"\n")
		t.Setenv("TAREFAS_LOG_LEVEL", "warn")

		out, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"--title", "Minhas tarefas", "config"})
		})
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{
			"tarefas.toml",
			"Minhas tarefas  (flag)",
			"Projeto  (project file)",
			"warn  (environment)",
			"placeholder",
			"(default)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("example", func(t *testing.T) {
		isolate(t)
		out, err := captureStdout(t, func() error {
			return Run(context.Background(), []string{"config", "-example"})
		})
		if err != nil {
			t.Fatal(err)
		}
		if out != config.ExampleConfig() {
			t.Errorf("unexpected example output:\n%s", out)
		}
	})
}
