package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nao1215/astralyrics/internal/config"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultConfigFile {
			t.Errorf("expected default %q, got %q", config.DefaultConfigFile, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("force")
		if flag == nil {
			t.Fatal("expected force flag")
		}
		if flag.Shorthand != "f" || flag.DefValue != "false" {
			t.Errorf("unexpected force flag: -%s default %s", flag.Shorthand, flag.DefValue)
		}
	})
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	run := func(t *testing.T, args ...string) (string, error) {
		t.Helper()
		var out bytes.Buffer
		cmd := NewInitCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	t.Run("creates a loadable config file", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ".astralyrics")
		out, err := run(t, "-o", outputPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, outputPath) {
			t.Errorf("expected output to mention %s, got %q", outputPath, out)
		}

		file, err := config.LoadConfigFile(outputPath)
		if err != nil {
			t.Fatalf("generated file does not load: %v", err)
		}
		cfg := config.NewConfig()
		if err := file.Apply(cfg); err != nil {
			t.Fatalf("generated file does not apply: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("generated file is not valid: %v", err)
		}
	})

	t.Run("fails if file exists without force", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ".astralyrics")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := run(t, "-o", outputPath)
		if err == nil || !strings.Contains(err.Error(), "already exists") {
			t.Errorf("expected 'already exists' error, got %v", err)
		}
	})

	t.Run("overwrites file with force flag", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), ".astralyrics")
		if err := os.WriteFile(outputPath, []byte("existing"), 0600); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		if _, err := run(t, "-o", outputPath, "-f"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		content, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(content) == "existing" {
			t.Error("expected file to be overwritten")
		}
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		outputPath := filepath.Join(t.TempDir(), "astralyrics", "config.yaml")
		if _, err := run(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(outputPath); err != nil {
			t.Errorf("expected config file in nested directory: %v", err)
		}
	})

	t.Run("file has correct permissions", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("skipping permission test on Windows")
		}

		outputPath := filepath.Join(t.TempDir(), ".astralyrics")
		if _, err := run(t, "-o", outputPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		info, err := os.Stat(outputPath)
		if err != nil {
			t.Fatalf("failed to stat file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	})
}

// TestConfigTemplate tests the embedded config template.
func TestConfigTemplate(t *testing.T) {
	t.Parallel()

	content, err := configTemplate.ReadFile("templates/astralyrics.yaml")
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}

	for _, key := range []string{"search_addr", "detail_addr", "timeout", "proxy", "sink", "display_command", "notice_command"} {
		if !strings.Contains(string(content), key) {
			t.Errorf("expected template to document %q", key)
		}
	}
}
