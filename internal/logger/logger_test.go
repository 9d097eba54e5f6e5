package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNopBeforeInit(t *testing.T) {
	// Must not panic without Init
	Info("ignored", zap.String("k", "v"))
	Named("sub").Debug("ignored")
}

func TestFileOutputLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}, nil},
		{"info", []string{"INFO", "WARN", "ERROR"}, []string{"DEBUG"}},
		{"warn", []string{"WARN", "ERROR"}, []string{"DEBUG", "INFO"}},
		{"error", []string{"ERROR"}, []string{"DEBUG", "INFO", "WARN"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "showroom.log")
			opts := DefaultOptions()
			opts.Level = tt.level
			opts.Console = false
			opts.FilePath = path
			opts.Compress = false

			log := Build(opts)
			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message")
			log.Error("error message")
			_ = log.Sync()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			content := string(data)

			for _, want := range tt.expected {
				if !strings.Contains(content, want) {
					t.Errorf("expected %s in output for level %s", want, tt.level)
				}
			}
			for _, nope := range tt.excluded {
				if strings.Contains(content, nope) {
					t.Errorf("unexpected %s in output for level %s", nope, tt.level)
				}
			}
		})
	}
}

func TestNamedLoggerWritesName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "named.log")
	opts := DefaultOptions()
	opts.Console = false
	opts.FilePath = path

	Init(opts)
	defer InitNop()

	Named("loader").Info("asset ready", zap.String("path", "car.glb"))
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "loader") {
		t.Errorf("expected logger name in output, got %q", data)
	}
	if !strings.Contains(string(data), "car.glb") {
		t.Errorf("expected field in output, got %q", data)
	}
}

func TestBuildWithoutOutputs(t *testing.T) {
	log := Build(Options{Level: "debug"})
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a disabled logger when no output is configured")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}
