package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/bebytes"
	"github.com/wippyai/bebytes/codegen"
	"github.com/wippyai/bebytes/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	want := codegen.Options{Package: "wire", Source: "a.bb", RawEncode: true}
	if diff := cmp.Diff(want, cfg.Options("a.bb")); diff != "" {
		t.Errorf("Options mismatch (-want +got):\n%s", diff)
	}
	if cfg.ByteOrder() != bebytes.BigEndian {
		t.Errorf("ByteOrder = %v, want be", cfg.ByteOrder())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bebytes.yaml")
	data := "package: proto\nendian: le\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &Config{
		Package:   "proto",
		Output:    "-",
		Endian:    "le",
		RawEncode: true,
		Logging:   Logging{Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.ByteOrder() != bebytes.LittleEndian {
		t.Errorf("ByteOrder = %v, want le", cfg.ByteOrder())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bebytes.yaml")
	cfg := DefaultConfig()
	cfg.Package = "frames"
	cfg.Output = "frames_gen.go"
	cfg.RawEncode = false

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name  string
		path  string
		count int
	}{
		{"missing file", filepath.Join(dir, "absent.yaml"), 1},
		{"bad yaml", write("bad.yaml", "package: [unclosed\n"), 1},
		{"bad package", write("pkg.yaml", "package: 1wire\n"), 1},
		{"everything wrong", write("all.yaml", "package: a-b\noutput: \"\"\nendian: middle\nlogging:\n  level: loud\n"), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			kinds := errors.KindsOf(err)
			if len(kinds) != tt.count {
				t.Fatalf("got %d errors %v, want %d", len(kinds), err, tt.count)
			}
			if slices.ContainsFunc(kinds, func(k errors.Kind) bool { return k != errors.KindInvalidInput }) {
				t.Errorf("kinds = %v, want all invalid_input", kinds)
			}
		})
	}
}

func TestParseEndian(t *testing.T) {
	tests := []struct {
		in      string
		want    bebytes.Endian
		wantErr bool
	}{
		{"be", bebytes.BigEndian, false},
		{"BIG", bebytes.BigEndian, false},
		{"", bebytes.BigEndian, false},
		{"le", bebytes.LittleEndian, false},
		{"little-endian", bebytes.LittleEndian, false},
		{"pdp", bebytes.BigEndian, true},
	}
	for _, tt := range tests {
		got, err := ParseEndian(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEndian(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseEndian(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "warn"
	log, err := cfg.NewLogger()
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log.Core().Enabled(zapcore.InfoLevel) {
		t.Error("info enabled at warn level")
	}
	if !log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("error disabled at warn level")
	}
}
