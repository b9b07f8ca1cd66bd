package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if cfg.ClipsDirectory != filepath.Join(home, "clips") {
		t.Errorf("ClipsDirectory = %q, want %q", cfg.ClipsDirectory, filepath.Join(home, "clips"))
	}
	if !cfg.CreateSubdirs {
		t.Error("CreateSubdirs should default to true")
	}
	if !cfg.IncludeTitle {
		t.Error("IncludeTitle should default to true")
	}
	if !cfg.IncludeTimestamp {
		t.Error("IncludeTimestamp should default to true")
	}
	if cfg.TimestampFormat != DefaultTimestampFormat {
		t.Errorf("TimestampFormat = %q, want %q", cfg.TimestampFormat, DefaultTimestampFormat)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := Default()
	if cfg != def {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("clips_directory", "/tmp/my-clips")
	v.Set("create_subdirs", false)
	v.Set("include_timestamp", false)

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ClipsDirectory != "/tmp/my-clips" {
		t.Errorf("ClipsDirectory = %q, want /tmp/my-clips", cfg.ClipsDirectory)
	}
	if cfg.CreateSubdirs {
		t.Error("CreateSubdirs should be false")
	}
	if cfg.IncludeTimestamp {
		t.Error("IncludeTimestamp should be false")
	}
	// Unset keys keep their defaults.
	if cfg.TimestampFormat != DefaultTimestampFormat {
		t.Errorf("TimestampFormat = %q, want default", cfg.TimestampFormat)
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	v := viper.New()
	v.Set("clips_directory", "~/notes/clips")

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(home, "notes", "clips")
	if cfg.ClipsDirectory != want {
		t.Errorf("ClipsDirectory = %q, want %q", cfg.ClipsDirectory, want)
	}
}

func TestValidate_MissingTimestampFormat(t *testing.T) {
	cfg := Default()
	cfg.TimestampFormat = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty timestamp format")
	}
	if !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnsureDirectory(t *testing.T) {
	cfg := Default()
	cfg.ClipsDirectory = filepath.Join(t.TempDir(), "nested", "clips")

	if err := cfg.EnsureDirectory(); err != nil {
		t.Fatalf("EnsureDirectory() error = %v", err)
	}

	info, err := os.Stat(cfg.ClipsDirectory)
	if err != nil {
		t.Fatalf("clips directory not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("clips directory is not a directory")
	}
}

func TestImagesDirectory(t *testing.T) {
	cfg := Config{ClipsDirectory: "/tmp/clips"}
	if got := cfg.ImagesDirectory(); got != filepath.Join("/tmp/clips", "images") {
		t.Errorf("ImagesDirectory() = %q", got)
	}
}
