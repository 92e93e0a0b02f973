package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starrupture/srfactory/pkg/catalogue"
	"github.com/starrupture/srfactory/pkg/errors"
)

func writeConfig(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.DataDir != "." {
		t.Errorf("DataDir = %q, want .", cfg.DataDir)
	}
	if got := cfg.CatalogueFiles().Items; got != catalogue.DefaultItemsFile {
		t.Errorf("Items = %q, want %q", got, catalogue.DefaultItemsFile)
	}
}

func TestLoadConfigFromXDG(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, `
data_dir = "/srv/data"

[catalogue]
raw = "raw.csv"
buildings = "/abs/buildings.csv"
`)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	files := cfg.CatalogueFiles()
	tests := []struct{ name, got, want string }{
		{"items", files.Items, filepath.Join("/srv/data", catalogue.DefaultItemsFile)},
		{"raw", files.Raw, filepath.Join("/srv/data", "raw.csv")},
		{"buildings", files.Buildings, "/abs/buildings.csv"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"unknown key", `data_dir = "x"` + "\nverbose = true\n", errors.ErrCodeInvalidConfig},
		{"unknown nested key", "[catalogue]\nrecipes = \"r.csv\"\n", errors.ErrCodeInvalidConfig},
		{"syntax", `data_dir = `, errors.ErrCodeInvalidConfig},
		{"wrong type", `data_dir = 3`, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.data)
			if _, err := loadConfig(path); !errors.Is(err, tt.code) {
				t.Errorf("loadConfig = %v, want %s", err, tt.code)
			}
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "none.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("loadConfig = %v, want %s", err, errors.ErrCodeFileNotFound)
		}
	})
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("configDir() = %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir: %v", err)
	}
	home, _ := os.UserHomeDir()
	if dir != filepath.Join(home, ".config", appName) {
		t.Errorf("configDir() = %q", dir)
	}
}
