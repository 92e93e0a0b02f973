package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/starrupture/srfactory/pkg/catalogue"
	"github.com/starrupture/srfactory/pkg/errors"
)

const configFile = "config.toml"

// Config is the srfactory configuration file.
//
//	data_dir = "/path/to/data"
//	[catalogue]
//	items = "starrupture_recipe_items.csv"
type Config struct {
	DataDir   string          `toml:"data_dir"`
	Catalogue CatalogueConfig `toml:"catalogue"`
}

// CatalogueConfig names the catalogue files. Relative names are resolved
// against [Config.DataDir].
type CatalogueConfig struct {
	Items     string `toml:"items"`
	Inputs    string `toml:"inputs"`
	Raw       string `toml:"raw"`
	Buildings string `toml:"buildings"`
}

func defaultConfig() Config {
	files := catalogue.DefaultFiles()
	return Config{
		DataDir: ".",
		Catalogue: CatalogueConfig{
			Items:     files.Items,
			Inputs:    files.Inputs,
			Raw:       files.Raw,
			Buildings: files.Buildings,
		},
	}
}

// CatalogueFiles returns the catalogue file paths with DataDir applied.
func (c Config) CatalogueFiles() catalogue.Files {
	resolve := func(name string) string {
		if filepath.IsAbs(name) {
			return name
		}
		return filepath.Join(c.DataDir, name)
	}
	return catalogue.Files{
		Items:     resolve(c.Catalogue.Items),
		Inputs:    resolve(c.Catalogue.Inputs),
		Raw:       resolve(c.Catalogue.Raw),
		Buildings: resolve(c.Catalogue.Buildings),
	}
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields the defaults; a missing
// explicit file is an error. Keys left out of the file keep their defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if errors.Blank(cfg.DataDir) {
		cfg.DataDir = "."
	}
	return cfg, nil
}

// configDir returns the config directory using the XDG standard
// (~/.config/srfactory/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
