package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/crossword-tools/libpuz/pkg/puz"
)

// Config represents ~/.config/libpuz/config.yaml. Fields are pointers
// where we need to distinguish "not set" from the zero value.
type Config struct {
	LogLevel   string  `yaml:"log_level"`
	LogFormat  string  `yaml:"log_format"`
	Separator  *string `yaml:"separator"`
	PreferMmap *bool   `yaml:"prefer_mmap"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "libpuz", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyInspectConfig applies config file defaults to inspect command
// variables when the corresponding CLI flag was not explicitly set.
func applyInspectConfig(c *cli.Command, cfg Config, separator *string) {
	if cfg.Separator != nil && !c.IsSet("separator") {
		*separator = *cfg.Separator
	}
}

// openPuzzleFile opens path honoring the config's prefer_mmap setting.
// puz.Open always tries mmap first; a config that explicitly disables it
// falls back to reading the file into memory through OpenReaderAt instead,
// useful on filesystems where mmap is unreliable (network mounts, some
// container overlays).
func openPuzzleFile(path string, cfg Config) (*puz.File, error) {
	if cfg.PreferMmap != nil && !*cfg.PreferMmap {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		stat, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return puz.OpenReaderAt(f, stat.Size())
	}
	return puz.Open(path)
}
