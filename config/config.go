// Package config loads jv80asm project configuration from TOML.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/JanDeVisser/jv80/translate"
)

var f = translate.From

// DefaultFile is the configuration looked up in the working directory.
const DefaultFile = "jv80asm.toml"

// ErrKeyUnknown reports configuration keys that are not recognized.
type ErrKeyUnknown []string

func (err ErrKeyUnknown) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}

// Config is the assembler configuration. Command line flags override it.
type Config struct {
	Output  string         `toml:"output"`  // Output file.
	Include []string       `toml:"include"` // Include search path.
	Define  map[string]int `toml:"define"`  // Predefined constants.
	List    bool           `toml:"list"`    // Print a listing.
	Address bool           `toml:"address"` // Prefix listing lines with addresses.
	Objdump bool           `toml:"objdump"` // Print a hex dump of the binary.
}

// Decode parses TOML text into the configuration. Keys already set are
// overwritten.
func (cfg *Config) Decode(text string) (err error) {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make(ErrKeyUnknown, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		err = keys
	}

	return
}

// Load reads a configuration file. Relative include directories are made
// relative to the directory of the file.
func Load(path string) (cfg *Config, err error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return
	}

	cfg = &Config{}
	err = cfg.Decode(string(contents))
	if err != nil {
		cfg = nil
		return
	}

	base := filepath.Dir(path)
	for n, dir := range cfg.Include {
		if !filepath.IsAbs(dir) {
			cfg.Include[n] = filepath.Join(base, dir)
		}
	}
	if len(cfg.Output) != 0 && !filepath.IsAbs(cfg.Output) {
		cfg.Output = filepath.Join(base, cfg.Output)
	}

	return
}

// Default loads DefaultFile from dir, or returns an empty configuration
// when there is none.
func Default(dir string) (cfg *Config, err error) {
	cfg, err = Load(filepath.Join(dir, DefaultFile))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = &Config{}, nil
	}
	return
}
