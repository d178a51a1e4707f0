package config

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"numdoc/internal/diag"
	"numdoc/internal/validate"
)

// ManifestName is the configuration file discovered by walking up from the
// lint target.
const ManifestName = "numdoc.toml"

// Config holds the settings read from numdoc.toml. The zero value is a
// usable default: every check enabled, nothing excluded.
type Config struct {
	Checks ChecksConfig `toml:"checks"`
	Files  FilesConfig  `toml:"files"`

	// Path is the manifest this config was loaded from, empty for defaults.
	Path string `toml:"-"`
}

// ChecksConfig filters which checks run. Entries are code prefixes:
// "PR01" enables one check, "PR" the whole group.
type ChecksConfig struct {
	Select []string `toml:"select"`
	Ignore []string `toml:"ignore"`
}

// FilesConfig controls which files and declarations are visited.
type FilesConfig struct {
	Exclude        []string `toml:"exclude"`
	IncludePrivate bool     `toml:"include_private"`
	ExcludeMagic   bool     `toml:"exclude_magic"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{}
}

// FindManifest walks up from startDir to locate numdoc.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses a numdoc.toml file.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads the nearest manifest above startDir. When none
// exists the default configuration is returned with ok=false.
func Discover(startDir string) (Config, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return Default(), false, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Default(), true, err
	}
	return cfg, true, nil
}

func (c Config) validate() error {
	for _, sel := range append(append([]string(nil), c.Checks.Select...), c.Checks.Ignore...) {
		if !knownSelector(sel) {
			return fmt.Errorf("unknown check selector %q", sel)
		}
	}
	for _, pat := range c.Files.Exclude {
		if _, err := filepath.Match(pat, "probe"); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pat, err)
		}
	}
	return nil
}

func knownSelector(sel string) bool {
	if sel == "" {
		return false
	}
	for _, code := range diag.Catalog() {
		if strings.HasPrefix(code.ID(), sel) {
			return true
		}
	}
	return false
}

// Options maps the configuration onto validator options.
func (c Config) Options() validate.Options {
	return validate.Options{
		Select:         c.Checks.Select,
		Ignore:         c.Checks.Ignore,
		IncludePrivate: c.Files.IncludePrivate,
		ExcludeMagic:   c.Files.ExcludeMagic,
	}
}

// Excluded reports whether a slash-separated relative path matches any
// exclude pattern, either as a whole or by one of its segments.
func (c Config) Excluded(relPath string) bool {
	rel := filepath.ToSlash(relPath)
	for _, pat := range c.Files.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		for _, seg := range strings.Split(rel, "/") {
			if ok, _ := filepath.Match(pat, seg); ok {
				return true
			}
		}
	}
	return false
}

// Fingerprint digests every cache-relevant setting so stored results are
// invalidated when the configuration changes.
func (c Config) Fingerprint() [32]byte {
	h := sha256.New()
	writeList := func(tag string, items []string) {
		sorted := append([]string(nil), items...)
		sort.Strings(sorted)
		fmt.Fprintf(h, "%s=%q;", tag, sorted)
	}
	writeList("select", c.Checks.Select)
	writeList("ignore", c.Checks.Ignore)
	writeList("exclude", c.Files.Exclude)
	fmt.Fprintf(h, "private=%t;magic=%t;", c.Files.IncludePrivate, c.Files.ExcludeMagic)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
