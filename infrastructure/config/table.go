// Package config loads string settings from ordered properties and .env
// sources into a lookup table that is built once and passed to its users.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/magiconair/properties"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Well-known keys
const (
	KeyURL            = "url"
	KeyBrowser        = "browser"
	KeyBrowserVersion = "browser_version"
	KeyLoginBaseURL   = "login_base_url"
	KeyUserEmail      = "user_email"
	KeyUserPassword   = "user_password"
	KeyLocalPassword  = "local_password"
)

// DefaultSources are loaded when no --config flag is given
var DefaultSources = []string{
	filepath.Join("resources", "system.properties"),
	".env",
}

// Table is the configuration lookup table. Keys are case-insensitive.
// Sources load in registration order and later ones win; explicit Set wins
// over every source. A Table is not safe for concurrent writers.
type Table struct {
	logger    *logrus.Logger
	v         *viper.Viper
	sources   []string
	overrides map[string]string
	deleted   map[string]bool
}

// NewTable - creates an empty table
func NewTable(logger *logrus.Logger) *Table {
	return &Table{
		logger:    logger,
		v:         newViper(),
		overrides: map[string]string{},
		deleted:   map[string]bool{},
	}
}

func newViper() *viper.Viper {
	return viper.New()
}

// propertiesLoader reads values literally; ${key} references are not expanded
var propertiesLoader = &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// AddSource - registers a file to load; order matters
func (t *Table) AddSource(path string) {
	t.sources = append(t.sources, path)
}

// Sources - returns the registered sources in load order
func (t *Table) Sources() []string {
	return append([]string(nil), t.sources...)
}

// isDotenv - reports whether path names a .env style file rather than a properties file
func isDotenv(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || strings.HasPrefix(base, ".env.") || filepath.Ext(base) == ".env"
}

// Load - reads every registered source. Missing sources are logged and skipped;
// unreadable or malformed ones fail the load.
func (t *Table) Load() error {
	v := newViper()
	for _, path := range t.sources {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				t.logger.Warnf("Config source %s not found, skipping", path)
				continue
			}
			return fmt.Errorf("stat config %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("config path %s is a directory", path)
		}

		if isDotenv(path) {
			err = mergeDotenv(v, path)
		} else {
			err = mergeProperties(v, path)
		}
		if err != nil {
			return err
		}
		t.logger.Debugf("Loaded config source %s", path)
	}

	for k, val := range t.overrides {
		v.Set(k, val)
	}
	t.v = v
	return nil
}

func mergeProperties(v *viper.Viper, path string) error {
	p, err := propertiesLoader.LoadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := mergeValues(v, p.Map()); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

func mergeDotenv(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}
	if err := mergeValues(v, values); err != nil {
		return fmt.Errorf("merge env file %s: %w", path, err)
	}
	return nil
}

func mergeValues(v *viper.Viper, values map[string]string) error {
	m := make(map[string]any, len(values))
	for k, val := range values {
		m[normalize(k)] = val
	}
	return v.MergeConfigMap(m)
}

// Get - returns the trimmed value for key and whether it is present
func (t *Table) Get(key string) (string, bool) {
	k := normalize(key)
	if t.deleted[k] || !t.v.IsSet(k) {
		return "", false
	}
	return strings.TrimSpace(t.v.GetString(k)), true
}

// GetOr - returns the value for key or def when absent
func (t *Table) GetOr(key, def string) string {
	if v, ok := t.Get(key); ok {
		return v
	}
	return def
}

// Set - overrides key; the override survives later loads
func (t *Table) Set(key, value string) {
	k := normalize(key)
	delete(t.deleted, k)
	t.overrides[k] = value
	t.v.Set(k, value)
}

// Delete - removes key until it is set again
func (t *Table) Delete(key string) {
	k := normalize(key)
	delete(t.overrides, k)
	t.deleted[k] = true
}

// Keys - returns all present keys, sorted
func (t *Table) Keys() []string {
	keys := make([]string, 0)
	for _, k := range t.v.AllKeys() {
		if !t.deleted[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Snapshot - returns a copy of every present key and value
func (t *Table) Snapshot() map[string]string {
	out := make(map[string]string)
	for _, k := range t.Keys() {
		v, _ := t.Get(k)
		out[k] = v
	}
	return out
}
