// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/cipherlab/internal/alphabet"
	"github.com/jeranaias/cipherlab/internal/crack"
	"github.com/jeranaias/cipherlab/internal/util"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete cipherlab configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	Chaocipher ChaocipherConfig `toml:"chaocipher" json:"chaocipher"`
	RailFence  RailFenceConfig  `toml:"railfence" json:"railfence"`
	Playfair   KeywordConfig    `toml:"playfair" json:"playfair"`
	Vigenere   KeywordConfig    `toml:"vigenere" json:"vigenere"`
	Crack      CrackConfig      `toml:"crack" json:"crack"`
	UI         UIConfig         `toml:"ui" json:"ui"`
}

// ChaocipherConfig seeds the two disks.
type ChaocipherConfig struct {
	// Alphabet seeds the left (cipher) disk.
	Alphabet string `toml:"alphabet" json:"alphabet"`
	// PlainAlphabet seeds the right (plain) disk. Empty means Alphabet.
	PlainAlphabet string `toml:"plain_alphabet" json:"plain_alphabet"`
}

// RailFenceConfig is the default fence shape.
type RailFenceConfig struct {
	Rails int   `toml:"rails" json:"rails"`
	Order []int `toml:"order" json:"order"`
}

// KeywordConfig holds the default keyword of a keyed cipher.
type KeywordConfig struct {
	Keyword string `toml:"keyword" json:"keyword"`
}

// CrackConfig tunes the breakers.
type CrackConfig struct {
	// QuadgramFile holds "NGRAM COUNT" lines. Empty uses the letter model.
	QuadgramFile string `toml:"quadgram_file" json:"quadgram_file"`
	Seed         uint64 `toml:"seed" json:"seed"`

	// Substitution annealing
	InitialTemp       float64 `toml:"initial_temp" json:"initial_temp"`
	FinalTemp         float64 `toml:"final_temp" json:"final_temp"`
	CoolingRate       float64 `toml:"cooling_rate" json:"cooling_rate"`
	IterationsPerTemp int     `toml:"iterations_per_temp" json:"iterations_per_temp"`

	// Permutation search
	MinKeyLen       int     `toml:"min_key_len" json:"min_key_len"`
	MaxKeyLen       int     `toml:"max_key_len" json:"max_key_len"`
	BruteForceMax   int     `toml:"brute_force_max" json:"brute_force_max"`
	PermTemperature float64 `toml:"perm_temperature" json:"perm_temperature"`
	PermCoolingRate float64 `toml:"perm_cooling_rate" json:"perm_cooling_rate"`
	PermIterations  int     `toml:"perm_iterations" json:"perm_iterations"`
}

// UIConfig contains terminal presentation settings.
type UIConfig struct {
	// StepIntervalMS is the autoplay delay of the step player.
	StepIntervalMS int `toml:"step_interval_ms" json:"step_interval_ms"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	anneal := crack.DefaultAnneal()
	perm := crack.DefaultPermutationOptions()

	return &Config{
		Version: CurrentVersion,
		Chaocipher: ChaocipherConfig{
			Alphabet: alphabet.Latin,
		},
		RailFence: RailFenceConfig{
			Rails: 3,
			Order: []int{},
		},
		Playfair: KeywordConfig{Keyword: "MONARQUIA"},
		Vigenere: KeywordConfig{Keyword: "CHAVE"},
		Crack: CrackConfig{
			Seed:              perm.Seed,
			InitialTemp:       anneal.InitialTemp,
			FinalTemp:         anneal.FinalTemp,
			CoolingRate:       anneal.CoolingRate,
			IterationsPerTemp: anneal.IterationsPerTemp,
			MinKeyLen:         perm.MinKeyLen,
			MaxKeyLen:         perm.MaxKeyLen,
			BruteForceMax:     perm.BruteForceMax,
			PermTemperature:   perm.Temperature,
			PermCoolingRate:   perm.CoolingRate,
			PermIterations:    perm.Iterations,
		},
		UI: UIConfig{StepIntervalMS: 600},
	}
}

// Anneal returns the substitution breaker schedule.
func (c CrackConfig) Anneal() crack.Anneal {
	return crack.Anneal{
		InitialTemp:       c.InitialTemp,
		FinalTemp:         c.FinalTemp,
		CoolingRate:       c.CoolingRate,
		IterationsPerTemp: c.IterationsPerTemp,
	}
}

// PermutationOptions returns the permutation breaker options.
// Logger and Parallelism are left for the caller.
func (c CrackConfig) PermutationOptions() crack.PermutationOptions {
	return crack.PermutationOptions{
		MinKeyLen:     c.MinKeyLen,
		MaxKeyLen:     c.MaxKeyLen,
		BruteForceMax: c.BruteForceMax,
		Temperature:   c.PermTemperature,
		CoolingRate:   c.PermCoolingRate,
		Iterations:    c.PermIterations,
		Seed:          c.Seed,
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the cipherlab configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".cipherlab"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that exists but cannot be decoded is reported alongside the defaults
// so callers can warn and continue.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = errors.Join(loadErr, fmt.Errorf("failed to load JSON config: %w", err))
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finish applies environment overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg. Keys missing from the file keep
// their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration as TOML with a short header.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# cipherlab configuration file\n")
	buf.WriteString("# Generated by cipherlab - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON writes the configuration as indented JSON.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks ranges. Values the engines can repair themselves, such as
// an alphabet with duplicates or an invalid rail order, are not errors here.
func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.RailFence.Rails < 0 {
		add("railfence.rails", "must not be negative, got %d", c.RailFence.Rails)
	}

	cr := c.Crack
	if cr.InitialTemp <= 0 {
		add("crack.initial_temp", "must be positive, got %v", cr.InitialTemp)
	}
	if cr.FinalTemp <= 0 {
		add("crack.final_temp", "must be positive, got %v", cr.FinalTemp)
	} else if cr.FinalTemp >= cr.InitialTemp {
		add("crack.final_temp", "must be below initial_temp (%v), got %v", cr.InitialTemp, cr.FinalTemp)
	}
	if cr.CoolingRate <= 0 || cr.CoolingRate >= 1 {
		add("crack.cooling_rate", "must be between 0 and 1 exclusive, got %v", cr.CoolingRate)
	}
	if cr.IterationsPerTemp <= 0 {
		add("crack.iterations_per_temp", "must be positive, got %d", cr.IterationsPerTemp)
	}
	if cr.MinKeyLen < 2 {
		add("crack.min_key_len", "must be at least 2, got %d", cr.MinKeyLen)
	}
	if cr.MaxKeyLen < cr.MinKeyLen {
		add("crack.max_key_len", "must be at least min_key_len (%d), got %d", cr.MinKeyLen, cr.MaxKeyLen)
	}
	if cr.BruteForceMax < 1 || cr.BruteForceMax > 9 {
		add("crack.brute_force_max", "must be between 1 and 9, got %d", cr.BruteForceMax)
	}
	if cr.PermTemperature <= 0 {
		add("crack.perm_temperature", "must be positive, got %v", cr.PermTemperature)
	}
	if cr.PermCoolingRate <= 0 || cr.PermCoolingRate >= 1 {
		add("crack.perm_cooling_rate", "must be between 0 and 1 exclusive, got %v", cr.PermCoolingRate)
	}
	if cr.PermIterations <= 0 {
		add("crack.perm_iterations", "must be positive, got %d", cr.PermIterations)
	}

	if c.UI.StepIntervalMS < 0 {
		add("ui.step_interval_ms", "must not be negative, got %d", c.UI.StepIntervalMS)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty strings and zero tuning values with defaults.
// Zero rails and a zero seed are meaningful and kept.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Chaocipher.Alphabet == "" {
		c.Chaocipher.Alphabet = d.Chaocipher.Alphabet
	}
	if c.RailFence.Order == nil {
		c.RailFence.Order = []int{}
	}
	if c.Playfair.Keyword == "" {
		c.Playfair.Keyword = d.Playfair.Keyword
	}
	if c.Vigenere.Keyword == "" {
		c.Vigenere.Keyword = d.Vigenere.Keyword
	}

	cr, dc := &c.Crack, d.Crack
	if cr.InitialTemp == 0 {
		cr.InitialTemp = dc.InitialTemp
	}
	if cr.FinalTemp == 0 {
		cr.FinalTemp = dc.FinalTemp
	}
	if cr.CoolingRate == 0 {
		cr.CoolingRate = dc.CoolingRate
	}
	if cr.IterationsPerTemp == 0 {
		cr.IterationsPerTemp = dc.IterationsPerTemp
	}
	if cr.MinKeyLen == 0 {
		cr.MinKeyLen = dc.MinKeyLen
	}
	if cr.MaxKeyLen == 0 {
		cr.MaxKeyLen = dc.MaxKeyLen
	}
	if cr.BruteForceMax == 0 {
		cr.BruteForceMax = dc.BruteForceMax
	}
	if cr.PermTemperature == 0 {
		cr.PermTemperature = dc.PermTemperature
	}
	if cr.PermCoolingRate == 0 {
		cr.PermCoolingRate = dc.PermCoolingRate
	}
	if cr.PermIterations == 0 {
		cr.PermIterations = dc.PermIterations
	}

	if c.UI.StepIntervalMS == 0 {
		c.UI.StepIntervalMS = d.UI.StepIntervalMS
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CIPHERLAB_ALPHABET: overrides chaocipher.alphabet
//   - CIPHERLAB_RAILS: overrides railfence.rails
//   - CIPHERLAB_PLAYFAIR_KEY: overrides playfair.keyword
//   - CIPHERLAB_VIGENERE_KEY: overrides vigenere.keyword
//   - CIPHERLAB_QUADGRAMS: overrides crack.quadgram_file
//   - CIPHERLAB_SEED: overrides crack.seed
//   - CIPHERLAB_STEP_MS: overrides ui.step_interval_ms
//
// Numeric values that do not parse are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CIPHERLAB_ALPHABET"); v != "" {
		c.Chaocipher.Alphabet = v
	}

	if v := os.Getenv("CIPHERLAB_RAILS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RailFence.Rails = n
		}
	}

	if v := os.Getenv("CIPHERLAB_PLAYFAIR_KEY"); v != "" {
		c.Playfair.Keyword = v
	}

	if v := os.Getenv("CIPHERLAB_VIGENERE_KEY"); v != "" {
		c.Vigenere.Keyword = v
	}

	if v := os.Getenv("CIPHERLAB_QUADGRAMS"); v != "" {
		c.Crack.QuadgramFile = v
	}

	if v := os.Getenv("CIPHERLAB_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Crack.Seed = n
		}
	}

	if v := os.Getenv("CIPHERLAB_STEP_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.StepIntervalMS = n
		}
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "crack.seed").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation. String values are
// converted to the field's type; "2,0,1" sets an integer list.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}

	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Uint64:
			uintVal, err := strconv.ParseUint(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid unsigned value: %v", err)
			}
			field.SetUint(uintVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.Int {
				ints := []int{}
				for _, f := range strings.FieldsFunc(strVal, func(r rune) bool { return r == ',' || r == ' ' }) {
					n, err := strconv.Atoi(f)
					if err != nil {
						return fmt.Errorf("invalid integer list value %q: %v", f, err)
					}
					ints = append(ints, n)
				}
				field.Set(reflect.ValueOf(ints))
				return nil
			}
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation, in struct order.
func GetAllKeys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "" {
				continue
			}
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, prefix+name+".")
				continue
			}
			keys = append(keys, prefix+name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.RailFence.Order != nil {
		clone.RailFence.Order = append([]int{}, c.RailFence.Order...)
	}
	return &clone
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
