package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/octet-labs/mkexample/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Configuration keys. They double as the YAML field names and, upper-cased
// with the branding prefix, as environment variable names.
const (
	KeyExamplesRoot     = "examples_root"
	KeyPrototype        = "prototype"
	KeyPrefix           = "prefix"
	KeyToken            = "token"
	KeyArtifactPatterns = "artifact_patterns"
	KeyBinaryExtensions = "binary_extensions"
	KeyRequiredVersion  = "required_version"
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
)

// KnownKeys lists every key accepted by Set.
var KnownKeys = []string{
	KeyExamplesRoot,
	KeyPrototype,
	KeyPrefix,
	KeyToken,
	KeyArtifactPatterns,
	KeyBinaryExtensions,
	KeyRequiredVersion,
	KeyLogLevel,
	KeyLogFormat,
}

var listKeys = map[string]bool{
	KeyArtifactPatterns: true,
	KeyBinaryExtensions: true,
}

// Config is the explicit settings value passed to every operation.
type Config struct {
	ExamplesRoot     string   // directory holding the prototype and generated projects
	Prototype        string   // prototype directory name, e.g. "example_prototype"
	Prefix           string   // generated project prefix, e.g. "example_"
	Token            string   // placeholder replaced by the project name
	ArtifactPatterns []string // glob patterns removed by clean
	BinaryExtensions []string // extensions copied without content substitution
	RequiredVersion  string   // optional semver constraint on the tool version
	LogLevel         string
	LogFormat        string
}

// Default returns the built-in settings matching the octet source layout.
func Default() *Config {
	return &Config{
		ExamplesRoot: filepath.Join("src", "examples"),
		Prototype:    "example_prototype",
		Prefix:       "example_",
		Token:        "prototype",
		ArtifactPatterns: []string{
			"*.sln",
			"*.vcxproj",
			"*.vcxproj.filters",
			"*.vcxproj.user",
			"*.xcodeproj",
		},
		BinaryExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tga", ".dds", ".ico",
			".wav", ".ogg", ".mp3", ".au", ".xcf",
			".lib", ".a", ".dll", ".exe", ".pdb", ".obj", ".o", ".so", ".dylib",
			".zip", ".gz",
		},
		LogLevel:  "info",
		LogFormat: "text",
	}
}

var configFile string

// SetFile overrides the config file path (the --config flag). An empty path
// restores the default.
func SetFile(path string) {
	configFile = path
}

// FilePath returns the config file in use (./.mkexample.yaml by default).
func FilePath() string {
	if configFile != "" {
		return configFile
	}
	return branding.ConfigFile() + "." + fileType
}

func setDefaults() {
	d := Default()
	viper.SetDefault(KeyExamplesRoot, d.ExamplesRoot)
	viper.SetDefault(KeyPrototype, d.Prototype)
	viper.SetDefault(KeyPrefix, d.Prefix)
	viper.SetDefault(KeyToken, d.Token)
	viper.SetDefault(KeyArtifactPatterns, d.ArtifactPatterns)
	viper.SetDefault(KeyBinaryExtensions, d.BinaryExtensions)
	viper.SetDefault(KeyRequiredVersion, d.RequiredVersion)
	viper.SetDefault(KeyLogLevel, d.LogLevel)
	viper.SetDefault(KeyLogFormat, d.LogFormat)
}

func initViper() {
	setDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()
}

// Load reads the config file (if present) and the environment and returns
// the resulting Config. A config file that fails schema validation is an
// error; a missing file is not.
func Load() (*Config, error) {
	initViper()

	path := FilePath()
	if _, err := os.Stat(path); err == nil {
		result, err := ValidateFile(path)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, fmt.Errorf("invalid config file %s: %s", path, result.Summary())
		}
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("checking config file %s: %w", path, err)
	}

	cfg := &Config{
		ExamplesRoot:     viper.GetString(KeyExamplesRoot),
		Prototype:        viper.GetString(KeyPrototype),
		Prefix:           viper.GetString(KeyPrefix),
		Token:            viper.GetString(KeyToken),
		ArtifactPatterns: viper.GetStringSlice(KeyArtifactPatterns),
		BinaryExtensions: viper.GetStringSlice(KeyBinaryExtensions),
		RequiredVersion:  viper.GetString(KeyRequiredVersion),
		LogLevel:         viper.GetString(KeyLogLevel),
		LogFormat:        viper.GetString(KeyLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	initViper()
	_ = viper.ReadInConfig()
	if listKeys[key] {
		return strings.Join(viper.GetStringSlice(key), ",")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. List keys
// take a comma-separated value.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q (known keys: %s)", key, strings.Join(KnownKeys, ", "))
	}

	initViper()
	_ = viper.ReadInConfig()

	if listKeys[key] {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()
	if dir := filepath.Dir(configFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory %s: %w", dir, err)
		}
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Validate checks the invariants the engine relies on.
func (c *Config) Validate() error {
	if c.ExamplesRoot == "" {
		return fmt.Errorf("%s must not be empty", KeyExamplesRoot)
	}
	if c.Token == "" {
		return fmt.Errorf("%s must not be empty", KeyToken)
	}
	if strings.ContainsAny(c.Token, "/\\\n\r") {
		return fmt.Errorf("%s %q must not contain path separators or newlines", KeyToken, c.Token)
	}
	if c.Prefix == "" || strings.ContainsAny(c.Prefix, "/\\") {
		return fmt.Errorf("%s %q must be a non-empty single path segment", KeyPrefix, c.Prefix)
	}
	if c.Prototype == "" || strings.ContainsAny(c.Prototype, "/\\") {
		return fmt.Errorf("%s %q must be a non-empty single path segment", KeyPrototype, c.Prototype)
	}
	for _, p := range c.ArtifactPatterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("artifact pattern %q: %w", p, err)
		}
	}
	for _, ext := range c.BinaryExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("binary extension %q must start with a dot", ext)
		}
	}
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
