package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/hookwright/copyright-hooks/copyright"
	"github.com/spf13/viper"
)

// ErrUnsupportedOption is returned for config keys the hooks do not understand.
var ErrUnsupportedOption = errors.New("unsupported option in config file")

// EnvPrefix prefixes the environment variables that override file values,
// e.g. COPYRIGHT_HOOKS_NAME.
const EnvPrefix = "COPYRIGHT_HOOKS"

// pyprojectSection is the table of pyproject.toml holding the hook settings.
const pyprojectSection = "tool.add_copyright"

// configFileNames are searched in the working directory, in order.
var configFileNames = []string{
	".add-copyright-hook-config.yaml",
	".add-copyright-hook-config.yml",
	".add-copyright-hook-config.json",
	"pyproject.toml",
}

// languageTags maps each per-language section to the file tags it applies to.
var languageTags = map[string][]string{
	"cpp":        {"c++", "cpp"},
	"c-sharp":    {"c#", "csharp", "cs"},
	"html":       {"html", "htm"},
	"java":       {"java"},
	"javascript": {"javascript", "js"},
	"markdown":   {"markdown", "md"},
	"perl":       {"perl", "pl"},
	"php":        {"php"},
	"python":     {"python", "py"},
	"ruby":       {"ruby", "rb"},
	"sql":        {"sql"},
	"typescript": {"typescript", "ts"},
}

// LanguageConfig holds the settings of one per-language section.
type LanguageConfig struct {
	Format string
}

// Config represents the hook configuration after all sources are merged.
type Config struct {
	Name      string
	Format    string
	Languages map[string]LanguageConfig

	// File is the config file that was read, empty when defaults are used.
	File string
}

// DefaultConfig values
var DefaultConfig = Config{
	Format: copyright.DefaultFormat,
}

// SupportedOptions lists every key accepted at the top level of a config file.
func SupportedOptions() []string {
	options := []string{"name", "format"}
	for language := range languageTags {
		options = append(options, language)
	}
	sort.Strings(options[2:])
	return options
}

// LoadHookConfig reads the config file at explicitPath, or else the first config
// file found in cwd, and applies environment overrides. Without any file the
// defaults are returned.
func LoadHookConfig(explicitPath, cwd string) (*Config, error) {
	path := explicitPath
	if path == "" {
		path = findConfigFile(cwd)
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg := DefaultConfig
	cfg.Languages = map[string]LanguageConfig{}

	if path != "" {
		settings, err := readSettings(path)
		if err != nil {
			return nil, err
		}
		if settings != nil {
			if err := decode(settings, &cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			cfg.File = path
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile(cwd string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(cwd, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			if name == "pyproject.toml" && !hasHookSection(candidate) {
				continue
			}
			return candidate
		}
	}
	return ""
}

func hasHookSection(path string) bool {
	settings, err := readSettings(path)
	return err == nil && settings != nil
}

// readSettings returns the hook settings held by a file. For pyproject.toml only
// the hook table is returned, nil when the table is absent.
func readSettings(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Base(path) == "pyproject.toml" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if filepath.Base(path) == "pyproject.toml" {
		return v.Sub(pyprojectSection), nil
	}
	return v, nil
}

func decode(v *viper.Viper, cfg *Config) error {
	supported := SupportedOptions()

	for key, value := range v.AllSettings() {
		if !slices.Contains(supported, key) {
			return fmt.Errorf("%w: '%s'. Supported options are: %s", ErrUnsupportedOption, key, strings.Join(supported, ", "))
		}
		if _, isLanguage := languageTags[key]; !isLanguage {
			continue
		}

		section, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("%w: '%s' must be a table with a 'format' key", ErrUnsupportedOption, key)
		}
		for subKey := range section {
			if subKey != "format" {
				return fmt.Errorf("%w: '%s.%s'. Supported options are: format", ErrUnsupportedOption, key, subKey)
			}
		}
	}

	if name := v.GetString("name"); name != "" {
		cfg.Name = name
	}
	if format := v.GetString("format"); format != "" {
		cfg.Format = format
	}
	for language := range languageTags {
		if format := v.GetString(language + ".format"); format != "" {
			cfg.Languages[language] = LanguageConfig{Format: format}
		}
	}
	return nil
}

// applyEnv lets COPYRIGHT_HOOKS_NAME and COPYRIGHT_HOOKS_FORMAT override the file.
func applyEnv(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if name := v.GetString("name"); name != "" {
		cfg.Name = name
	}
	if format := v.GetString("format"); format != "" {
		cfg.Format = format
	}
}

// ApplyFlags overrides the config with command line values. A format given on
// the command line replaces the per-language formats too.
func (c *Config) ApplyFlags(name, format string) {
	if name != "" {
		c.Name = name
	}
	if format != "" {
		c.Format = format
		c.Languages = map[string]LanguageConfig{}
	}
}

// Validate checks every format template in the config.
func (c *Config) Validate() error {
	if err := copyright.ValidateFormat(c.Format); err != nil {
		return err
	}
	for language, lc := range c.Languages {
		if err := copyright.ValidateFormat(lc.Format); err != nil {
			return fmt.Errorf("%s: %w", language, err)
		}
	}
	return nil
}

// FormatFor returns the template for a file with the given tags. The first tag
// with a per-language format wins, otherwise the global format is used.
func (c *Config) FormatFor(tags []string) string {
	for _, tag := range tags {
		for language, lc := range c.Languages {
			if slices.Contains(languageTags[language], tag) {
				return lc.Format
			}
		}
	}
	return c.Format
}
