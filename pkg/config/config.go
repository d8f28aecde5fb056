// Package config loads the settings of the bazel2cmake command
package config

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/ngld/bazel2cmake/pkg/cmakegen"
)

// Config describes all configuration options
type Config struct {
	Workspace    string `default:"WORKSPACE" env:"WORKSPACE" toml:"workspace" usage:"Path to the Bazel WORKSPACE file"`
	Build        string `default:"BUILD" env:"BUILD" toml:"build" usage:"Path to the Bazel BUILD file"`
	Generator    string `default:"tools/make_cmakelists.py" env:"GENERATOR" toml:"generator" usage:"Generator name written to the header of the generated file"`
	OptionPrefix string `default:"UPB" env:"OPTION_PREFIX" toml:"option_prefix" usage:"Prefix for the sanitizer options (<prefix>_ENABLE_ASAN, <prefix>_ENABLE_UBSAN)"`
	Debug        bool   `default:"false" env:"DEBUG" toml:"debug" usage:"Print all fields of every log message"`
	Log          struct {
		Level string `default:"info" env:"LEVEL" toml:"level"`
		JSON  bool   `default:"false" env:"JSON" toml:"json" usage:"Output JSONND instead of pretty console messages"`
	} `env:"LOG" toml:"log"`
}

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

var cmakeIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DefaultFiles lists the config files that are loaded if they exist
var DefaultFiles = []string{"bazel2cmake.toml"}

// Loader initializes an empty config object and returns a new Loader for this object.
// Values are read from the given files (DefaultFiles if none are passed) and BAZEL2CMAKE_* environment variables.
func Loader(files ...string) (*Config, *aconfig.Loader) {
	if len(files) == 0 {
		files = DefaultFiles
	}

	// config files are optional
	present := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}

	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "BAZEL2CMAKE",
		SkipFlags: true,
		Files:     present,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load reads and validates the configuration
func Load(files ...string) (*Config, error) {
	cfg, loader := Loader(files...)
	err := loader.Load()
	if err != nil {
		return nil, eris.Wrap(err, "failed to load config")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	if cfg.Workspace == "" {
		return eris.New(`Invalid value for workspace: must not be empty`)
	}

	if cfg.Build == "" {
		return eris.New(`Invalid value for build: must not be empty`)
	}

	if !cmakeIdentifier.MatchString(cfg.OptionPrefix) {
		return eris.Errorf(`Invalid value for option_prefix: %q is not a valid CMake variable name`, cfg.OptionPrefix)
	}

	_, ok := logLevels[cfg.Log.Level]
	if !ok {
		return eris.Errorf(`Invalid value for log.level: %s`, cfg.Log.Level)
	}

	return nil
}

// LogLevel converts the .Log.Level field to a zerolog.Level
func (cfg *Config) LogLevel() zerolog.Level {
	return logLevels[cfg.Log.Level]
}

// CMakeOptions returns the settings for the static part of the generated file
func (cfg *Config) CMakeOptions() cmakegen.Options {
	return cmakegen.Options{
		Source:       filepath.Base(cfg.Build),
		Generator:    cfg.Generator,
		OptionPrefix: cfg.OptionPrefix,
	}
}
