package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/inoxlang/jscompletion/internal/logs"
	"github.com/inoxlang/jscompletion/internal/utils"
)

const (
	APP_NAME            = "jscompl"
	CONFIG_FILE_RELPATH = APP_NAME + "/config.yaml"

	LOG_LEVEL_ENV_VAR    = "JSCOMPL_LOG_LEVEL"
	GLOBALS_FILE_ENV_VAR = "JSCOMPL_GLOBALS_FILE"

	DEFAULT_DEBOUNCE       = time.Duration(0)
	DEFAULT_MAX_CANDIDATES = 200
	MAX_DEBOUNCE           = 5 * time.Second
	MAX_CONFIG_FILE_SIZE   = 100_000
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	//if not zero bursts of completion requests are debounced.
	Debounce time.Duration

	LogLevel string

	//optional JSON or YAML file describing the global variables of the sandbox.
	GlobalsFile string

	//zero means no limit.
	MaxCandidates int

	//path of the file the configuration has been read from, empty if defaults are used.
	Path string
}

// fileConfig is the YAML representation of Config.
type fileConfig struct {
	Debounce      string `yaml:"debounce"`
	LogLevel      string `yaml:"log-level"`
	GlobalsFile   string `yaml:"globals-file"`
	MaxCandidates *int   `yaml:"max-candidates"`
}

func Default() Config {
	return Config{
		Debounce:      DEFAULT_DEBOUNCE,
		MaxCandidates: DEFAULT_MAX_CANDIDATES,
	}
}

// Load searches for CONFIG_FILE_RELPATH in the XDG configuration directories, the defaults
// are used if no file is found. Environment variables override the values of the file.
func Load() (Config, error) {
	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)

	var config Config

	if err != nil {
		config = Default()
	} else {
		config, err = LoadFile(path)
		if err != nil {
			return Config{}, err
		}
	}

	config.ApplyEnv(os.LookupEnv)

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func LoadFile(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, err
	}
	if !info.Mode().IsRegular() {
		return Config{}, fmt.Errorf("%w: %s is not a regular file", ErrInvalidConfig, path)
	}
	if info.Size() > MAX_CONFIG_FILE_SIZE {
		return Config{}, fmt.Errorf("%w: %s is too large", ErrInvalidConfig, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	config, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	config.Path = path
	return config, nil
}

// Parse parses a YAML configuration, missing fields are set to their default value.
// The result is not validated.
func Parse(data []byte) (Config, error) {
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	config := Default()
	config.LogLevel = file.LogLevel
	config.GlobalsFile = file.GlobalsFile

	if file.MaxCandidates != nil {
		config.MaxCandidates = *file.MaxCandidates
	}

	if file.Debounce != "" {
		debounce, err := time.ParseDuration(file.Debounce)
		if err != nil {
			return Config{}, fmt.Errorf("%w: debounce: %w", ErrInvalidConfig, err)
		}
		config.Debounce = debounce
	}

	return config, nil
}

// ApplyEnv overrides the log level and the globals file with the values of LOG_LEVEL_ENV_VAR
// and GLOBALS_FILE_ENV_VAR, empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if level, ok := lookup(LOG_LEVEL_ENV_VAR); ok && level != "" {
		c.LogLevel = level
	}
	if file, ok := lookup(GLOBALS_FILE_ENV_VAR); ok && file != "" {
		c.GlobalsFile = file
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.Debounce < 0 || c.Debounce > MAX_DEBOUNCE {
		errs = append(errs, fmt.Errorf("debounce should be in range [0, %s]", MAX_DEBOUNCE))
	}
	if c.MaxCandidates < 0 {
		errs = append(errs, errors.New("max-candidates should be positive"))
	}
	if _, err := logs.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.GlobalsFile != "" {
		if _, err := os.Stat(c.GlobalsFile); errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("globals file %s does not exist", c.GlobalsFile))
		}
	}

	if err := utils.CombineErrors(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
