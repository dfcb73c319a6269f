package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	historyFileName = ".myshell_history"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Config struct {
	fs afero.Fs

	HistoryFile   string   `yaml:"history_file"`
	HomeDir       string   `yaml:"home_dir"`
	MaxHistory    int      `yaml:"max_history" validate:"gte=0"`
	MaxJobs       int      `yaml:"max_jobs" validate:"gte=1,lte=1024"`
	PromptEnv     string   `yaml:"prompt_env" validate:"required"`
	DefaultPrompt string   `yaml:"default_prompt"`
	LogFile       string   `yaml:"log_file"`
	Color         string   `yaml:"color" validate:"oneof=always auto never"`
	Plugins       []string `yaml:"plugins" validate:"dive,required"`
}

// Default returns the built-in configuration on the OS filesystem.
func Default() (*Config, error) {
	return parse(afero.NewOsFs(), nil)
}

// Load reads file from fs over the built-in defaults. Unknown keys are
// rejected.
func Load(fs afero.Fs, file string) (*Config, error) {
	data, err := afero.ReadFile(fs, file)
	if err != nil {
		return nil, err
	}
	return parse(fs, data)
}

func parse(fs afero.Fs, data []byte) (*Config, error) {
	cfg := &Config{fs: fs}
	if err := yaml.UnmarshalStrict(defaultConfigData, cfg); err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, err
	}

	var err error
	if cfg.HomeDir == "" {
		cfg.HomeDir, err = os.UserHomeDir()
		if err != nil {
			return nil, err
		}
	}

	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(cfg.HomeDir, historyFileName)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate the configuration for basic semantic errors.
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
	})

	return validate.Struct(c)
}

// Fs is the filesystem the configuration was read from; history and logs
// live on it too.
func (c *Config) Fs() afero.Fs {
	if c.fs == nil {
		return afero.NewOsFs()
	}
	return c.fs
}

// OpenLog opens the application log in an append only state. It returns
// nil when logging is disabled.
func (c *Config) OpenLog() (afero.File, error) {
	if c.LogFile == "" {
		return nil, nil
	}
	return c.Fs().OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}
