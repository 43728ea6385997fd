package store

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/walkjournal/pkg/logging"
)

// Config locates the journal on disk.
type Config interface {
	BasePath() string
	Name() string
	Backend() string
}

// FileConfig is the configuration read from .walkjournal.yaml and the
// environment.
type FileConfig struct {
	Path        string          `json:"path"`
	Database    string          `json:"name"`
	BackendKind string          `json:"backend"`
	Log         logging.Options `json:"log"`
	// File is the config file used, empty when only defaults and env apply.
	File string `json:"-"`
}

func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.walkjournal")
	v.SetDefault("name", DefaultName)
	v.SetDefault("backend", BackendDiskv)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", logging.FormatText)
	v.SetDefault("log.file", "")
	v.SetConfigName(".walkjournal") // .yaml is implicit
	v.SetEnvPrefix("WALKJOURNAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("WALKJOURNAL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, err
	}

	return &FileConfig{
		Path:        path,
		Database:    v.GetString("name"),
		BackendKind: strings.ToLower(v.GetString("backend")),
		Log: logging.Options{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   logFile,
		},
		File: v.ConfigFileUsed(),
	}, nil
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) Name() string {
	return f.Database
}

func (f *FileConfig) Backend() string {
	return f.BackendKind
}

// OptionsFor turns cfg into Options for the current schema version.
func OptionsFor(cfg Config) Options {
	return Options{
		BasePath: cfg.BasePath(),
		Name:     cfg.Name(),
		Backend:  cfg.Backend(),
		Version:  CurrentVersion,
	}
}
