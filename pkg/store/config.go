// Package store owns durable persistence: configuration discovery, the
// per-entity file backend, and the in-memory repository the pipeline reads.
package store

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config supplies the flags the core consumes.
type Config interface {
	BasePath() string
	// ClearIDs wipes the synthetic id map at the start of every
	// rendering invocation.
	ClearIDs() bool
	// IncludeDeleted keeps soft-deleted records in default views.
	IncludeDeleted() bool
	ShowHeader() bool
	UseColor() bool
}

// LoadConfig discovers configuration from .granular.yaml and GRANULAR_*
// environment variables.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.granular.db")
	viper.SetDefault("clear_ids", false)
	viper.SetDefault("include_deleted", false)
	viper.SetDefault("show_header", true)
	viper.SetDefault("color", true)
	viper.SetConfigName(".granular") // .yaml is implicit
	viper.SetEnvPrefix("GRANULAR")
	viper.AutomaticEnv()

	if override := os.Getenv("GRANULAR_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, err
	}

	return &fileConfig{
		Path:        path,
		ClearIDMaps: viper.GetBool("clear_ids"),
		WithDeleted: viper.GetBool("include_deleted"),
		Header:      viper.GetBool("show_header"),
		Color:       viper.GetBool("color"),
	}, nil
}

type fileConfig struct {
	Path        string `json:"path"`
	ClearIDMaps bool   `json:"clear_ids"`
	WithDeleted bool   `json:"include_deleted"`
	Header      bool   `json:"show_header"`
	Color       bool   `json:"color"`
}

func (f *fileConfig) BasePath() string     { return f.Path }
func (f *fileConfig) ClearIDs() bool       { return f.ClearIDMaps }
func (f *fileConfig) IncludeDeleted() bool { return f.WithDeleted }
func (f *fileConfig) ShowHeader() bool     { return f.Header }
func (f *fileConfig) UseColor() bool       { return f.Color }

// StaticConfig is a fixed in-memory config, used by tests.
type StaticConfig struct {
	Path        string
	ClearIDMaps bool
	WithDeleted bool
	Header      bool
	Color       bool
}

func (s *StaticConfig) BasePath() string     { return s.Path }
func (s *StaticConfig) ClearIDs() bool       { return s.ClearIDMaps }
func (s *StaticConfig) IncludeDeleted() bool { return s.WithDeleted }
func (s *StaticConfig) ShowHeader() bool     { return s.Header }
func (s *StaticConfig) UseColor() bool       { return s.Color }
