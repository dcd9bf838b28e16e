package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/jsxify/pkg/converter"
	"github.com/gnana997/jsxify/pkg/util"
)

// ProjectConfig holds the contents of .jsxify/config.yaml. Every field is
// optional; command-line flags override file values, which override defaults.
type ProjectConfig struct {
	Output            string   `yaml:"output"`
	MinChildren       int      `yaml:"min_children"`
	MinInstances      int      `yaml:"min_instances"`
	LayoutIdentifiers []string `yaml:"layout_identifiers"`
	SelfClosing       []string `yaml:"self_closing"`
	TypeScript        bool     `yaml:"typescript"`
	Verify            bool     `yaml:"verify"`
	Formatter         struct {
		Command string   `yaml:"command"`
		Options []string `yaml:"options"`
	} `yaml:"formatter"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// loadProjectConfig reads .jsxify/config.yaml from the current directory.
// A missing file yields the zero config, not an error.
func loadProjectConfig() (*ProjectConfig, error) {
	var cfg ProjectConfig
	data, err := os.ReadFile(".jsxify/config.yaml")
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// converterConfig maps file values onto converter defaults.
func (pc *ProjectConfig) converterConfig() converter.Config {
	cfg := converter.DefaultConfig()
	if pc.Output != "" {
		cfg.OutputDir = pc.Output
	}
	if pc.MinChildren > 0 {
		cfg.MinChildren = pc.MinChildren
	}
	if pc.MinInstances > 0 {
		cfg.MinInstances = pc.MinInstances
	}
	if len(pc.LayoutIdentifiers) > 0 {
		cfg.LayoutIdentifiers = pc.LayoutIdentifiers
	}
	cfg.SelfClosing = pc.SelfClosing
	cfg.TypeScript = pc.TypeScript
	cfg.Verify = pc.Verify
	cfg.FormatCommand = pc.Formatter.Command
	cfg.FormatArgs = pc.Formatter.Options
	return cfg
}

func (pc *ProjectConfig) logLevel() util.LogLevel {
	if pc.Log.Level == "" {
		return util.LevelInfo
	}
	return util.LogLevel(pc.Log.Level)
}

func (pc *ProjectConfig) logFormat() util.LogFormat {
	if pc.Log.Format == "" {
		return util.FormatText
	}
	return util.LogFormat(pc.Log.Format)
}
