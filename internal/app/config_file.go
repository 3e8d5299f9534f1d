package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
// Nested sections improve readability and map naturally to flags/env.
type FileConfig struct {
	Input string `yaml:"input" json:"input"`

	Table struct {
		ID string `yaml:"id" json:"id"`
	} `yaml:"table" json:"table"`

	Source  string `yaml:"source" json:"source"`
	Samples int    `yaml:"samples" json:"samples"`

	Output struct {
		Report  string `yaml:"report" json:"report"`
		PDF     string `yaml:"pdf" json:"pdf"`
		Records string `yaml:"records" json:"records"`
	} `yaml:"output" json:"output"`

	Log struct {
		File string `yaml:"file" json:"file"`
	} `yaml:"log" json:"log"`

	Inspect bool `yaml:"inspect" json:"inspect"`
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays values from FileConfig into cfg for any fields that
// are currently unset or still at their flag default. Flags should already
// have been parsed; this lets file config supply defaults while preserving
// explicit flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}

	if cfg.InputPath == "" && fc.Input != "" {
		cfg.InputPath = fc.Input
	}
	if (cfg.TableID == "" || cfg.TableID == DefaultTableID) && fc.Table.ID != "" {
		cfg.TableID = fc.Table.ID
	}
	if (cfg.SourceLabel == "" || cfg.SourceLabel == DefaultSourceLabel) && fc.Source != "" {
		cfg.SourceLabel = fc.Source
	}
	if (cfg.SampleCount == 0 || cfg.SampleCount == DefaultSampleCount) && fc.Samples > 0 {
		cfg.SampleCount = fc.Samples
	}

	if cfg.OutputPath == "" && fc.Output.Report != "" {
		cfg.OutputPath = fc.Output.Report
	}
	if cfg.PDFPath == "" && fc.Output.PDF != "" {
		cfg.PDFPath = fc.Output.PDF
	}
	if cfg.RecordsPath == "" && fc.Output.Records != "" {
		cfg.RecordsPath = fc.Output.Records
	}
	if cfg.LogFile == "" && fc.Log.File != "" {
		cfg.LogFile = fc.Log.File
	}

	if !cfg.InspectOnly && fc.Inspect {
		cfg.InspectOnly = true
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig performs minimal schema validation for required settings.
func ValidateConfig(cfg Config) error {
	if trim(cfg.InputPath) == "" {
		return errors.New("config: input path is required")
	}
	if !cfg.InspectOnly && trim(cfg.TableID) == "" {
		return errors.New("config: table id is required (or set GRIDCHECK_TABLE_ID)")
	}
	if cfg.SampleCount < 0 {
		return errors.New("config: negative sample count is not allowed")
	}
	return nil
}

func trim(s string) string {
	i := 0
	j := len(s)
	for i < j && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	for j > i && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n' || s[j-1] == '\r') {
		j--
	}
	return s[i:j]
}
