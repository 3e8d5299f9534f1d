package app

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnvToConfig populates unset fields of cfg from GRIDCHECK_* environment
// variables. Explicit cfg values take precedence over env, so flags parsed
// before this call always win.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.InputPath == "" {
		cfg.InputPath = os.Getenv("GRIDCHECK_INPUT")
	}
	if cfg.TableID == "" || cfg.TableID == DefaultTableID {
		if v := os.Getenv("GRIDCHECK_TABLE_ID"); v != "" {
			cfg.TableID = v
		}
	}
	if cfg.SourceLabel == "" || cfg.SourceLabel == DefaultSourceLabel {
		if v := os.Getenv("GRIDCHECK_SOURCE_LABEL"); v != "" {
			cfg.SourceLabel = v
		}
	}
	if cfg.SampleCount == 0 || cfg.SampleCount == DefaultSampleCount {
		if s := strings.TrimSpace(os.Getenv("GRIDCHECK_SAMPLES")); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n >= 0 {
				cfg.SampleCount = n
			}
		}
	}

	if cfg.OutputPath == "" {
		cfg.OutputPath = os.Getenv("GRIDCHECK_OUTPUT")
	}
	if cfg.PDFPath == "" {
		cfg.PDFPath = os.Getenv("GRIDCHECK_OUTPUT_PDF")
	}
	if cfg.RecordsPath == "" {
		cfg.RecordsPath = os.Getenv("GRIDCHECK_RECORDS")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("GRIDCHECK_LOG_FILE")
	}

	// Booleans
	setBool := func(dst *bool, envKey string) {
		if *dst {
			return
		}
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			if s == "1" || s == "true" || s == "yes" || s == "on" {
				*dst = true
			}
		}
	}
	setBool(&cfg.InspectOnly, "GRIDCHECK_INSPECT")
	setBool(&cfg.Verbose, "GRIDCHECK_VERBOSE")
}
