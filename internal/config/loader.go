package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"focuslog/internal/platform"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables that override the YAML file.
const EnvPrefix = "FOCUSLOG_"

// sections are the nested keys; any other variable maps to a top-level key.
var sections = []string{"logging", "timer"}

// Load reads configuration with precedence env > YAML file > defaults.
// An empty configPath means <user config dir>/FocusLog/config.yaml; a missing
// file is not an error.
//
//	FOCUSLOG_DATA_DIR          -> data_dir
//	FOCUSLOG_LOGGING_LEVEL     -> logging.level
//	FOCUSLOG_TIMER_WORK_MINUTES -> timer.work_minutes
func Load(configPath string) (*Config, error) {
	dataDir, err := platform.DataDir(AppName)
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, ConfigFileName)
	}

	k := koanf.New(".")

	content, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	applyDefaults(&cfg, dataDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, section := range sections {
		if field, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + field
		}
	}
	return key
}
