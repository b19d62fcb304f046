package configfinder

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// Environment variables that override licbom.yaml.
const (
	EnvCorpus        = "LICBOM_CORPUS"
	EnvWorkers       = "LICBOM_WORKERS"
	EnvMinConfidence = "LICBOM_MIN_CONFIDENCE"
)

// LoadConfig loads licbom.yaml from the project root and applies defaults.
func LoadConfig(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	path := filepath.Join(root, ConfigFile)
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &domain.OpError{
			Op:   "configfinder.loadconfig",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{
			Op:   "configfinder.loadconfig",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	// Apply parsed values on top of defaults.
	if y.Licbom.Accepted != nil {
		cfg.Accepted = y.Licbom.Accepted
	}
	if y.Licbom.Exclude != nil {
		cfg.Exclude = y.Licbom.Exclude
	}
	if y.Licbom.Workers != nil {
		cfg.Workers = *y.Licbom.Workers
	}
	if y.Licbom.Corpus.Path != "" {
		cfg.Corpus.Path = y.Licbom.Corpus.Path
	}
	if y.Licbom.Corpus.MinConfidence != nil {
		cfg.Corpus.MinConfidence = *y.Licbom.Corpus.MinConfidence
	}
	if y.Licbom.Corpus.CacheSize != nil {
		cfg.Corpus.CacheSize = *y.Licbom.Corpus.CacheSize
	}
	if y.Licbom.ThirdParty.MetadataPath != "" {
		cfg.ThirdParty.MetadataPath = y.Licbom.ThirdParty.MetadataPath
	}

	// Relative corpus paths are relative to the config file.
	if cfg.Corpus.Path != "" && !filepath.IsAbs(cfg.Corpus.Path) {
		cfg.Corpus.Path = filepath.Join(root, cfg.Corpus.Path)
	}

	return cfg, nil
}

// ApplyEnv loads root/.env when present, without overriding variables that
// are already set, and then applies the LICBOM_* overrides to cfg.
func ApplyEnv(cfg domain.Config, root string) (domain.Config, error) {
	if root != "" {
		envFile := filepath.Join(root, ".env")
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return cfg, &domain.OpError{
					Op:   "configfinder.dotenv",
					Kind: domain.KindInvalidConfig,
					Path: envFile,
					Err:  err,
				}
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvCorpus)); v != "" {
		cfg.Corpus.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, envError(EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvMinConfidence)); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, envError(EnvMinConfidence, err)
		}
		cfg.Corpus.MinConfidence = f
	}
	return cfg, nil
}

// Validate checks the fully merged configuration.
func Validate(cfg domain.Config) error {
	var problems []string

	for _, id := range cfg.Accepted {
		if _, err := spdx.ParseRequirement(strings.TrimSpace(id)); err != nil {
			problems = append(problems, fmt.Sprintf("accepted: %v", err))
		}
	}
	for _, pattern := range cfg.Exclude {
		if _, err := doublestar.Match(pattern, "x"); err != nil {
			problems = append(problems, fmt.Sprintf("exclude: invalid glob %q: %v", pattern, err))
		}
	}
	if cfg.Workers < 1 {
		problems = append(problems, fmt.Sprintf("workers: must be at least 1, got %d", cfg.Workers))
	}
	if cfg.Corpus.MinConfidence < 0 || cfg.Corpus.MinConfidence > 1 {
		problems = append(problems, fmt.Sprintf("corpus.min_confidence: must be within [0,1], got %g", cfg.Corpus.MinConfidence))
	}
	if cfg.Corpus.CacheSize < 0 {
		problems = append(problems, fmt.Sprintf("corpus.cache_size: must not be negative, got %d", cfg.Corpus.CacheSize))
	}
	if strings.TrimSpace(cfg.ThirdParty.MetadataPath) == "" {
		problems = append(problems, "thirdparty.metadata_path: must not be empty")
	}

	if len(problems) == 0 {
		return nil
	}
	return &domain.OpError{
		Op:   "configfinder.validate",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: %s", domain.ErrInvalidConfig, strings.Join(problems, "; ")),
	}
}

func envError(name string, err error) error {
	return &domain.OpError{
		Op:   "configfinder.env",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, name, err),
	}
}

type yamlConfig struct {
	Licbom struct {
		Accepted []string `yaml:"accepted"`
		Exclude  []string `yaml:"exclude"`
		Workers  *int     `yaml:"workers"`

		Corpus struct {
			Path          string   `yaml:"path"`
			MinConfidence *float64 `yaml:"min_confidence"`
			CacheSize     *int     `yaml:"cache_size"`
		} `yaml:"corpus"`

		ThirdParty struct {
			MetadataPath string `yaml:"metadata_path"`
		} `yaml:"thirdparty"`
	} `yaml:"licbom"`
}
