package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Search   SearchConfig   `yaml:"search" mapstructure:"search"`
	Classify ClassifyConfig `yaml:"classify" mapstructure:"classify"`
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the frozen reference data shipped with the tool.
type DataConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	MarkerHMM    string `yaml:"marker_hmm" mapstructure:"marker_hmm"`
	UniversalHMM string `yaml:"universal_hmm" mapstructure:"universal_hmm"`
	ModelFile    string `yaml:"model_file" mapstructure:"model_file"`
	Annotations  string `yaml:"annotations" mapstructure:"annotations"`
}

// SearchConfig configures the external homology-search invocation.
type SearchConfig struct {
	HmmsearchPath string  `yaml:"hmmsearch_path" mapstructure:"hmmsearch_path"`
	Workers       int     `yaml:"workers" mapstructure:"workers"`
	EValue        float64 `yaml:"evalue" mapstructure:"evalue"`
}

// ClassifyConfig configures scoring thresholds and attribution filtering.
// Defaults are the published constants; changing them changes the meaning
// of the summary columns.
type ClassifyConfig struct {
	MidThreshold  float64 `yaml:"mid_threshold" mapstructure:"mid_threshold"`
	HighThreshold float64 `yaml:"high_threshold" mapstructure:"high_threshold"`
	NoiseFloor    float64 `yaml:"noise_floor" mapstructure:"noise_floor"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SYMCLA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.marker_hmm", "markers.hmm")
	v.SetDefault("data.universal_hmm", "universal.hmm")
	v.SetDefault("data.model_file", "model.yaml")
	v.SetDefault("data.annotations", "annotations.tsv")
	v.SetDefault("search.hmmsearch_path", "hmmsearch")
	v.SetDefault("search.workers", 2)
	v.SetDefault("search.evalue", 10.0)
	v.SetDefault("classify.mid_threshold", 20.0)
	v.SetDefault("classify.high_threshold", 100.0)
	v.SetDefault("classify.noise_floor", 0.01)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
