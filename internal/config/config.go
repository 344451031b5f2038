package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"h2resconv/internal/errors"
)

// Config is the complete converter configuration. Precedence, lowest
// to highest: built-in defaults, the YAML config file, the legacy
// environment names of the original pipeline, H2RES_* environment
// variables.
type Config struct {
	Source  SourceConfig  `yaml:"source" envconfig:"SOURCE"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Run     RunConfig     `yaml:"run" envconfig:"RUN"`
}

// SourceConfig locates the input datasets.
type SourceConfig struct {
	// ResourceDir holds the clustered network exports (CSV and NetCDF).
	ResourceDir string `yaml:"resource_dir" envconfig:"RESOURCE_DIR" validate:"required"`
	// DataDir holds the hand-maintained spreadsheet datasets.
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	// Clusters is the cluster-count suffix baked into resource file names.
	Clusters string `yaml:"clusters" envconfig:"CLUSTERS" validate:"required"`
}

// ExportConfig locates the output documents.
type ExportConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// RunConfig controls conversion execution.
type RunConfig struct {
	Concurrency int `yaml:"concurrency" envconfig:"CONCURRENCY" validate:"min=1"`
}

// defaultConfig returns the built-in defaults. The resource and export
// directories default to the paths the pipeline has historically run
// with; real deployments override them.
func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			ResourceDir: "/content/drive/MyDrive/pypsa-eur/resources",
			DataDir:     "data",
			Clusters:    "128",
		},
		Export: ExportConfig{
			Dir: "/content/h2res_export_folder",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/h2resconv.log",
		},
		Run: RunConfig{
			Concurrency: 4,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at
// configFile (or ./config.yaml when empty; a missing file is fine),
// then legacy environment names, then H2RES_* environment variables.
// A .env file in the working directory is honored before environment
// lookup.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	path := configFile
	if path == "" {
		path = os.Getenv("H2RES_CONFIG")
	}
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.NewConfigError("failed to parse config file", err).
				WithContext("path", path)
		}
	} else if configFile != "" {
		// an explicitly named file must exist
		return nil, errors.NewConfigError("failed to read config file", err).
			WithContext("path", configFile)
	}

	applyLegacyEnv(&cfg)

	if err := envconfig.Process("H2RES", &cfg); err != nil {
		return nil, errors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyLegacyEnv honors the environment names the original pipeline
// used before the H2RES_* scheme existed.
func applyLegacyEnv(cfg *Config) {
	if v := os.Getenv("DRIVE_PREFIX"); v != "" {
		cfg.Source.ResourceDir = v
	}
	if v := os.Getenv("CLUSTERS_SUFFIX"); v != "" {
		cfg.Source.Clusters = v
	}
	if v := os.Getenv("H2RES_EXPORT_FOLDER"); v != "" {
		cfg.Export.Dir = v
	}
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.NewConfigError("invalid configuration", err)
	}
	return nil
}
