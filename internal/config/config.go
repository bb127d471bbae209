package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Artifacts ArtifactsConfig
	Logger    LoggerConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// ArtifactsConfig locates the serialized model artifacts on disk. All three
// files must exist at startup.
type ArtifactsConfig struct {
	Dir              string
	PreprocessorFile string
	LogisticFile     string
	XGBoostFile      string
}

func (a ArtifactsConfig) PreprocessorPath() string {
	return filepath.Join(a.Dir, a.PreprocessorFile)
}

func (a ArtifactsConfig) LogisticPath() string {
	return filepath.Join(a.Dir, a.LogisticFile)
}

func (a ArtifactsConfig) XGBoostPath() string {
	return filepath.Join(a.Dir, a.XGBoostFile)
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("ARTIFACTS_DIR", "artifacts")
	v.SetDefault("ARTIFACTS_PREPROCESSOR_FILE", "preprocessor.json")
	v.SetDefault("ARTIFACTS_LOGISTIC_FILE", "logistic_model.json")
	v.SetDefault("ARTIFACTS_XGB_FILE", "xgb_model.json")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Artifacts: ArtifactsConfig{
			Dir:              v.GetString("ARTIFACTS_DIR"),
			PreprocessorFile: v.GetString("ARTIFACTS_PREPROCESSOR_FILE"),
			LogisticFile:     v.GetString("ARTIFACTS_LOGISTIC_FILE"),
			XGBoostFile:      v.GetString("ARTIFACTS_XGB_FILE"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}
