package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// LLM provider names accepted in llm.provider.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigin   string        `mapstructure:"cors_origin"`
}

// DatabaseConfig holds sqlite configuration.
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// LLMConfig holds language-model oracle configuration. Provider selects the
// backend: a local Ollama server or the OpenAI API.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// UploadConfig holds upload handling configuration.
type UploadConfig struct {
	Dir        string `mapstructure:"dir"`
	MaxSizeMB  int64  `mapstructure:"max_size_mb"`
	ResumesDir string `mapstructure:"resumes_dir"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from a .env file (if present), the config file and
// environment variables, in increasing order of precedence.
func Load(configPath string) (*Config, error) {
	_ = gotenv.Load()

	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.cors_origin", "http://localhost:5173")

	viper.SetDefault("database.path", "data/portal.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("llm.provider", ProviderOllama)
	viper.SetDefault("llm.base_url", "http://localhost:11434")
	viper.SetDefault("llm.model", "llama3")
	viper.SetDefault("llm.temperature", 0.3)
	viper.SetDefault("llm.timeout", 120*time.Second)

	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.resumes_dir", "uploads/resumes")
	viper.SetDefault("upload.max_size_mb", 20)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

func bindEnvVars() {
	// Secrets always come from the environment.
	viper.BindEnv("llm.api_key", "OPENAI_API_KEY")
	viper.BindEnv("llm.base_url", "OLLAMA_BASE_URL")
	viper.BindEnv("llm.model", "LLM_MODEL")
}

// Validate checks the configuration for values the server cannot start
// without.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOllama:
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("llm.base_url is required for the ollama provider")
		}
	case ProviderOpenAI:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown llm.provider: %s", c.LLM.Provider)
	}

	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.Upload.Dir == "" {
		return fmt.Errorf("upload.dir is required")
	}

	return nil
}
