package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultQuizEndpoint is the quiz API the web client talks to unless overridden.
const DefaultQuizEndpoint = "https://backend-75096019526.europe-central2.run.app/api/quiz"

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	QuizAPI    QuizAPIConfig
	Redis      RedisConfig
	Navigation NavigationConfig
	Tracing    TracingConfig
	StubAPI    StubAPIConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// QuizAPIConfig describes the remote quiz endpoint. A zero Timeout means the
// request waits as long as the transport allows.
type QuizAPIConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// RedisConfig is optional; an empty Address keeps navigation state in process.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type NavigationConfig struct {
	StateTTL   time.Duration
	CookieName string
}

// TracingConfig enables OTLP export when Endpoint is set.
type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

type StubAPIConfig struct {
	Port         int
	ImageBaseURL string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 20*time.Second)
	v.SetDefault("server.write_timeout", 20*time.Second)
	v.SetDefault("server.idle_timeout", 20*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("quiz_api.endpoint", DefaultQuizEndpoint)
	v.SetDefault("quiz_api.timeout", time.Duration(0))
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("navigation.state_ttl", 30*time.Minute)
	v.SetDefault("navigation.cookie_name", "eraquiz_sid")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.service_name", "era-quiz")
	v.SetDefault("stub_api.port", 8081)
	v.SetDefault("stub_api.image_base_url", "https://storage.googleapis.com/ts-eras-quiz-images")
}

// LoadConfig reads config.yaml from the given directories (or "." and
// "./config" when none are given) and applies ERAQUIZ_* environment overrides.
// A missing config file is not an error.
func LoadConfig(configPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(configPaths) == 0 {
		configPaths = []string{".", "./config"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	setDefaults(v)
	v.SetEnvPrefix("ERAQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		QuizAPI: QuizAPIConfig{
			Endpoint: v.GetString("quiz_api.endpoint"),
			Timeout:  v.GetDuration("quiz_api.timeout"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Navigation: NavigationConfig{
			StateTTL:   v.GetDuration("navigation.state_ttl"),
			CookieName: v.GetString("navigation.cookie_name"),
		},
		Tracing: TracingConfig{
			Endpoint:    v.GetString("tracing.endpoint"),
			ServiceName: v.GetString("tracing.service_name"),
		},
		StubAPI: StubAPIConfig{
			Port:         v.GetInt("stub_api.port"),
			ImageBaseURL: v.GetString("stub_api.image_base_url"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.QuizAPI.Endpoint == "" {
		return fmt.Errorf("quiz_api.endpoint must not be empty")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive, got %d", c.Server.Port)
	}
	if c.Navigation.CookieName == "" {
		return fmt.Errorf("navigation.cookie_name must not be empty")
	}
	if c.Navigation.StateTTL <= 0 {
		return fmt.Errorf("navigation.state_ttl must be positive, got %s", c.Navigation.StateTTL)
	}
	return nil
}
