// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	API       APIConfig       `mapstructure:"api"`
	GenAI     GenAIConfig     `mapstructure:"genai"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	DevServer DevServerConfig `mapstructure:"devserver"`
	Redis     RedisConfig     `mapstructure:"redis"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig points the client at the dashboard backend.
type APIConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	Timeout           int    `mapstructure:"timeout"` // milliseconds, 0 = no timeout
	SessionCookieName string `mapstructure:"session_cookie_name"`
	SessionCookie     string `mapstructure:"session_cookie"`
}

// GenAIConfig configures the text-generation collaborator.
type GenAIConfig struct {
	APIKey            string `mapstructure:"api_key"`
	Model             string `mapstructure:"model"`
	BaseURL           string `mapstructure:"base_url"`
	Timeout           int    `mapstructure:"timeout"` // milliseconds
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// DevServerConfig configures the local backend used for development and demos.
type DevServerConfig struct {
	Addr         string `mapstructure:"addr"`
	FixturesPath string `mapstructure:"fixtures_path"`
	SessionTTL   int    `mapstructure:"session_ttl"` // milliseconds
	DemoUser     struct {
		Name  string `mapstructure:"name"`
		Email string `mapstructure:"email"`
		Photo string `mapstructure:"photo"`
	} `mapstructure:"demo_user"`
}

// RedisConfig is used by the dev server session store. An empty address means
// an embedded in-process redis.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
