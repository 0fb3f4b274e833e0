package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Scheduling assistant specifics
	Gemini         GeminiConfig
	Assist         AssistConfig
	Scheduler      SchedulerConfig
	TaskService    TaskServiceConfig
	GoogleCalendar GoogleCalendarConfig
	RateLimit      RateLimitConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// GeminiConfig configures the generative model client.
type GeminiConfig struct {
	APIKey string
	Model  string
	APIURL string
}

// AssistConfig configures the generative assist adapter.
type AssistConfig struct {
	Enabled       bool
	Timeout       time.Duration
	RetryAttempts int
	HistoryLimit  int
}

// SchedulerConfig configures default-slot computation and date resolution.
type SchedulerConfig struct {
	Timezone               string
	WeekdayDefaultHour     int
	WeekendDefaultHour     int
	DefaultDurationMinutes int
}

// TaskServiceConfig configures the external task-creation service.
type TaskServiceConfig struct {
	URL         string
	AccessToken string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	CalendarID      string
}

// RateLimitConfig configures the chat endpoint token bucket.
type RateLimitConfig struct {
	RequestsPerMin int
	Burst          int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Generative model
	cfg.Gemini.APIKey = viper.GetString("gemini.api_key")
	cfg.Gemini.Model = viper.GetString("gemini.model")
	cfg.Gemini.APIURL = viper.GetString("gemini.api_url")
	if key := viper.GetString("gemini_api_key"); key != "" {
		cfg.Gemini.APIKey = key
	}

	// Assist adapter
	cfg.Assist.Enabled = viper.GetBool("assist.enabled")
	cfg.Assist.Timeout = viper.GetDuration("assist.timeout")
	cfg.Assist.RetryAttempts = viper.GetInt("assist.retry_attempts")
	cfg.Assist.HistoryLimit = viper.GetInt("assist.history_limit")

	// Scheduler defaults
	cfg.Scheduler.Timezone = viper.GetString("scheduler.timezone")
	cfg.Scheduler.WeekdayDefaultHour = viper.GetInt("scheduler.weekday_default_hour")
	cfg.Scheduler.WeekendDefaultHour = viper.GetInt("scheduler.weekend_default_hour")
	cfg.Scheduler.DefaultDurationMinutes = viper.GetInt("scheduler.default_duration_minutes")

	// External task service
	cfg.TaskService.URL = viper.GetString("task_service.url")
	cfg.TaskService.AccessToken = viper.GetString("task_service.access_token")
	if taskURL := viper.GetString("task_service_url"); taskURL != "" {
		cfg.TaskService.URL = taskURL
	}
	if taskToken := viper.GetString("task_service_access_token"); taskToken != "" {
		cfg.TaskService.AccessToken = taskToken
	}

	// Google Calendar mirroring (optional)
	cfg.GoogleCalendar.CredentialsPath = viper.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.CalendarID = viper.GetString("google_calendar.calendar_id")
	if googleCreds := viper.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Rate limit
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")

	if cfg.TaskService.URL == "" {
		return nil, fmt.Errorf("task_service.url is required")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("gemini.model", "gemini-2.5-flash")

	viper.SetDefault("assist.enabled", true)
	viper.SetDefault("assist.timeout", "10s")
	viper.SetDefault("assist.retry_attempts", 3)
	viper.SetDefault("assist.history_limit", 10)

	viper.SetDefault("scheduler.timezone", "Local")
	viper.SetDefault("scheduler.weekday_default_hour", 16)
	viper.SetDefault("scheduler.weekend_default_hour", 10)
	viper.SetDefault("scheduler.default_duration_minutes", 60)

	viper.SetDefault("rate_limit.requests_per_min", 60)
	viper.SetDefault("rate_limit.burst", 10)
}
