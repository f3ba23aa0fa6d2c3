package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Model     ModelConfig
	Shortlist ShortlistConfig
	Storage   StorageConfig
	Worker    WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type ModelConfig struct {
	APIKey          string
	Name            string
	Temperature     float32
	MaxOutputTokens int32
	RateLimit       float64
	RateBurst       int
}

type ShortlistConfig struct {
	MaxResumes           int
	ScoreThreshold       float64
	FilterBelowThreshold bool
	MaxResumeChars       int
}

type StorageConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency       int
	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	InterpretTimeout  time.Duration
	EvaluateTimeout   time.Duration
	RunTimeout        time.Duration
}

var defaults = map[string]any{
	"PORT":                    "3000",
	"ENV":                     "development",
	"LOG_JSON":                false,
	"LOG_DEBUG":               false,
	"GEMINI_API_KEY":          "",
	"MODEL_NAME":              "gemini-2.5-flash-lite",
	"MODEL_TEMPERATURE":       0.1,
	"MODEL_MAX_OUTPUT_TOKENS": 2048,
	"MODEL_RATE_LIMIT":        2.0,
	"MODEL_RATE_BURST":        2,
	"MAX_RESUMES":             10,
	"SCORE_THRESHOLD":         7.0,
	"FILTER_BELOW_THRESHOLD":  false,
	"MAX_RESUME_CHARS":        20000,
	"MAX_FILE_SIZE":           int64(10485760),
	"WORKER_CONCURRENCY":      3,
	"RETRY_MAX_ATTEMPTS":      3,
	"RETRY_INITIAL_DELAY":     "2s",
	"INTERPRET_TIMEOUT":       "60s",
	"EVALUATE_TIMEOUT":        "60s",
	"RUN_TIMEOUT":             "10m",
}

// Load reads configuration from a .env file (if present), the process
// environment and, when SHORTLISTER_CONFIG names one, a config file.
// Environment variables win over the file.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file that takes the place of
// SHORTLISTER_CONFIG.
func LoadFile(path string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if strings.TrimSpace(path) == "" {
		path = v.GetString("SHORTLISTER_CONFIG")
	}
	if path = strings.TrimSpace(path); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
		Model: ModelConfig{
			APIKey:          strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Name:            v.GetString("MODEL_NAME"),
			Temperature:     float32(v.GetFloat64("MODEL_TEMPERATURE")),
			MaxOutputTokens: v.GetInt32("MODEL_MAX_OUTPUT_TOKENS"),
			RateLimit:       v.GetFloat64("MODEL_RATE_LIMIT"),
			RateBurst:       v.GetInt("MODEL_RATE_BURST"),
		},
		Shortlist: ShortlistConfig{
			MaxResumes:           v.GetInt("MAX_RESUMES"),
			ScoreThreshold:       v.GetFloat64("SCORE_THRESHOLD"),
			FilterBelowThreshold: v.GetBool("FILTER_BELOW_THRESHOLD"),
			MaxResumeChars:       v.GetInt("MAX_RESUME_CHARS"),
		},
		Storage: StorageConfig{
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
		},
		Worker: WorkerConfig{
			Concurrency:       v.GetInt("WORKER_CONCURRENCY"),
			RetryMaxAttempts:  v.GetInt("RETRY_MAX_ATTEMPTS"),
			RetryInitialDelay: v.GetDuration("RETRY_INITIAL_DELAY"),
			InterpretTimeout:  v.GetDuration("INTERPRET_TIMEOUT"),
			EvaluateTimeout:   v.GetDuration("EVALUATE_TIMEOUT"),
			RunTimeout:        v.GetDuration("RUN_TIMEOUT"),
		},
	}
}

// Validate reports startup-time configuration errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Model.APIKey == "" {
		errs = append(errs, errors.New("GEMINI_API_KEY is required"))
	}
	if c.Shortlist.MaxResumes < 1 {
		errs = append(errs, fmt.Errorf("MAX_RESUMES must be at least 1, got %d", c.Shortlist.MaxResumes))
	}
	if c.Shortlist.ScoreThreshold < 0 || c.Shortlist.ScoreThreshold > 10 {
		errs = append(errs, fmt.Errorf("SCORE_THRESHOLD must be within [0, 10], got %.1f", c.Shortlist.ScoreThreshold))
	}
	if c.Worker.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got %d", c.Worker.Concurrency))
	}
	if c.Worker.RetryMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.Worker.RetryMaxAttempts))
	}
	if c.Storage.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", c.Storage.MaxFileSize))
	}

	return errors.Join(errs...)
}

// BodyLimit is the largest multipart request the server accepts.
func (c *Config) BodyLimit() int {
	// One extra file of headroom for the form fields.
	return int(c.Storage.MaxFileSize) * (c.Shortlist.MaxResumes + 1)
}
