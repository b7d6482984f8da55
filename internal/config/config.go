// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variables read by FromEnv
const (
	EnvAccountID       = "ACCOUNT_ID"
	EnvServiceKey      = "SERVICE_KEY"
	EnvTargetDirectory = "TARGET_DIRECTORY"
	EnvAPIURL          = "TX_API_URL"
	EnvLogLevel        = "LOG_LEVEL"
	EnvS3Region        = "AWS_REGION"
	EnvS3Endpoint      = "S3_ENDPOINT"
	EnvS3AccessKey     = "S3_ACCESS_KEY_ID"
	EnvS3SecretKey     = "S3_SECRET_ACCESS_KEY"
)

// Defaults applied when neither flags, config file nor environment set a value
const (
	DefaultOutput         = "resume_data.csv"
	DefaultPattern        = "*.pdf"
	DefaultTimeoutSeconds = 60
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "pretty"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Parsing service
	AccountID      string `json:"account_id,omitempty"`
	ServiceKey     string `json:"service_key,omitempty"`
	APIURL         string `json:"api_url,omitempty" validate:"omitempty,url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"gte=0,lte=600"`

	// Input
	InputDir  string   `json:"input_dir,omitempty"`                        // Directory holding resume documents
	Patterns  []string `json:"patterns,omitempty" validate:"dive,required"` // Glob patterns matched inside InputDir
	Preflight bool     `json:"preflight,omitempty"`                         // Check PDF/DOCX files open before parsing

	// Output
	Output       string `json:"output,omitempty"`        // CSV path or s3://bucket/key
	ResponsesDir string `json:"responses_dir,omitempty"` // Archive raw parser responses here
	Resume       bool   `json:"resume,omitempty"`        // Skip documents already present in Output and append

	// Lookup tables
	AreaCodes string `json:"area_codes,omitempty"` // CSV area-code table overriding the built-in one
	FlagSpec  string `json:"flag_spec,omitempty"`  // YAML skill taxonomy overriding the built-in one

	// S3 export
	S3Region    string `json:"s3_region,omitempty"`
	S3Endpoint  string `json:"s3_endpoint,omitempty" validate:"omitempty,url"`
	S3AccessKey string `json:"s3_access_key,omitempty"`
	S3SecretKey string `json:"s3_secret_key,omitempty" validate:"required_with=S3AccessKey"`

	// Logging
	LogLevel  string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat string `json:"log_format,omitempty" validate:"omitempty,oneof=pretty json"`
	Verbose   bool   `json:"verbose,omitempty"` // Print a summary box after the run
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Output:         DefaultOutput,
		Patterns:       []string{DefaultPattern},
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads the configuration values that may come from the environment
// (including a .env file loaded at startup).
func FromEnv() Config {
	return Config{
		AccountID:  os.Getenv(EnvAccountID),
		ServiceKey: os.Getenv(EnvServiceKey),
		InputDir:   os.Getenv(EnvTargetDirectory),
		APIURL:     os.Getenv(EnvAPIURL),
		LogLevel:   os.Getenv(EnvLogLevel),
		S3Region:   os.Getenv(EnvS3Region),
		S3Endpoint: os.Getenv(EnvS3Endpoint),

		S3AccessKey: os.Getenv(EnvS3AccessKey),
		S3SecretKey: os.Getenv(EnvS3SecretKey),
	}
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for credentials since the offline commands don't need them;
// see RequireCredentials.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %s", describe(err))
	}

	if c.Resume && IsS3(c.Output) {
		return fmt.Errorf("config error: 'resume' cannot append to an S3 destination")
	}

	// Validate file paths exist (if specified)
	if c.AreaCodes != "" {
		if _, err := os.Stat(c.AreaCodes); os.IsNotExist(err) {
			return fmt.Errorf("config error: area code table not found: %s", c.AreaCodes)
		}
	}
	if c.FlagSpec != "" {
		if _, err := os.Stat(c.FlagSpec); os.IsNotExist(err) {
			return fmt.Errorf("config error: flag spec not found: %s", c.FlagSpec)
		}
	}

	return nil
}

// RequireCredentials checks that the parsing service credentials are set.
func (c *Config) RequireCredentials() error {
	validate := validator.New()
	if err := validate.Var(c.AccountID, "required"); err != nil {
		return fmt.Errorf("config error: account ID is required (set %s or 'account_id')", EnvAccountID)
	}
	if err := validate.Var(c.ServiceKey, "required"); err != nil {
		return fmt.Errorf("config error: service key is required (set %s or 'service_key')", EnvServiceKey)
	}
	return nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over the config file over the environment over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fillString(&result.AccountID, defaults.AccountID)
	fillString(&result.ServiceKey, defaults.ServiceKey)
	fillString(&result.APIURL, defaults.APIURL)
	fillString(&result.InputDir, defaults.InputDir)
	fillString(&result.Output, defaults.Output)
	fillString(&result.ResponsesDir, defaults.ResponsesDir)
	fillString(&result.AreaCodes, defaults.AreaCodes)
	fillString(&result.FlagSpec, defaults.FlagSpec)
	fillString(&result.S3Region, defaults.S3Region)
	fillString(&result.S3Endpoint, defaults.S3Endpoint)
	fillString(&result.S3AccessKey, defaults.S3AccessKey)
	fillString(&result.S3SecretKey, defaults.S3SecretKey)
	fillString(&result.LogLevel, defaults.LogLevel)
	fillString(&result.LogFormat, defaults.LogFormat)

	// Int fields: use default if zero
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}

	if len(result.Patterns) == 0 && len(defaults.Patterns) > 0 {
		result.Patterns = append([]string(nil), defaults.Patterns...)
	}

	// Bool fields: true anywhere wins, since unset cannot be told apart from false.
	// Callers that know a value was set explicitly apply it after merging.
	result.Preflight = result.Preflight || defaults.Preflight
	result.Resume = result.Resume || defaults.Resume
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// IsS3 reports whether dest is an s3:// URI.
func IsS3(dest string) bool {
	return strings.HasPrefix(dest, "s3://")
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("'%s' failed '%s'", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
