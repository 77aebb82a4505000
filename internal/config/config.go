package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/soaringjerry/Survey/internal/utils"
)

// EnvPrefix namespaces every environment override, e.g. SURVEY_ADDR.
const EnvPrefix = "SURVEY"

type Config struct {
	Addr           string   `json:"addr"`
	JWTSecret      string   `json:"jwt_secret"`
	TokenTTLHours  int      `json:"token_ttl_hours"`
	OTPCode        string   `json:"otp_code"`
	LogLevel       string   `json:"log_level"`
	LogDevelopment bool     `json:"log_development"`
	CORSOrigins    []string `json:"cors_origins"`
	ReportTitle    string   `json:"report_title"`
	Commit         string   `json:"commit"`
	BuildTime      string   `json:"build_time"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

var defaults = map[string]any{
	"addr":            ":8080",
	"jwt_secret":      "survey-dev-secret",
	"token_ttl_hours": 24,
	"otp_code":        "000000",
	"log_level":       "info",
	"log_development": false,
	"cors_origins":    []string{"*"},
	"report_title":    "Personality Assessment Results",
	"commit":          "",
	"build_time":      "",
}

// Path resolves the optional YAML config file from SURVEY_CONFIG.
func Path() string {
	return utils.SafeEnv(EnvPrefix+"_CONFIG", "")
}

// Load reads .env (if present), then the YAML file at path (if non-empty),
// then SURVEY_* environment overrides, in increasing precedence.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("config decoder: %w", err)
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("configuration is nil")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr is required")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("token_ttl_hours must be positive, got %d", c.TokenTTLHours)
	}
	if len(c.OTPCode) != 6 || strings.Trim(c.OTPCode, "0123456789") != "" {
		return errors.New("otp_code must be six digits")
	}
	return nil
}
