// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top
// and applies .env values, defaults and validation.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return finalize(v, env)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v, os.Getenv("APP_ENVIRONMENT"))
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finalize(v *viper.Viper, env string) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() string {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills credentials that the YAML left blank from the environment.
func overrideEmptyConfig(cfg *Config) {
	for _, pg := range []*PostgresConfig{&cfg.Database.Help, &cfg.Database.Support, &cfg.Database.MailingList} {
		if pg.User == "" {
			pg.User = os.Getenv("DB_USER")
		}
		if pg.Password == "" {
			pg.Password = os.Getenv("DB_PASSWORD")
		}
		if pg.Host == "" {
			pg.Host = os.Getenv("DB_HOST")
		}
	}

	if cfg.Client.BaseURL == "" {
		if val := os.Getenv("FORMS_BASE_URL"); val != "" {
			cfg.Client.BaseURL = val
		}
	}
	if cfg.Notifications.AWS.Region == "" {
		cfg.Notifications.AWS.Region = os.Getenv("AWS_REGION")
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "cac-forms"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	for _, pg := range []*PostgresConfig{&cfg.Database.Help, &cfg.Database.Support, &cfg.Database.MailingList} {
		if pg.Port == 0 {
			pg.Port = 5432
		}
		if pg.MaxConnections == 0 {
			pg.MaxConnections = 10
		}
		if pg.MaxIdle == 0 {
			pg.MaxIdle = 2
		}
		if pg.SSLMode == "" {
			pg.SSLMode = "disable"
		}
	}

	if cfg.Client.BaseURL == "" {
		cfg.Client.BaseURL = "http://localhost:8080"
	}
	if cfg.Client.Timeout == 0 {
		cfg.Client.Timeout = 10000
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	stores := []struct {
		name string
		pg   PostgresConfig
	}{
		{"help", cfg.Database.Help},
		{"support", cfg.Database.Support},
		{"mailing_list", cfg.Database.MailingList},
	}
	for _, s := range stores {
		if s.pg.Host == "" {
			return fmt.Errorf("database.%s.host is required", s.name)
		}
		if s.pg.Database == "" {
			return fmt.Errorf("database.%s.database is required", s.name)
		}
		if s.pg.User == "" {
			return fmt.Errorf("database.%s.user is required", s.name)
		}
	}

	if cfg.Client.OfflineMode && cfg.App.IsProduction() {
		return fmt.Errorf("client.offline_mode cannot be enabled in production")
	}

	if cfg.Notifications.Email.Enabled {
		if cfg.Notifications.Email.FromEmail == "" || cfg.Notifications.Email.StaffEmail == "" {
			return fmt.Errorf("notifications.email requires from_email and staff_email")
		}
	}
	if cfg.Notifications.SMS.Enabled && cfg.Notifications.SMS.StaffPhone == "" {
		return fmt.Errorf("notifications.sms.staff_phone is required")
	}
	if cfg.Notifications.Enabled() && cfg.Notifications.AWS.Region == "" {
		return fmt.Errorf("notifications.aws.region is required when alerts are enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
