package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Autentique AutentiqueConfig `mapstructure:"autentique"`
	Webhook    WebhookConfig    `mapstructure:"webhook"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CloudinaryConfig holds the blob-store credentials. BaseFolder is the root
// namespace every public_id lives under. Timeouts are configured as integer
// seconds and converted to durations once at load time.
type CloudinaryConfig struct {
	CloudName      string        `mapstructure:"cloud_name"`
	APIKey         string        `mapstructure:"api_key"`
	APISecret      string        `mapstructure:"api_secret"`
	BaseFolder     string        `mapstructure:"base_folder"`
	TimeoutSeconds int           `mapstructure:"timeout"`
	Timeout        time.Duration `mapstructure:"-"`
}

// AutentiqueConfig holds the signing-provider credentials plus the bounded
// polling policy for retrieving the signed artifact after completion.
type AutentiqueConfig struct {
	BaseURL                   string        `mapstructure:"base_url"`
	Token                     string        `mapstructure:"token"`
	FolderID                  string        `mapstructure:"folder_id"`
	CCEmail                   string        `mapstructure:"cc_email"`
	TimeoutSeconds            int           `mapstructure:"timeout"`
	Timeout                   time.Duration `mapstructure:"-"`
	SignedPollAttempts        int           `mapstructure:"signed_poll_attempts"`
	SignedPollIntervalSeconds int           `mapstructure:"signed_poll_interval"`
	SignedPollInterval        time.Duration `mapstructure:"-"`
}

type WebhookConfig struct {
	Secret string `mapstructure:"secret"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func NewConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable override
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("app.name", "automacao-contratos")
	viper.SetDefault("app.port", 8000)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("cloudinary.base_folder", "automacao-contratos")
	viper.SetDefault("cloudinary.timeout", 30)
	viper.SetDefault("autentique.base_url", "https://api.autentique.com.br/v2/graphql")
	viper.SetDefault("autentique.timeout", 30)
	viper.SetDefault("autentique.signed_poll_attempts", 3)
	viper.SetDefault("autentique.signed_poll_interval", 5)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Convert the integer-second settings to durations
	cfg.Cloudinary.Timeout = time.Duration(cfg.Cloudinary.TimeoutSeconds) * time.Second
	cfg.Autentique.Timeout = time.Duration(cfg.Autentique.TimeoutSeconds) * time.Second
	cfg.Autentique.SignedPollInterval = time.Duration(cfg.Autentique.SignedPollIntervalSeconds) * time.Second

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate fails startup when a required credential is absent so missing
// configuration never surfaces as a mid-request error.
func (c *Config) validate() error {
	var missing []string

	if c.Database.Host == "" {
		missing = append(missing, "database.host")
	}
	if c.Database.User == "" {
		missing = append(missing, "database.user")
	}
	if c.Database.DBName == "" {
		missing = append(missing, "database.dbname")
	}
	if c.Cloudinary.CloudName == "" {
		missing = append(missing, "cloudinary.cloud_name")
	}
	if c.Cloudinary.APIKey == "" {
		missing = append(missing, "cloudinary.api_key")
	}
	if c.Cloudinary.APISecret == "" {
		missing = append(missing, "cloudinary.api_secret")
	}
	if c.Autentique.Token == "" {
		missing = append(missing, "autentique.token")
	}
	if c.Autentique.FolderID == "" {
		missing = append(missing, "autentique.folder_id")
	}
	if c.Webhook.Secret == "" {
		missing = append(missing, "webhook.secret")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

var Module = fx.Module("config",
	fx.Provide(NewConfig),
)
