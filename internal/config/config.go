package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type CommissionConfig struct {
	Env            string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	GRPCServer     `yaml:"grpc_server"`
	CommissionDB   `yaml:"commission_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	MailService    `yaml:"mail-service"`
	CommissionRule `yaml:"commission"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type CommissionDB struct {
	Dsn            string `yaml:"dsn" env:"COMMISSION_DB_DSN" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"COMMISSION_MIGRATIONS_PATH" env-default:"migrations"`
	// AutoMigrate uses gorm AutoMigrate instead of the SQL migrations.
	AutoMigrate bool `yaml:"auto_migrate" env:"COMMISSION_DB_AUTO_MIGRATE" env-default:"false"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type KafkaService struct {
	Enabled       bool   `yaml:"enabled" env:"KAFKA_ENABLED"`
	Host          string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port          string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	LeadTopic     string `yaml:"lead_topic" env-default:"lead-purchased"`
	EventsTopic   string `yaml:"events_topic" env-default:"commission-events"`
	AlertsTopic   string `yaml:"alerts_topic" env-default:"commission-alerts"`
	ConsumerGroup string `yaml:"consumer_group" env-default:"commission-service"`
	// RetryBackoff is the first pause before resubscribing after a reader
	// failure; it doubles up to MaxBackoff.
	RetryBackoff time.Duration `yaml:"retry_backoff" env-default:"1s"`
	MaxBackoff   time.Duration `yaml:"max_backoff" env-default:"30s"`
}

func (k KafkaService) Brokers() []string {
	return []string{fmt.Sprintf("%s:%s", k.Host, k.Port)}
}

type MailService struct {
	SMTPHost   string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort   int    `yaml:"smtp_port" env:"SMTP_PORT" env-default:"2525"`
	SMTPUser   string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass   string `yaml:"smtp_pass" env:"SMTP_PASS"`
	From       string `yaml:"from" env:"SMTP_FROM"`
	AdminEmail string `yaml:"admin_email" env:"ADMIN_ALERT_EMAIL"`
}

// Enabled reports whether alert e-mails can be sent at all.
func (m MailService) Enabled() bool {
	return m.SMTPHost != "" && m.AdminEmail != ""
}

type CommissionRule struct {
	Rate            string        `yaml:"rate" env:"COMMISSION_RATE" env-default:"0.033"`
	GracePeriodDays int           `yaml:"grace_period_days" env-default:"7"`
	Timezone        string        `yaml:"timezone" env:"COMMISSION_TIMEZONE" env-default:"UTC"`
	HQAdminEmail    string        `yaml:"hq_admin_email" env:"HQ_ADMIN_EMAIL" env-default:"hq@cruise.local"`
	HQAdminName     string        `yaml:"hq_admin_name" env-default:"Head Office"`
	Retry           RetryConfig   `yaml:"retry"`
	AlertTimeout    time.Duration `yaml:"alert_timeout" env-default:"10s"`
}

type RetryConfig struct {
	Enabled   bool          `yaml:"enabled" env:"COMMISSION_RETRY_ENABLED" env-default:"false"`
	Interval  time.Duration `yaml:"interval" env-default:"5m"`
	BatchSize int           `yaml:"batch_size" env-default:"50"`
}

// Location resolves the timezone used for grace-period day boundaries.
func (c CommissionRule) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads the YAML file at path, applying env overrides and defaults.
func Load(path string) (*CommissionConfig, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	var cfg CommissionConfig
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if _, err := cfg.CommissionRule.Location(); err != nil {
		return nil, fmt.Errorf("invalid commission timezone %q: %w", cfg.CommissionRule.Timezone, err)
	}

	return &cfg, nil
}

func MustLoad() *CommissionConfig {
	configPath := os.Getenv("COMMISSION_CONFIG_PATH")
	if configPath == "" {
		log.Fatalf("COMMISSION_CONFIG_PATH was not found\n")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	return cfg
}
