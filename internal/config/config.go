package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Storage    StorageConfig    `validate:"required"`
	Postgres   PostgresConfig
	Cache      CacheConfig      `validate:"required"`
	Event      EventConfig      `validate:"required"`
	Kafka      KafkaConfig
	Router     RouterConfig
	Ledger     LedgerConfig     `validate:"required"`
	Redemption RedemptionConfig `validate:"required"`
	Tier       TierConfig
	Scheduler  SchedulerConfig
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Seed       SeedConfig
	Sentry     SentryConfig
	Pyroscope  PyroscopeConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `mapstructure:"mode" validate:"required"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" validate:"required"`

	// AllowedOrigins feeds CORS. Empty or "*" allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Level types.LogLevel `mapstructure:"level" validate:"required"`
}

// AuthConfig holds the settings used to verify bearer tokens issued by the
// bank identity service. Token issuance lives outside this service.
type AuthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Secret  string `mapstructure:"secret" validate:"required_if=Enabled true"`
	Issuer  string `mapstructure:"issuer"`
}

type StorageConfig struct {
	Provider types.StorageProvider `mapstructure:"provider" validate:"required,oneof=memory postgres"`
}

type PostgresConfig struct {
	Host                   string `mapstructure:"host"`
	Port                   int    `mapstructure:"port"`
	User                   string `mapstructure:"user"`
	Password               string `mapstructure:"password"`
	DBName                 string `mapstructure:"dbname"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
	ConnectRetries         uint64 `mapstructure:"connect_retries"`
}

type CacheConfig struct {
	Provider      types.CacheProvider `mapstructure:"provider" validate:"required,oneof=memory redis"`
	TTL           time.Duration       `mapstructure:"ttl"`
	RedisAddress  string              `mapstructure:"redis_address"`
	RedisPassword string              `mapstructure:"redis_password"`
	RedisDB       int                 `mapstructure:"redis_db"`
}

// EventConfig holds configuration for loyalty event publishing
type EventConfig struct {
	Enabled bool             `mapstructure:"enabled"`
	PubSub  types.PubSubType `mapstructure:"pubsub" validate:"required,oneof=memory kafka"`
	Topic   string           `mapstructure:"topic" validate:"required"`
}

type KafkaConfig struct {
	Brokers       []string `mapstructure:"brokers"`
	ConsumerGroup string   `mapstructure:"consumer_group"`
	ClientID      string   `mapstructure:"client_id"`
	TLS           bool     `mapstructure:"tls"`
	UseSASL       bool     `mapstructure:"use_sasl"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}

// RouterConfig tunes retries of the event consumer
type RouterConfig struct {
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64       `mapstructure:"multiplier"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

type LedgerConfig struct {
	Currency            string `mapstructure:"currency" validate:"required"`
	DefaultHistoryLimit int    `mapstructure:"default_history_limit" validate:"gt=0"`
}

type RedemptionConfig struct {
	VoucherPrefix         string `mapstructure:"voucher_prefix" validate:"required"`
	VoucherValidityMonths int    `mapstructure:"voucher_validity_months" validate:"gt=0"`
}

type TierConfig struct {
	// AutoPromote re-derives the tier assignment from total points after
	// every earn. Off by default: assignments are maintained explicitly.
	AutoPromote bool `mapstructure:"auto_promote"`
}

type SchedulerConfig struct {
	Enabled                bool          `mapstructure:"enabled"`
	CampaignStatusInterval time.Duration `mapstructure:"campaign_status_interval"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type PyroscopeConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	ServerAddress   string   `mapstructure:"server_address"`
	ApplicationName string   `mapstructure:"application_name"`
	BasicAuthUser   string   `mapstructure:"basic_auth_user"`
	BasicAuthPass   string   `mapstructure:"basic_auth_password"`
	ProfileTypes    []string `mapstructure:"profile_types"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional and only used for local development
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/loyalty")

	v.SetEnvPrefix("LOYALTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("deployment.mode", d.Deployment.Mode)
	v.SetDefault("server.address", d.Server.Address)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("auth.enabled", d.Auth.Enabled)
	v.SetDefault("storage.provider", d.Storage.Provider)
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 10)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime_minutes", 60)
	v.SetDefault("postgres.connect_retries", 5)
	v.SetDefault("cache.provider", d.Cache.Provider)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("event.enabled", d.Event.Enabled)
	v.SetDefault("event.pubsub", d.Event.PubSub)
	v.SetDefault("event.topic", d.Event.Topic)
	v.SetDefault("router.max_retries", d.Router.MaxRetries)
	v.SetDefault("router.initial_interval", d.Router.InitialInterval)
	v.SetDefault("router.max_interval", d.Router.MaxInterval)
	v.SetDefault("router.multiplier", d.Router.Multiplier)
	v.SetDefault("router.max_elapsed_time", d.Router.MaxElapsedTime)
	v.SetDefault("ledger.currency", d.Ledger.Currency)
	v.SetDefault("ledger.default_history_limit", d.Ledger.DefaultHistoryLimit)
	v.SetDefault("redemption.voucher_prefix", d.Redemption.VoucherPrefix)
	v.SetDefault("redemption.voucher_validity_months", d.Redemption.VoucherValidityMonths)
	v.SetDefault("scheduler.enabled", d.Scheduler.Enabled)
	v.SetDefault("scheduler.campaign_status_interval", d.Scheduler.CampaignStatusInterval)
	v.SetDefault("rate_limit.rps", d.RateLimit.RPS)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
	v.SetDefault("seed.enabled", d.Seed.Enabled)
	v.SetDefault("pyroscope.application_name", "loyalty")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Storage.Provider == types.StoragePostgres && c.Postgres.Host == "" {
		return errors.New("postgres.host is required when storage.provider is postgres")
	}
	if err := c.Event.PubSub.Validate(); err != nil {
		return err
	}
	if c.Event.PubSub == types.KafkaPubSub && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka.brokers is required when event.pubsub is kafka")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development.
// It is also what tests and scripts run with.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth:       AuthConfig{Enabled: false},
		Storage:    StorageConfig{Provider: types.StorageMemory},
		Cache:      CacheConfig{Provider: types.CacheMemory, TTL: 10 * time.Minute},
		Event: EventConfig{
			Enabled: true,
			PubSub:  types.MemoryPubSub,
			Topic:   "loyalty_events",
		},
		Router: RouterConfig{
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     10 * time.Second,
			Multiplier:      2,
			MaxElapsedTime:  time.Minute,
		},
		Ledger: LedgerConfig{
			Currency:            types.DefaultCurrency,
			DefaultHistoryLimit: types.DefaultHistoryLimit,
		},
		Redemption: RedemptionConfig{
			VoucherPrefix:         types.SHORT_ID_PREFIX_VOUCHER,
			VoucherValidityMonths: 6,
		},
		Scheduler: SchedulerConfig{
			Enabled:                true,
			CampaignStatusInterval: 15 * time.Minute,
		},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Seed:      SeedConfig{Enabled: true},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
