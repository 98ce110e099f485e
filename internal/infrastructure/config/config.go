package config

import (
	"strings"
	"time"

	"motofinance/internal/domain/financing"

	"github.com/spf13/viper"
)

const (
	StorageDriverDynamoDB = "dynamodb"
	StorageDriverMemory   = "memory"

	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Storage   StorageConfig   `mapstructure:"storage"`
	DynamoDB  DynamoDBConfig  `mapstructure:"dynamodb"`
	Financing FinancingConfig `mapstructure:"financing"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Payments  PaymentsConfig  `mapstructure:"payments"`
	Watcher   WatcherConfig   `mapstructure:"watcher"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type DynamoDBConfig struct {
	Region            string `mapstructure:"region"`
	Endpoint          string `mapstructure:"endpoint"`
	AccessKeyID       string `mapstructure:"access_key_id"`
	SecretAccessKey   string `mapstructure:"secret_access_key"`
	ProposalsTable    string `mapstructure:"proposals_table"`
	ProductsTable     string `mapstructure:"products_table"`
	DownPaymentsTable string `mapstructure:"down_payments_table"`
	UsersTablePrefix  string `mapstructure:"users_table_prefix"`
}

type FinancingConfig struct {
	SoatFee       float64 `mapstructure:"soat_fee"`
	NotarialFee   float64 `mapstructure:"notarial_fee"`
	ProcessingFee float64 `mapstructure:"processing_fee"`
	AnnualRate    float64 `mapstructure:"annual_rate"`
}

type CacheConfig struct {
	Driver     string        `mapstructure:"driver"`
	RedisURL   string        `mapstructure:"redis_url"`
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string `mapstructure:"mercadopago_access_token"`
	Mock                   bool   `mapstructure:"mock"`
}

type WatcherConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	PollSpec string `mapstructure:"poll_spec"`
}

// FeeSchedule converts the financing section into the calculator's input.
func (c FinancingConfig) FeeSchedule() financing.FeeSchedule {
	return financing.FeeSchedule{
		SoatFee:       c.SoatFee,
		NotarialFee:   c.NotarialFee,
		ProcessingFee: c.ProcessingFee,
		AnnualRate:    c.AnnualRate,
	}
}

// Load reads configuration from path (YAML) when given, then from the
// environment. Nested keys map to upper-case env names with "." replaced by
// "_" (log.level -> LOG_LEVEL); the AWS and Mercado Pago variables keep their
// usual names.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fees := financing.DefaultFeeSchedule()
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "json")
	v.SetDefault("log.development", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("storage.driver", StorageDriverDynamoDB)
	v.SetDefault("dynamodb.region", "us-east-1")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.access_key_id", "local")
	v.SetDefault("dynamodb.secret_access_key", "local")
	v.SetDefault("dynamodb.proposals_table", "proposals")
	v.SetDefault("dynamodb.products_table", "official_products")
	v.SetDefault("dynamodb.down_payments_table", "down_payments")
	v.SetDefault("dynamodb.users_table_prefix", "")
	v.SetDefault("financing.soat_fee", fees.SoatFee)
	v.SetDefault("financing.notarial_fee", fees.NotarialFee)
	v.SetDefault("financing.processing_fee", fees.ProcessingFee)
	v.SetDefault("financing.annual_rate", fees.AnnualRate)
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.redis_url", "redis://localhost:6379/0")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.max_entries", 10000)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("payments.mercadopago_access_token", "")
	v.SetDefault("payments.mock", false)
	v.SetDefault("watcher.enabled", true)
	v.SetDefault("watcher.poll_spec", "*/5 * * * * *")

	bindings := map[string][]string{
		"server.http_addr":                  {"HTTP_ADDR"},
		"dynamodb.region":                   {"AWS_REGION"},
		"dynamodb.endpoint":                 {"DYNAMODB_ENDPOINT"},
		"dynamodb.access_key_id":            {"AWS_ACCESS_KEY_ID"},
		"dynamodb.secret_access_key":        {"AWS_SECRET_ACCESS_KEY"},
		"dynamodb.proposals_table":          {"PROPOSALS_TABLE"},
		"dynamodb.products_table":           {"PRODUCTS_TABLE"},
		"dynamodb.down_payments_table":      {"DOWN_PAYMENTS_TABLE"},
		"dynamodb.users_table_prefix":       {"USERS_TABLE_PREFIX"},
		"cache.redis_url":                   {"REDIS_URL"},
		"auth.jwt_secret":                   {"JWT_SECRET"},
		"payments.mercadopago_access_token": {"MERCADOPAGO_ACCESS_TOKEN"},
		"payments.mock":                     {"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
