package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	App           AppSettings           `mapstructure:"app"`
	Mongo         MongoSettings         `mapstructure:"mongo"`
	Kafka         KafkaSettings         `mapstructure:"kafka"`
	JWT           JWTSettings           `mapstructure:"jwt"`
	Bcrypt        BcryptSettings        `mapstructure:"bcrypt"`
	PasswordReset PasswordResetSettings `mapstructure:"password_reset"`
	Mail          MailSettings          `mapstructure:"mail"`
	S3            S3Settings            `mapstructure:"s3"`
	CORS          CORSSettings          `mapstructure:"cors"`
}

type AppSettings struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// ServerURL is the externally reachable base URL used when
	// composing password reset links.
	ServerURL string `mapstructure:"server_url"`
}

type MongoSettings struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// KafkaSettings configures the Kafka producer. With no brokers set the
// service falls back to an in process stub publisher.
type KafkaSettings struct {
	Brokers     []string `mapstructure:"brokers"`
	TopicPrefix string   `mapstructure:"topic_prefix"`
	Async       bool     `mapstructure:"async"`
}

type JWTSettings struct {
	Secret         string        `mapstructure:"secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type BcryptSettings struct {
	Cost int `mapstructure:"cost"`
}

type PasswordResetSettings struct {
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// MailSettings selects the delivery driver: "kafka" relays reset mail
// through the event bus, "log" writes it to the service log.
type MailSettings struct {
	Driver string `mapstructure:"driver"`
	From   string `mapstructure:"from"`
}

type S3Settings struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

type CORSSettings struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("ACCOUNT")

	setDefaults(v)

	if err := bindEnvs(v, []string{
		"app.name",
		"app.env",
		"app.host",
		"app.port",
		"app.server_url",
		"mongo.uri",
		"mongo.database",
		"mongo.connect_timeout",
		"mongo.max_pool_size",
		"kafka.brokers",
		"kafka.topic_prefix",
		"kafka.async",
		"jwt.secret",
		"jwt.issuer",
		"jwt.access_token_ttl",
		"bcrypt.cost",
		"password_reset.token_ttl",
		"mail.driver",
		"mail.from",
		"s3.region",
		"s3.bucket",
		"s3.endpoint",
		"s3.access_key_id",
		"s3.secret_access_key",
		"s3.use_path_style",
		"cors.allowed_origins",
	}); err != nil {
		return nil, err
	}

	v.AutomaticEnv()

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "account-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.server_url", "http://localhost:8080")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "accounts")
	v.SetDefault("mongo.connect_timeout", "10s")
	v.SetDefault("mongo.max_pool_size", 100)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic_prefix", "account")
	v.SetDefault("kafka.async", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "account-service")
	v.SetDefault("jwt.access_token_ttl", "24h")

	v.SetDefault("bcrypt.cost", 12)

	// Reset tokens are short lived on purpose.
	v.SetDefault("password_reset.token_ttl", "10m")

	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.from", "no-reply@articlepost.io")

	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "account-profile-images")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.use_path_style", false)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}

func bindEnvs(v *viper.Viper, keys []string) error {
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, "ACCOUNT_"+envKey, envKey); err != nil {
			return fmt.Errorf("bind env for %s: %w", key, err)
		}
	}
	return nil
}
