package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	pkgkafka "github.com/bibbank/origination/pkg/kafka"
	pkgpostgres "github.com/bibbank/origination/pkg/postgres"
)

// Session store backends.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Port     int
}

// Postgres converts to the shared pool configuration.
func (d DatabaseConfig) Postgres() pkgpostgres.Config {
	return pkgpostgres.Config{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Database: d.Name,
		SSLMode:  d.SSLMode,
	}
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Topic         string
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
	Brokers       []string
	Enabled       bool
	TLS           bool
}

// Producer converts to the shared producer configuration.
func (k KafkaConfig) Producer() pkgkafka.Config {
	return pkgkafka.Config{
		Brokers:       k.Brokers,
		TLS:           k.TLS,
		SASLEnabled:   k.SASLMechanism != "",
		SASLMechanism: k.SASLMechanism,
		SASLUsername:  k.SASLUsername,
		SASLPassword:  k.SASLPassword,
	}
}

type AuthConfig struct {
	JWTSecret     string
	JWTIssuer     string
	PrivateKeyPEM string
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

// SimulationConfig tunes the simulated upload and KYC latencies.
type SimulationConfig struct {
	UploadLatencyMin   time.Duration
	UploadLatencyMax   time.Duration
	KYCProcessingDelay time.Duration
}

type Config struct {
	Env           string
	LogLevel      string
	LogFormat     string
	StoreBackend  string
	MigrationsDir string
	ServiceName   string
	DB            DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
	Auth          AuthConfig
	TLS           TLSConfig
	Simulation    SimulationConfig
	SessionTTL    time.Duration
	GRPCPort      int
	HTTPPort      int
	Reflection    bool
	// OTLPEndpoint enables tracing when set.
	OTLPEndpoint string
	OTLPInsecure bool
}

var defaults = map[string]any{
	"APP_ENV":                     "development",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"GRPC_PORT":                   9090,
	"HTTP_PORT":                   8080,
	"STORE_BACKEND":               StoreMemory,
	"REDIS_ADDR":                  "localhost:6379",
	"REDIS_DB":                    0,
	"DB_HOST":                     "localhost",
	"DB_PORT":                     5432,
	"DB_USER":                     "bib",
	"DB_NAME":                     "bib_origination",
	"DB_SSLMODE":                  "require",
	"MIGRATIONS_DIR":              ".",
	"KAFKA_ENABLED":               false,
	"KAFKA_BROKERS":               "localhost:9092",
	"KAFKA_TOPIC":                 "origination.events",
	"KAFKA_TLS":                   false,
	"JWT_ISSUER":                  "bib-origination",
	"SESSION_TTL":                 "30m",
	"UPLOAD_LATENCY_MIN":          "400ms",
	"UPLOAD_LATENCY_MAX":          "1s",
	"KYC_PROCESSING_DELAY":        "3s",
	"GRPC_REFLECTION":             false,
	"OTEL_EXPORTER_OTLP_INSECURE": true,
}

// Load reads configuration from, in increasing precedence: built-in
// defaults, an optional config.yaml, a .env file and the process
// environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		Env:           v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		GRPCPort:      v.GetInt("GRPC_PORT"),
		HTTPPort:      v.GetInt("HTTP_PORT"),
		StoreBackend:  strings.ToLower(v.GetString("STORE_BACKEND")),
		MigrationsDir: v.GetString("MIGRATIONS_DIR"),
		ServiceName:   "origination-service",
		DB: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Enabled:       v.GetBool("KAFKA_ENABLED"),
			Brokers:       splitList(v.GetString("KAFKA_BROKERS")),
			Topic:         v.GetString("KAFKA_TOPIC"),
			TLS:           v.GetBool("KAFKA_TLS"),
			SASLMechanism: v.GetString("KAFKA_SASL_MECHANISM"),
			SASLUsername:  v.GetString("KAFKA_SASL_USERNAME"),
			SASLPassword:  v.GetString("KAFKA_SASL_PASSWORD"),
		},
		Auth: AuthConfig{
			JWTSecret:     v.GetString("JWT_SECRET"),
			JWTIssuer:     v.GetString("JWT_ISSUER"),
			PrivateKeyPEM: v.GetString("JWT_PRIVATE_KEY_PEM"),
		},
		TLS: TLSConfig{
			CertFile: v.GetString("GRPC_TLS_CERT_FILE"),
			KeyFile:  v.GetString("GRPC_TLS_KEY_FILE"),
		},
		Simulation: SimulationConfig{
			UploadLatencyMin:   v.GetDuration("UPLOAD_LATENCY_MIN"),
			UploadLatencyMax:   v.GetDuration("UPLOAD_LATENCY_MAX"),
			KYCProcessingDelay: v.GetDuration("KYC_PROCESSING_DELAY"),
		},
		SessionTTL:   v.GetDuration("SESSION_TTL"),
		Reflection:   v.GetBool("GRPC_REFLECTION"),
		OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPInsecure: v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
	}
}

// Validate reports inconsistent settings.
func (c Config) Validate() error {
	var errs []error

	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis store"))
		}
	case StorePostgres:
		if c.DB.Password == "" {
			errs = append(errs, errors.New("DB_PASSWORD is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}

	if c.Auth.JWTSecret == "" && c.Auth.PrivateKeyPEM == "" {
		errs = append(errs, errors.New("JWT_SECRET or JWT_PRIVATE_KEY_PEM is required"))
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.Simulation.UploadLatencyMin < 0 || c.Simulation.UploadLatencyMax < c.Simulation.UploadLatencyMin {
		errs = append(errs, errors.New("UPLOAD_LATENCY_MAX must be at least UPLOAD_LATENCY_MIN"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together"))
	}

	return errors.Join(errs...)
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
