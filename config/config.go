package config

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	HTTPAddr      string        `envconfig:"HTTP_ADDR"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	PublicBaseURL string        `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	CartTTL       time.Duration `envconfig:"CART_TTL" default:"720h"`

	DB       DBConfig       `envconfig:"DB"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Kafka    KafkaConfig    `envconfig:"KAFKA"`
	Auth     AuthConfig     `envconfig:"AUTH"`
	Chat     ChatConfig     `envconfig:"CHAT"`
	Upstream UpstreamConfig `envconfig:"UPSTREAM"`
}

type DBConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"5432"`
	Name     string `envconfig:"NAME" default:"concierge"`
	User     string `envconfig:"USER" default:"postgres"`
	Password string `envconfig:"PASSWORD"`
	SSLMode  string `envconfig:"SSLMODE" default:"disable"`
}

type RedisConfig struct {
	Host string `envconfig:"HOST" default:"localhost"`
	Port int    `envconfig:"PORT" default:"6379"`
}

type KafkaConfig struct {
	Broker      string `envconfig:"BROKER" default:"localhost:9092"`
	OrdersTopic string `envconfig:"ORDERS_TOPIC" default:"orders"`
	GroupID     string `envconfig:"GROUP_ID" default:"agg-svc-consumer"`
}

// AuthConfig points at the external identity provider that owns sessions.
type AuthConfig struct {
	URL     string        `envconfig:"URL" default:"http://localhost:9999"`
	APIKey  string        `envconfig:"API_KEY"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
}

type ChatConfig struct {
	SendLimit  int64         `envconfig:"SEND_LIMIT" default:"20"`
	SendWindow time.Duration `envconfig:"SEND_WINDOW" default:"1m"`
}

type UpstreamConfig struct {
	GuestSvcURL     string `envconfig:"GUEST_SVC_URL" default:"http://localhost:8081"`
	ChatSvcURL      string `envconfig:"CHAT_SVC_URL" default:"http://localhost:8082"`
	AnalyticsSvcURL string `envconfig:"ANALYTICS_SVC_URL" default:"http://localhost:8083"`
}

// DefaultHTTPAddrs gives every service its own port so a local run with no
// HTTP_ADDR set does not collide.
var DefaultHTTPAddrs = map[string]string{
	"api-gateway":   ":8080",
	"guest-svc":     ":8081",
	"chat-svc":      ":8082",
	"analytics-svc": ":8083",
	"agg-svc":       ":8084",
}

// Load reads an optional .env file and then the process environment. An unset
// HTTP_ADDR falls back to the service's entry in DefaultHTTPAddrs.
func Load(service string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.HTTPAddr == "" {
		addr, ok := DefaultHTTPAddrs[service]
		if !ok {
			return nil, fmt.Errorf("load config: no default address for %q", service)
		}
		cfg.HTTPAddr = addr
	}
	return &cfg, nil
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func (c DBConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func MustInitPostgres(cfg DBConfig) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err = db.Ping(); err != nil {
		log.WithError(err).Fatal("Failed to ping database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(cfg RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	return client
}

func NewKafkaReader(cfg KafkaConfig) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.Broker},
		Topic:   cfg.OrdersTopic,
		GroupID: cfg.GroupID,
	})
}

// NewKafkaWriter hashes message keys to partitions so events with the same
// key keep their order. Writes are asynchronous: WriteMessages only queues,
// and delivery failures are logged from Completion.
func NewKafkaWriter(cfg KafkaConfig, logger *log.Entry) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Broker),
		Topic:                  cfg.OrdersTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		Async:                  true,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.WithError(err).WithField("messages", len(messages)).Error("Failed to deliver kafka messages")
			}
		},
	}
}
