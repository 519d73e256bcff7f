package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("guest-svc")
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "orders", cfg.Kafka.OrdersTopic)
	assert.Equal(t, 720*time.Hour, cfg.CartTTL)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("KAFKA_BROKER", "kafka:29092")
	t.Setenv("UPSTREAM_CHAT_SVC_URL", "http://chat-svc:8082")

	cfg, err := Load("chat-svc")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, "kafka:29092", cfg.Kafka.Broker)
	assert.Equal(t, "http://chat-svc:8082", cfg.Upstream.ChatSvcURL)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")

	_, err := Load("guest-svc")
	assert.Error(t, err)
}

func TestLoad_DefaultAddressPerService(t *testing.T) {
	seen := map[string]string{}
	for service := range DefaultHTTPAddrs {
		cfg, err := Load(service)
		require.NoError(t, err)

		other, taken := seen[cfg.HTTPAddr]
		assert.False(t, taken, "%s and %s share %s", service, other, cfg.HTTPAddr)
		seen[cfg.HTTPAddr] = service
	}
	assert.Equal(t, ":8080", DefaultHTTPAddrs["api-gateway"])

	_, err := Load("unknown-svc")
	assert.Error(t, err)
}

func TestDBConfig_URLEscapesCredentials(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w:rd?#", Name: "concierge", SSLMode: "require"}

	parsed, err := url.Parse(cfg.URL())
	require.NoError(t, err)

	password, _ := parsed.User.Password()
	assert.Equal(t, "p@ss/w:rd?#", password)
	assert.Equal(t, "app", parsed.User.Username())
	assert.Equal(t, "db:5432", parsed.Host)
	assert.Equal(t, "/concierge", parsed.Path)
	assert.Equal(t, "require", parsed.Query().Get("sslmode"))
}

func TestNewKafkaWriter_KeepsKeyOrderAndDoesNotBlock(t *testing.T) {
	logger, _ := test.NewNullLogger()

	writer := NewKafkaWriter(KafkaConfig{Broker: "localhost:9092", OrdersTopic: "orders"}, logger.WithField("service", "test"))

	assert.IsType(t, &kafka.Hash{}, writer.Balancer)
	assert.True(t, writer.Async)
	assert.LessOrEqual(t, writer.BatchTimeout, 10*time.Millisecond)
	assert.NotNil(t, writer.Completion)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := DBConfig{Host: "h", Port: 1, User: "u", Password: "p", Name: "n", SSLMode: "disable"}

	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://u:p@h:1/n?sslmode=disable", cfg.URL())
}
