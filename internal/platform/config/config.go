package config

import (
	"os"
	"strings"
)

// Server captures process-level configuration. It is read once at startup and
// treated as immutable for the process lifetime.
type Server struct {
	Addr string

	// KafkaBrokers and KafkaTopic configure the notification publisher.
	KafkaBrokers []string
	KafkaTopic   string
	EnsureTopic  bool

	// RedisURL points at the secret store. Empty means secrets come from
	// SecretValues instead (development only).
	RedisURL     string
	SecretValues map[string]string

	// PostgresDSN enables the durable dispatch journal. Empty falls back to
	// the in-memory journal.
	PostgresDSN string

	// MarketingExcludedCountries lists countries where the marketing-consent
	// flag always projects false.
	MarketingExcludedCountries []string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("IDRELAY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	brokers := splitList(os.Getenv("IDRELAY_KAFKA_BROKERS"))
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	topic := os.Getenv("IDRELAY_KAFKA_TOPIC")
	if topic == "" {
		topic = "account-notifications"
	}

	return Server{
		Addr:                       addr,
		KafkaBrokers:               brokers,
		KafkaTopic:                 topic,
		EnsureTopic:                os.Getenv("IDRELAY_KAFKA_ENSURE_TOPIC") == "true",
		RedisURL:                   os.Getenv("IDRELAY_REDIS_URL"),
		SecretValues:               devSecrets(),
		PostgresDSN:                os.Getenv("IDRELAY_POSTGRES_DSN"),
		MarketingExcludedCountries: splitList(os.Getenv("IDRELAY_MARKETING_EXCLUDED_COUNTRIES")),
	}
}

// devSecrets seeds the in-memory secret store for local development. Redis is
// the source of truth everywhere else.
func devSecrets() map[string]string {
	raw := os.Getenv("IDRELAY_DEV_SECRETS")
	if raw == "" {
		return nil
	}
	values := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		values[strings.TrimSpace(name)] = value
	}
	return values
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
