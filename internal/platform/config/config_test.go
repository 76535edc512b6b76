package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "account-notifications", cfg.KafkaTopic)
	assert.False(t, cfg.EnsureTopic)
	assert.Empty(t, cfg.PostgresDSN)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("IDRELAY_ADDR", ":9090")
	t.Setenv("IDRELAY_KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("IDRELAY_MARKETING_EXCLUDED_COUNTRIES", "KR,CN")
	t.Setenv("IDRELAY_DEV_SECRETS", "idp/us/signing-key=abc, idp/eu/signing-key=def")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, []string{"KR", "CN"}, cfg.MarketingExcludedCountries)
	assert.Equal(t, "abc", cfg.SecretValues["idp/us/signing-key"])
	assert.Equal(t, "def", cfg.SecretValues["idp/eu/signing-key"])
}
