package settings

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DefaultTTL)
	assert.Equal(t, 10*time.Minute, cfg.Cache.SweepInterval)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DashboardTTL)
	assert.Equal(t, 2*time.Minute, cfg.Cache.ListingTTL)
	assert.False(t, cfg.Cache.SingleFlight)
	assert.Equal(t, RepositoryMemory, cfg.Repository.Driver)
	assert.Equal(t, uint8(10), cfg.SnowflakeNode.Config.Node)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  port: 9090
cache:
  default_ttl: 30s
  single_flight: true
repository:
  driver: redis
redis:
  host: cache.internal
kafka:
  enabled: true
  brokers: ["kafka-1:9092"]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Cache.DefaultTTL)
	assert.True(t, cfg.Cache.SingleFlight)
	assert.Equal(t, RepositoryRedis, cfg.Repository.Driver)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, []string{"kafka-1:9092"}, cfg.Kafka.Brokers)
	// untouched keys keep their defaults
	assert.Equal(t, 2*time.Minute, cfg.Cache.ListingTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CODELENS_SERVER_PORT", "7070")
	t.Setenv("CODELENS_CACHE_DASHBOARD_TTL", "1m")
	t.Setenv("CODELENS_REDIS_PASSWORD", "s3cret")
	t.Setenv("CODELENS_REDIS_POOL_SIZE", "50")
	t.Setenv("CODELENS_REDIS_MIN_RETRY_BACKOFF", "250")
	t.Setenv("CODELENS_KAFKA_FLUSH_FREQUENCY", "20")
	t.Setenv("CODELENS_KAFKA_MAX_MESSAGE_BYTES", "2048")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Cache.DashboardTTL)
	assert.Equal(t, "s3cret", cfg.Redis.Password)
	assert.Equal(t, 50, cfg.Redis.PoolSize)
	assert.Equal(t, 250, cfg.Redis.MinRetryBackoff)
	assert.Equal(t, 20, cfg.Kafka.FlushFrequency)
	assert.Equal(t, 2048, cfg.Kafka.MaxMessageBytes)
}

// AutomaticEnv only reaches keys viper already knows, so every field needs a default.
func TestSetDefaults_CoversEveryKey(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	for _, key := range configKeys(reflect.TypeOf(Config{}), "") {
		assert.True(t, v.IsSet(key), "no default for %s", key)
	}
}

func configKeys(t reflect.Type, prefix string) []string {
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		key := prefix + f.Tag.Get("mapstructure")
		if f.Type.Kind() == reflect.Struct {
			keys = append(keys, configKeys(f.Type, key+".")...)
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Repository.Driver = "mongo" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "kafka without brokers", mutate: func(c *Config) { c.Kafka.Enabled = true }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
