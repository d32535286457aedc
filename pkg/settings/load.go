package settings

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CODELENS_SERVER_PORT.
const EnvPrefix = "CODELENS"

const (
	RepositoryMemory = "memory"
	RepositoryRedis  = "redis"
)

// Load reads the YAML file at path (optional) and environment overrides into a Config.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment is present.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects values that would leave a component unusable.
func (c *Config) Validate() error {
	switch c.Repository.Driver {
	case RepositoryMemory, RepositoryRedis:
	default:
		return errors.Errorf("unknown repository driver %q", c.Repository.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka enabled without brokers")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("logger.log_level", "info")
	v.SetDefault("logger.file_log_name", "")
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.compress", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	// zero leaves the client's own default in place
	v.SetDefault("redis.pool_size", 0)
	v.SetDefault("redis.min_idle_conns", 0)
	v.SetDefault("redis.pool_timeout", 0)
	v.SetDefault("redis.dial_timeout", 0)
	v.SetDefault("redis.read_timeout", 0)
	v.SetDefault("redis.write_timeout", 0)
	v.SetDefault("redis.max_retries", 0)
	v.SetDefault("redis.max_retry_backoff", 0)
	v.SetDefault("redis.min_retry_backoff", 0)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "codelens.analyses")
	v.SetDefault("kafka.flush_frequency", 0)
	v.SetDefault("kafka.flush_bytes", 0)
	v.SetDefault("kafka.max_message_bytes", 0)
	v.SetDefault("kafka.timeout", 5)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("kafka.retry_backoff", 100)

	v.SetDefault("cache.default_ttl", 5*time.Minute)
	v.SetDefault("cache.sweep_interval", 10*time.Minute)
	v.SetDefault("cache.clock_resolution", time.Duration(0))
	v.SetDefault("cache.single_flight", false)
	v.SetDefault("cache.dashboard_ttl", 5*time.Minute)
	v.SetDefault("cache.listing_ttl", 2*time.Minute)
	v.SetDefault("cache.report_ttl", 10*time.Minute)

	v.SetDefault("repository.driver", RepositoryMemory)

	v.SetDefault("snowflake_node.worker_id", 1)
	v.SetDefault("snowflake_node.config.epoch", int64(1704067200000))
	v.SetDefault("snowflake_node.config.node", 10)
	v.SetDefault("snowflake_node.config.step", 12)
	v.SetDefault("snowflake_node.config.total_bits", 63)
}
