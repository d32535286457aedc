package settings

import "time"

type Config struct {
	Server        Server        `mapstructure:"server"`
	Logger        Logger        `mapstructure:"logger"`
	Redis         Redis         `mapstructure:"redis"`
	Kafka         Kafka         `mapstructure:"kafka"`
	Cache         Cache         `mapstructure:"cache"`
	Repository    Repository    `mapstructure:"repository"`
	SnowflakeNode SnowflakeNode `mapstructure:"snowflake_node"`
}

// Server is the configuration for the server
type Server struct {
	Mode            string        `mapstructure:"mode"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

// Redis is the configuration for Redis
type Redis struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Password        string `mapstructure:"password"`
	Database        int    `mapstructure:"database"`
	PoolSize        int    `mapstructure:"pool_size"`
	MinIdleConns    int    `mapstructure:"min_idle_conns"`
	PoolTimeout     int    `mapstructure:"pool_timeout"`
	DialTimeout     int    `mapstructure:"dial_timeout"`
	ReadTimeout     int    `mapstructure:"read_timeout"`
	WriteTimeout    int    `mapstructure:"write_timeout"`
	MaxRetries      int    `mapstructure:"max_retries"`
	MaxRetryBackoff int    `mapstructure:"max_retry_backoff"`
	MinRetryBackoff int    `mapstructure:"min_retry_backoff"`
}

// Kafka is the configuration for Kafka
type Kafka struct {
	Enabled         bool     `mapstructure:"enabled"`
	Brokers         []string `mapstructure:"brokers"`
	Topic           string   `mapstructure:"topic"`
	FlushFrequency  int      `mapstructure:"flush_frequency"`   // Milliseconds
	FlushBytes      int      `mapstructure:"flush_bytes"`       // Bytes
	MaxMessageBytes int      `mapstructure:"max_message_bytes"` // Bytes
	Timeout         int      `mapstructure:"timeout"`           // Seconds
	MaxRetries      int      `mapstructure:"max_retries"`       // Number of retries
	RetryBackoff    int      `mapstructure:"retry_backoff"`     // Milliseconds
}

// Cache is the configuration for the in-process TTL caches
type Cache struct {
	DefaultTTL      time.Duration `mapstructure:"default_ttl"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	ClockResolution time.Duration `mapstructure:"clock_resolution"`
	SingleFlight    bool          `mapstructure:"single_flight"`
	DashboardTTL    time.Duration `mapstructure:"dashboard_ttl"`
	ListingTTL      time.Duration `mapstructure:"listing_ttl"`
	ReportTTL       time.Duration `mapstructure:"report_ttl"`
}

// Repository selects where analysis records live: "memory" or "redis".
type Repository struct {
	Driver string `mapstructure:"driver"`
}

type Snowflake struct {
	Epoch     int64 `mapstructure:"epoch"`
	Node      uint8 `mapstructure:"node"`
	Step      uint8 `mapstructure:"step"`
	TotalBits uint8 `mapstructure:"total_bits"`
}

type SnowflakeNode struct {
	Config   Snowflake `mapstructure:"config"`
	WorkerID int64     `mapstructure:"worker_id"`
}
