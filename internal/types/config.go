package types

type RunMode string

const (
	// ModeLocal runs the API server and the event consumer in one process
	ModeLocal RunMode = "local"
	// ModeAPI runs just the API server
	ModeAPI RunMode = "api"
	// ModeConsumer runs just the event consumer
	ModeConsumer RunMode = "consumer"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// StorageProvider selects the repository backend
type StorageProvider string

const (
	StorageMemory   StorageProvider = "memory"
	StoragePostgres StorageProvider = "postgres"
)

// CacheProvider selects the cache backend
type CacheProvider string

const (
	CacheMemory CacheProvider = "memory"
	CacheRedis  CacheProvider = "redis"
)
