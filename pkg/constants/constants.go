// Package constants provides shared constants for the toolhub calculators.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimals kept when presenting currency
	DecimalPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// BalanceEpsilon is the balance below which a loan is considered paid off.
	// Unlike CurrencyTolerance it is applied to unrounded internal balances.
	BalanceEpsilon = 1e-9

	// PMILoanToValueCutoff is the remaining balance to original loan ratio at or
	// below which private mortgage insurance is no longer charged.
	PMILoanToValueCutoff = 0.8
)

// Payment and compounding frequencies, expressed as periods per year.
const (
	Annually     = 1
	Semiannually = 2
	Quarterly    = 4
	Monthly      = 12
	Semimonthly  = 24
	Biweekly     = 26
	Weekly       = 52
	Daily        = 365

	// MaxPeriodsPerYear bounds payment and compounding frequencies.
	MaxPeriodsPerYear = Daily
)

// Input bounds shared by the validators.
const (
	// MaxAnnualRatePercent is the highest annual rate accepted by any calculator.
	MaxAnnualRatePercent = 100.0

	// MaxTermYears is the longest loan term or projection horizon accepted.
	MaxTermYears = 100.0

	// MaxAmount bounds the magnitude of any monetary input or percentage
	// operand. It keeps every derived value finite so results always encode.
	MaxAmount = 1_000_000_000.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default batch calculation file name
	DefaultConfigFile = "toolhub.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment overrides, e.g. TOOLHUB_CACHE_BACKEND.
	EnvPrefix = "TOOLHUB"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxRequestSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxRequestSizeBytes int64 = 256 * 1024

	// DefaultRequestsPerSecond is the default sustained per-client request rate
	DefaultRequestsPerSecond = 10.0

	// DefaultRateBurst is the default per-client burst size
	DefaultRateBurst = 30

	// DefaultShutdownTimeout is the default graceful shutdown window
	DefaultShutdownTimeout = "10s"
)

// Cache defaults
const (
	// CacheBackendNone disables result caching
	CacheBackendNone = "none"

	// CacheBackendMemory keeps results in process
	CacheBackendMemory = "memory"

	// CacheBackendRedis shares results through redis
	CacheBackendRedis = "redis"

	// DefaultCacheTTL is how long a computed result is kept
	DefaultCacheTTL = "15m"

	// DefaultCacheCleanupInterval is how often expired memory entries are purged
	DefaultCacheCleanupInterval = "30m"

	// DefaultRedisAddress is the default redis endpoint
	DefaultRedisAddress = "localhost:6379"
)
