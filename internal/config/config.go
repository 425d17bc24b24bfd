package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/mlb-team-timeline/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
	DataSourceSample   = "sample"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	LogLevel                   logging.Level
	LogFormat                  string
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	DataSource                 string
	DataDir                    string
	DBURL                      string
	DBDisablePreparedBinary    bool
	FranchiseDirectoryPath     string
	MatchThreshold             float64
	ExtractConcurrency         int
	CacheEnabled               bool
	CacheBackend               string
	CacheTTL                   time.Duration
	RedisAddr                  string
	RedisPassword              string
	RedisDB                    int
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}
	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	logLevel, ok := logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info"))
	if !ok {
		return Config{}, fmt.Errorf("invalid APP_LOG_LEVEL %q: valid values are debug, info, warn, error", os.Getenv("APP_LOG_LEVEL"))
	}
	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logging.FormatJSON)))
	if logFormat != logging.FormatJSON && logFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatJSON, logging.FormatConsole)
	}

	readTimeout, err := getEnvAsDuration("APP_READ_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}
	writeTimeout, err := getEnvAsDuration("APP_WRITE_TIMEOUT", "15s")
	if err != nil {
		return Config{}, err
	}
	shutdownTimeout, err := getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return Config{}, err
	}

	dataSource := strings.ToLower(strings.TrimSpace(getEnv("DATA_SOURCE", DataSourceCSV)))
	switch dataSource {
	case DataSourceCSV, DataSourcePostgres, DataSourceSample:
	default:
		return Config{}, fmt.Errorf("invalid DATA_SOURCE %q: valid values are %s, %s, %s", dataSource, DataSourceCSV, DataSourcePostgres, DataSourceSample)
	}
	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "./data"))
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dataSource == DataSourcePostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DATA_SOURCE=%s", DataSourcePostgres)
	}
	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	matchThreshold, err := strconv.ParseFloat(strings.TrimSpace(getEnv("MATCH_THRESHOLD", "70")), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse MATCH_THRESHOLD: %w", err)
	}
	if matchThreshold <= 0 || matchThreshold > 100 {
		return Config{}, fmt.Errorf("MATCH_THRESHOLD must be in (0, 100]")
	}
	extractConcurrency, err := getEnvAsInt("EXTRACT_CONCURRENCY", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse EXTRACT_CONCURRENCY: %w", err)
	}
	if extractConcurrency < 1 {
		return Config{}, fmt.Errorf("EXTRACT_CONCURRENCY must be >= 1")
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheBackend := strings.ToLower(strings.TrimSpace(getEnv("CACHE_BACKEND", CacheBackendMemory)))
	if cacheBackend != CacheBackendMemory && cacheBackend != CacheBackendRedis {
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", cacheBackend, CacheBackendMemory, CacheBackendRedis)
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", "10m")
	if err != nil {
		return Config{}, err
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	redisAddr := strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	if cacheEnabled && cacheBackend == CacheBackendRedis && redisAddr == "" {
		return Config{}, fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=%s", CacheBackendRedis)
	}
	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if redisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be >= 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s")
	if err != nil {
		return Config{}, err
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "mlb-team-timeline-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:                readTimeout,
		WriteTimeout:               writeTimeout,
		ShutdownTimeout:            shutdownTimeout,
		LogLevel:                   logLevel,
		LogFormat:                  logFormat,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:             swaggerEnabled,
		DataSource:                 dataSource,
		DataDir:                    dataDir,
		DBURL:                      dbURL,
		DBDisablePreparedBinary:    dbDisablePreparedBinary,
		FranchiseDirectoryPath:     strings.TrimSpace(getEnv("FRANCHISE_DIRECTORY_PATH", "")),
		MatchThreshold:             matchThreshold,
		ExtractConcurrency:         extractConcurrency,
		CacheEnabled:               cacheEnabled,
		CacheBackend:               cacheBackend,
		CacheTTL:                   cacheTTL,
		RedisAddr:                  redisAddr,
		RedisPassword:              getEnv("REDIS_PASSWORD", ""),
		RedisDB:                    redisDB,
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if cfg.HTTPAddr == "" {
		return Config{}, fmt.Errorf("APP_HTTP_ADDR cannot be empty")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
