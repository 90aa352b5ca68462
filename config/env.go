package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort           = "8080"
	defaultAppEnv            = "local"
	defaultWhatsAppNumber    = "+17863918722"
	defaultWhatsAppMessage   = "Hello, I saw your jewelry catalog and would like to inquire about a piece."
	defaultRevalidateSeconds = 60
	defaultAPITimeoutSeconds = 10
	defaultAPIReadAttempts   = 1
	defaultLogMongoDatabase  = "coconina"
	defaultLogMongoColl      = "logs"
)

// keys read from the process environment after the files are merged.
var envKeys = []string{
	"API_BASE_URL",
	"CDN_BASE_URL",
	"WHATSAPP_NUMBER",
	"WHATSAPP_MESSAGE",
	"REVALIDATE_SECONDS",
	"API_TIMEOUT_SECONDS",
	"API_READ_ATTEMPTS",
	"APP_PORT",
	"APP_ENV",
	"LOG_LEVEL",
	"REDIS_ADDR",
	"REDIS_PASSWORD",
	"LOG_MONGO_URI",
	"LOG_MONGO_DB",
	"LOG_MONGO_COLLECTION",
	"MAX_BODY_BYTES",
	"RATE_LIMIT_PER_MINUTE",
	"TRUST_PROXY",
}

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load merges config/app.json, .env and the process environment on top of
// the defaults. Later sources win. Safe to call repeatedly.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":            defaultAppPort,
		"APP_ENV":             defaultAppEnv,
		"API_BASE_URL":        "",
		"CDN_BASE_URL":        "",
		"WHATSAPP_NUMBER":     defaultWhatsAppNumber,
		"WHATSAPP_MESSAGE":    defaultWhatsAppMessage,
		"REVALIDATE_SECONDS":  strconv.Itoa(defaultRevalidateSeconds),
		"API_TIMEOUT_SECONDS": strconv.Itoa(defaultAPITimeoutSeconds),
		"REDIS_ADDR":          "",
		"REDIS_PASSWORD":      "",
	}
}

// APIBaseURL is the remote catalog API root. Empty means fixture mode.
func APIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("API_BASE_URL", ""), "/")
}

// CDNBaseURL is prefixed to relative image paths when set.
func CDNBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("CDN_BASE_URL", ""), "/")
}

func WhatsAppNumber() string {
	_ = Load()
	return get("WHATSAPP_NUMBER", defaultWhatsAppNumber)
}

func WhatsAppMessage() string {
	_ = Load()
	return get("WHATSAPP_MESSAGE", defaultWhatsAppMessage)
}

// Revalidate is how long a successful remote read may be served from cache.
func Revalidate() time.Duration {
	_ = Load()
	return seconds("REVALIDATE_SECONDS", defaultRevalidateSeconds)
}

// APITimeout bounds a single outgoing call to the catalog API.
func APITimeout() time.Duration {
	_ = Load()
	return seconds("API_TIMEOUT_SECONDS", defaultAPITimeoutSeconds)
}

// APIReadAttempts is how many times a catalog read is tried on transport
// failure before falling back. Contact submissions are never retried.
func APIReadAttempts() int {
	_ = Load()
	n, err := strconv.Atoi(get("API_READ_ATTEMPTS", strconv.Itoa(defaultAPIReadAttempts)))
	if err != nil || n < 1 {
		return defaultAPIReadAttempts
	}
	return n
}

// TrustProxy reports whether the server sits behind a proxy whose
// X-Forwarded-For / X-Real-IP headers identify the client.
func TrustProxy() bool {
	_ = Load()
	ok, err := strconv.ParseBool(get("TRUST_PROXY", "false"))
	return err == nil && ok
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

func LogLevel() string {
	_ = Load()
	return strings.ToLower(get("LOG_LEVEL", ""))
}

// RedisAddr is empty unless a Redis cache is deployed.
func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", "")
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

// ── Log sink ─────────────────────────────────────────────────────────────────

func LogMongoURI() string        { _ = Load(); return get("LOG_MONGO_URI", "") }
func LogMongoDatabase() string   { _ = Load(); return get("LOG_MONGO_DB", defaultLogMongoDatabase) }
func LogMongoCollection() string { _ = Load(); return get("LOG_MONGO_COLLECTION", defaultLogMongoColl) }

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mergeProcessEnv(loaded)

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		var s string
		switch v := val.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(v)
		default:
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	for key, value := range env {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(value)
	}

	return nil
}

func mergeProcessEnv(out map[string]string) {
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			out[key] = strings.TrimSpace(v)
		}
	}
}

func seconds(key string, fallback int) time.Duration {
	n, err := strconv.Atoi(get(key, strconv.Itoa(fallback)))
	if err != nil || n < 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key in memory. Used by the CLI flags and tests.
func Set(key, value string) {
	_ = Load()
	mu.Lock()
	defer mu.Unlock()
	values[strings.ToUpper(key)] = value
}
