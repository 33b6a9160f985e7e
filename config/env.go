// Package config loads application settings from config/app.json and .env,
// falling back to documented defaults. Values are exposed through one getter
// per key so call sites never deal with raw map lookups.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultMongoURI       = "mongodb://localhost:27017"
	defaultDatabaseName   = "ecommerceDB"
	defaultRedisAddr      = "localhost:6379"
	defaultSessionSecret  = "change-me-in-production"
	defaultAppPort        = "8080"
	defaultAppEnv         = "local"
	defaultBaseURL        = "http://localhost:8080"
	defaultCurrencySymbol = "₱"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

// Load reads config/app.json and .env once. Missing files are not an error.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":       defaultMongoURI,
		"DB_NAME":         defaultDatabaseName,
		"REDIS_ADDR":      defaultRedisAddr,
		"REDIS_PASSWORD":  "",
		"SESSION_SECRET":  defaultSessionSecret,
		"APP_PORT":        defaultAppPort,
		"APP_ENV":         defaultAppEnv,
		"BASE_URL":        defaultBaseURL,
		"CURRENCY_SYMBOL": defaultCurrencySymbol,
		"LOG_TO_MONGO":    "false",
	}
}

// Get returns the raw config value for key, or fallback when unset.
func Get(key, fallback string) string {
	_ = Load()

	mu.RLock()
	defer mu.RUnlock()

	if v, ok := values[strings.ToUpper(key)]; ok && v != "" {
		return v
	}
	return fallback
}

func MongoURI() string     { return Get("MONGO_URI", defaultMongoURI) }
func DatabaseName() string { return Get("DB_NAME", defaultDatabaseName) }
func AppPort() string      { return Get("APP_PORT", defaultAppPort) }
func AppEnv() string       { return Get("APP_ENV", defaultAppEnv) }
func BaseURL() string      { return strings.TrimRight(Get("BASE_URL", defaultBaseURL), "/") }

func RedisAddr() string     { return Get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { return Get("REDIS_PASSWORD", "") }

func SessionSecret() string { return Get("SESSION_SECRET", defaultSessionSecret) }

// CurrencySymbol is prefixed to monetary values in the workbook, document
// and spreadsheet exports. The CSV export deliberately omits it so the file
// stays machine-parseable.
func CurrencySymbol() string { return Get("CURRENCY_SYMBOL", defaultCurrencySymbol) }

// LogToMongo reports whether log records should also be persisted to the
// logs collection.
func LogToMongo() bool { return Get("LOG_TO_MONGO", "false") == "true" }

// ── Mail ─────────────────────────────────────────────────────────────────────

func MailHost() string     { return Get("MAIL_HOST", "smtp.mailtrap.io") }
func MailPort() string     { return Get("MAIL_PORT", "587") }
func MailUsername() string { return Get("MAIL_USERNAME", "") }
func MailPassword() string { return Get("MAIL_PASSWORD", "") }
func MailFrom() string     { return Get("MAIL_FROM", "hello@freshfold.app") }
func MailFromName() string { return Get("MAIL_FROM_NAME", "FreshFold") }

// ── Google Sheets service account ────────────────────────────────────────────

// GoogleClientEmail is the service-account identity used by the spreadsheet
// exporter. Empty means the sheets export is unavailable.
func GoogleClientEmail() string { return Get("GOOGLE_SA_CLIENT_EMAIL", "") }

// GooglePrivateKey is the PEM-encoded RSA key paired with GoogleClientEmail.
func GooglePrivateKey() string { return Get("GOOGLE_SA_PRIVATE_KEY", "") }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { return Get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { return Get("STORAGE_LOCAL_ROOT", "storage") }
func StorageURL() string       { return Get("STORAGE_URL", defaultBaseURL+"/storage") }

func StorageS3Bucket() string   { return Get("S3_BUCKET", "") }
func StorageS3Region() string   { return Get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { return Get("S3_KEY", "") }
func StorageS3Secret() string   { return Get("S3_SECRET", "") }
func StorageS3Endpoint() string { return Get("S3_ENDPOINT", "") }
func StorageS3URL() string      { return Get("S3_URL", "") }

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
		s, ok := val.(string)
		if !ok {
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
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}
