package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Options holds optional explicit file paths for Load.
type Options struct {
	// ConfigFile is an explicit YAML config path. Empty means search the
	// conventional locations.
	ConfigFile string
	// EnvFile is an explicit .env path. Empty means search the conventional
	// locations.
	EnvFile string
}

// Option configures Load.
type Option func(*Options)

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// Load loads configuration for the named application into cfg. It reads, in
// order: a config.yml (explicit path or conventional locations), a .env
// file, and the process environment. Environment variables override file
// values; LOG_LEVEL maps to the key log.level and so on.
func Load(name string, cfg interface{}, opts ...Option) error {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	configFile := o.ConfigFile
	if configFile == "" {
		configFile = findFirst(
			fmt.Sprintf("%s.yml", name),
			"config.yml",
			"config/config.yml",
		)
	}
	envFile := o.EnvFile
	if envFile == "" {
		envFile = findFirst(fmt.Sprintf(".env.%s", name), ".env")
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnv(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for %s: %w", name, err)
	}
	return nil
}

// findFirst returns the first path that exists, or "".
func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// bindEnv maps UPPER_SNAKE environment variables onto nested viper keys so
// QUERY_ENDPOINT overrides query_endpoint and HTTP_PROXY_URL overrides
// http.proxy_url.
func bindEnv(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, key := range envKeyVariants(pair[0]) {
			v.Set(key, pair[1])
		}
	}
}

// envKeyVariants generates the nested key spellings an environment variable
// can stand for: HTTP_PROXY_URL -> http_proxy_url, http.proxy.url,
// http.proxy_url.
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}
	variants := []string{lower, strings.ReplaceAll(lower, "_", ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
