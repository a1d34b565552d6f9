package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// KnownFormats are the output formats the renderers understand.
var KnownFormats = []string{"svg", "html", "png", "echarts", "trend"}

// Config -
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Chart    ChartConfig    `mapstructure:"chart"`
	Output   OutputConfig   `mapstructure:"output"`
	Server   ServerConfig   `mapstructure:"server"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatasetConfig struct {
	URL             string `mapstructure:"url"`
	RequestTimeout  int    `mapstructure:"request_timeout"` // seconds
	MaxRetries      int    `mapstructure:"max_retries"`
	MaxResponseSize int64  `mapstructure:"max_response_size"`
}

// Timeout returns RequestTimeout as a duration.
func (d DatasetConfig) Timeout() time.Duration {
	return time.Duration(d.RequestTimeout) * time.Second
}

type ChartConfig struct {
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	BarWidth float64 `mapstructure:"bar_width"`
}

type OutputConfig struct {
	Dir     string   `mapstructure:"dir"`
	Formats []string `mapstructure:"formats"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// Enabled reports whether a bot token is configured.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != ""
}

// ChatIDInt parses ChatID. Validation guarantees it succeeds when Enabled.
func (t TelegramConfig) ChatIDInt() (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(t.ChatID), 10, 64)
}

type LogConfig struct {
	Dir string `mapstructure:"dir"`
}

// Options controls where LoadConfig looks for its files. Zero values mean
// the working directory.
type Options struct {
	ConfigPath string
	EnvFile    string
	Flags      *pflag.FlagSet
}

// LoadConfig from env, flags and files. Later sources win:
// 1. defaults
// 2. config.yaml
// 3. .env file
// 4. environment
// 5. flags that were set explicitly
func LoadConfig(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Missing .env is fine.
	_ = godotenv.Load(envFile)

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if opts.ConfigPath != "" {
		v.SetConfigFile(opts.ConfigPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.ConfigPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setupEnvAliases(v)

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// output.formats from env or a flag arrives as one comma-separated string.
	config.Output.Formats = splitList(v.Get("output.formats"))

	if err := validateConfig(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setupEnvAliases(v *viper.Viper) {
	// Short names used in .env files.
	v.BindEnv("dataset.url", "HEATMAP_DATASET_URL", "DATASET_URL")
	v.BindEnv("dataset.request_timeout", "HEATMAP_REQUEST_TIMEOUT")
	v.BindEnv("dataset.max_retries", "HEATMAP_MAX_RETRIES")
	v.BindEnv("dataset.max_response_size", "HEATMAP_MAX_RESPONSE_SIZE")

	v.BindEnv("chart.width", "HEATMAP_WIDTH")
	v.BindEnv("chart.height", "HEATMAP_HEIGHT")
	v.BindEnv("chart.bar_width", "HEATMAP_BAR_WIDTH")

	v.BindEnv("output.dir", "HEATMAP_OUTPUT_DIR")
	v.BindEnv("output.formats", "HEATMAP_FORMATS")

	v.BindEnv("server.port", "HEATMAP_PORT", "PORT")
	v.BindEnv("watch.interval", "HEATMAP_WATCH_INTERVAL")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")

	v.BindEnv("log.dir", "HEATMAP_LOG_DIR")
}

// setDefaults by default
func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.url", "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/global-temperature.json")
	v.SetDefault("dataset.request_timeout", 30)
	v.SetDefault("dataset.max_retries", 0)
	v.SetDefault("dataset.max_response_size", 10*1024*1024) // 10MB

	v.SetDefault("chart.width", 1200)
	v.SetDefault("chart.height", 600)
	v.SetDefault("chart.bar_width", 7)

	v.SetDefault("output.dir", "out")
	v.SetDefault("output.formats", []string{"svg", "html", "png"})

	v.SetDefault("server.port", 8080)
	v.SetDefault("watch.interval", "24h")

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")

	v.SetDefault("log.dir", "logs")
}

// RegisterFlags adds the configuration flags to fs. Flags only override
// other sources when they are set on the command line.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("dataset.url", "", "Dataset URL, file:// URL or local path (env: HEATMAP_DATASET_URL)")
	fs.Int("dataset.request_timeout", 30, "Request timeout in seconds (env: HEATMAP_REQUEST_TIMEOUT)")
	fs.Int("dataset.max_retries", 0, "Max retries for failed requests (env: HEATMAP_MAX_RETRIES)")
	fs.Int64("dataset.max_response_size", 10*1024*1024, "Max response size in bytes (env: HEATMAP_MAX_RESPONSE_SIZE)")

	fs.Float64("chart.width", 1200, "Outer chart width in pixels (env: HEATMAP_WIDTH)")
	fs.Float64("chart.height", 600, "Outer chart height in pixels (env: HEATMAP_HEIGHT)")
	fs.Float64("chart.bar_width", 7, "Cell width in pixels (env: HEATMAP_BAR_WIDTH)")

	fs.String("output.dir", "out", "Output directory (env: HEATMAP_OUTPUT_DIR)")
	fs.String("output.formats", "svg,html,png", "Comma-separated output formats (env: HEATMAP_FORMATS)")

	fs.Int("server.port", 8080, "HTTP port for serve (env: HEATMAP_PORT)")
	fs.Duration("watch.interval", 24*time.Hour, "Re-render interval for watch (env: HEATMAP_WATCH_INTERVAL)")

	fs.String("telegram.bot_token", "", "Telegram bot token (env: TELEGRAM_BOT_TOKEN)")
	fs.String("telegram.chat_id", "", "Telegram chat ID (env: TELEGRAM_CHAT_ID)")

	fs.String("log.dir", "logs", "Log directory (env: HEATMAP_LOG_DIR)")
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		// Only dotted names are config keys; --config and friends are not.
		if bindErr != nil || !f.Changed || !strings.Contains(f.Name, ".") {
			return
		}
		if err := v.BindPFlag(f.Name, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

func splitList(raw interface{}) []string {
	var items []string
	switch v := raw.(type) {
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	}

	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}

func validateConfig(cfg *Config) error {
	if cfg.Dataset.URL == "" {
		return fmt.Errorf("dataset.url is required")
	}
	if cfg.Dataset.RequestTimeout <= 0 {
		return fmt.Errorf("dataset.request_timeout must be positive, got %d", cfg.Dataset.RequestTimeout)
	}
	if cfg.Dataset.MaxRetries < 0 {
		return fmt.Errorf("dataset.max_retries must not be negative, got %d", cfg.Dataset.MaxRetries)
	}

	// Below these the plotting area collapses once margins are taken off.
	if cfg.Chart.Width <= 150 {
		return fmt.Errorf("chart.width must be greater than 150, got %g", cfg.Chart.Width)
	}
	if cfg.Chart.Height <= 250 {
		return fmt.Errorf("chart.height must be greater than 250, got %g", cfg.Chart.Height)
	}
	if cfg.Chart.BarWidth <= 0 {
		return fmt.Errorf("chart.bar_width must be positive, got %g", cfg.Chart.BarWidth)
	}

	if len(cfg.Output.Formats) == 0 {
		return fmt.Errorf("output.formats must list at least one format")
	}
	for _, f := range cfg.Output.Formats {
		if !isKnownFormat(f) {
			return fmt.Errorf("unknown output format %q (known: %s)", f, strings.Join(KnownFormats, ", "))
		}
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if cfg.Watch.Interval < time.Minute {
		return fmt.Errorf("watch.interval must be at least 1m, got %s", cfg.Watch.Interval)
	}

	if cfg.Telegram.Enabled() {
		if _, err := cfg.Telegram.ChatIDInt(); err != nil {
			return fmt.Errorf("telegram.chat_id must be numeric when telegram.bot_token is set: %q", cfg.Telegram.ChatID)
		}
	}
	return nil
}

func isKnownFormat(f string) bool {
	for _, k := range KnownFormats {
		if k == f {
			return true
		}
	}
	return false
}
