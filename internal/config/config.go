package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockAnalyzer/internal/model"
)

const (
	ProviderAlphaVantage = "alphavantage"
	ProviderYahoo        = "yahoo"
	ProviderMock         = "mock"
)

// DefaultSymbols is the watch list used when none is configured.
var DefaultSymbols = []string{"AAPL", "MSFT", "AMZN", "GOOGL", "TSLA", "META", "NVDA"}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"`
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Symbols         []string              `yaml:"symbols"`
	Indicators      []string              `yaml:"indicators"`
	IndicatorParams model.IndicatorParams `yaml:"indicator_params"`
	Cache           struct {
		RedisAddr string        `yaml:"redis_addr"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		TTL       time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
		Interval    string `yaml:"interval"`
		StateFile   string `yaml:"state_file"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = splitList(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderAlphaVantage
	}
	c.DataSource.Provider = strings.ToLower(c.DataSource.Provider)
	if c.DataSource.BaseURL == "" && c.DataSource.Provider == ProviderAlphaVantage {
		c.DataSource.BaseURL = "https://www.alphavantage.co"
	}
	if len(c.Symbols) == 0 {
		c.Symbols = append([]string(nil), DefaultSymbols...)
	}
	for i, s := range c.Symbols {
		c.Symbols[i] = strings.ToUpper(strings.TrimSpace(s))
	}
	if len(c.Indicators) == 0 {
		for _, ind := range model.Indicators {
			c.Indicators = append(c.Indicators, string(ind))
		}
	}

	def := model.DefaultIndicatorParams()
	p := &c.IndicatorParams
	if p.RSIWindow == 0 {
		p.RSIWindow = def.RSIWindow
	}
	if p.MACDFast == 0 {
		p.MACDFast = def.MACDFast
	}
	if p.MACDSlow == 0 {
		p.MACDSlow = def.MACDSlow
	}
	if p.MACDSignal == 0 {
		p.MACDSignal = def.MACDSignal
	}
	if p.BollingerWindow == 0 {
		p.BollingerWindow = def.BollingerWindow
	}
	if p.BollingerK == 0 {
		p.BollingerK = def.BollingerK
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 15 * time.Minute
	}
	if c.Schedule.RefreshCron == "" {
		c.Schedule.RefreshCron = "0 30 22 * * 1-5"
	}
	if c.Schedule.Interval == "" {
		c.Schedule.Interval = string(model.IntervalDaily)
	}
	if c.Schedule.StateFile == "" {
		c.Schedule.StateFile = "data/watch_state.json"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/stock_analyzer.db"
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8080"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols: at least one symbol is required")
	}
	switch c.DataSource.Provider {
	case ProviderAlphaVantage:
		if c.DataSource.APIKey == "" {
			return fmt.Errorf("data_source.api_key is required for provider %s", ProviderAlphaVantage)
		}
	case ProviderYahoo, ProviderMock:
	default:
		return fmt.Errorf("data_source.provider %q is not supported", c.DataSource.Provider)
	}
	for _, ind := range c.Indicators {
		if _, err := model.ParseIndicator(ind); err != nil {
			return fmt.Errorf("indicators: %w", err)
		}
	}

	p := c.IndicatorParams
	if p.RSIWindow <= 0 || p.MACDFast <= 0 || p.MACDSlow <= 0 || p.MACDSignal <= 0 || p.BollingerWindow <= 0 {
		return fmt.Errorf("indicator_params: windows must be positive")
	}
	if p.BollingerK <= 0 {
		return fmt.Errorf("indicator_params.bollinger_k must be positive")
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("indicator_params: macd_fast (%d) must be less than macd_slow (%d)", p.MACDFast, p.MACDSlow)
	}
	if _, err := model.ParseInterval(c.Schedule.Interval); err != nil {
		return fmt.Errorf("schedule.interval: %w", err)
	}
	return nil
}

// RefreshInterval returns the parsed schedule interval. Call after Validate.
func (c *Config) RefreshInterval() model.Interval {
	iv, err := model.ParseInterval(c.Schedule.Interval)
	if err != nil {
		return model.IntervalDaily
	}
	return iv
}

// TelegramEnabled reports whether notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
