package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Console  bool   `yaml:"console"` // mirror log lines to stdout
}

// StoreConfig selects where scenario results are kept
type StoreConfig struct {
	Driver string `yaml:"driver"` // memory, sqlite
	Path   string `yaml:"path"`
}

// DefaultsConfig holds the values used when a request leaves a field out
type DefaultsConfig struct {
	Spot          float64
	Strike        float64
	Volatility    float64
	DividendYield float64
	Days          int
	Side          string
	PctChange     float64
	LatticeSteps  int
}

// RatesConfig chooses the risk-free rate source. FixedRate is the only
// configured rate; the server and the CLI tools both read it.
type RatesConfig struct {
	Source    string
	FixedRate float64
}

// AlpacaConfig represents Alpaca API configuration
type AlpacaConfig struct {
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
}

type Config struct {
	// Server settings
	Port string

	// Alpaca market data, used to resolve spot from a symbol
	AlpacaAPIKey    string
	AlpacaSecretKey string

	Logging  LoggingConfig
	Store    StoreConfig
	Defaults DefaultsConfig
	Rates    RatesConfig
}

// YAMLDefaults uses pointers so an explicit zero (days: 0, volatility: 0)
// overrides the environment.
type YAMLDefaults struct {
	Spot          *float64 `yaml:"spot"`
	Strike        *float64 `yaml:"strike"`
	Volatility    *float64 `yaml:"volatility"`
	RiskFreeRate  *float64 `yaml:"risk_free_rate"` // alias for rates.fixed_rate
	DividendYield *float64 `yaml:"dividend_yield"`
	Days          *int     `yaml:"days"`
	Side          string   `yaml:"side"`
	PctChange     *float64 `yaml:"pct_change"`
	LatticeSteps  *int     `yaml:"lattice_steps"`
}

type YAMLRates struct {
	Source    string   `yaml:"source"` // fixed, treasury
	FixedRate *float64 `yaml:"fixed_rate"`
}

type YAMLConfig struct {
	Port     string        `yaml:"port"`
	Alpaca   AlpacaConfig  `yaml:"alpaca"`
	Logging  LoggingConfig `yaml:"logging"`
	Store    StoreConfig   `yaml:"store"`
	Defaults YAMLDefaults  `yaml:"defaults"`
	Rates    YAMLRates     `yaml:"rates"`
}

// ConfigFile is the YAML overlay read by Load
var ConfigFile = "config.yaml"

// Load reads .env (if present), then environment variables, then config.yaml.
func Load() *Config {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		AlpacaAPIKey:    getEnv("ALPACA_API_KEY", ""),
		AlpacaSecretKey: getEnv("ALPACA_SECRET_KEY", ""),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "optionsim.log"),
			Console:  getEnvBool("LOG_CONSOLE", false),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "memory"),
			Path:   getEnv("STORE_PATH", "data/scenarios.db"),
		},
		// Matches the simulator's initial input panel
		Defaults: DefaultsConfig{
			Spot:          getEnvFloat("DEFAULT_SPOT", 100.0),
			Strike:        getEnvFloat("DEFAULT_STRIKE", 100.0),
			Volatility:    getEnvFloat("DEFAULT_VOLATILITY", 0.2),
			DividendYield: getEnvFloat("DEFAULT_DIVIDEND_YIELD", 0.0),
			Days:          getEnvInt("DEFAULT_DAYS", 30),
			Side:          getEnv("DEFAULT_SIDE", "call"),
			PctChange:     getEnvFloat("DEFAULT_PCT_CHANGE", 0.0),
			LatticeSteps:  getEnvInt("DEFAULT_LATTICE_STEPS", 100),
		},
		Rates: RatesConfig{
			Source:    getEnv("RATE_SOURCE", "fixed"),
			FixedRate: getEnvFloat("DEFAULT_RISK_FREE_RATE", 0.01),
		},
	}

	if yamlCfg := loadYAMLConfig(); yamlCfg != nil {
		applyYAML(cfg, yamlCfg)
	}

	return cfg
}

func applyYAML(cfg *Config, yamlCfg *YAMLConfig) {
	if yamlCfg.Port != "" && os.Getenv("PORT") == "" {
		cfg.Port = yamlCfg.Port
	}

	if yamlCfg.Alpaca.APIKey != "" && yamlCfg.Alpaca.APIKey != "YOUR_ALPACA_API_KEY" {
		if os.Getenv("ALPACA_API_KEY") == "" {
			os.Setenv("ALPACA_API_KEY", yamlCfg.Alpaca.APIKey)
		}
		cfg.AlpacaAPIKey = yamlCfg.Alpaca.APIKey
	}
	if yamlCfg.Alpaca.SecretKey != "" && yamlCfg.Alpaca.SecretKey != "YOUR_ALPACA_SECRET_KEY" {
		if os.Getenv("ALPACA_SECRET_KEY") == "" {
			os.Setenv("ALPACA_SECRET_KEY", yamlCfg.Alpaca.SecretKey)
		}
		cfg.AlpacaSecretKey = yamlCfg.Alpaca.SecretKey
	}

	if yamlCfg.Logging.LogLevel != "" {
		cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
	}
	if yamlCfg.Logging.LogFile != "" {
		cfg.Logging.LogFile = yamlCfg.Logging.LogFile
	}
	if yamlCfg.Logging.Console {
		cfg.Logging.Console = true
	}

	if yamlCfg.Store.Driver != "" {
		cfg.Store.Driver = yamlCfg.Store.Driver
	}
	if yamlCfg.Store.Path != "" {
		cfg.Store.Path = yamlCfg.Store.Path
	}

	d := yamlCfg.Defaults
	setFloat(&cfg.Defaults.Spot, d.Spot)
	setFloat(&cfg.Defaults.Strike, d.Strike)
	setFloat(&cfg.Defaults.Volatility, d.Volatility)
	setFloat(&cfg.Defaults.DividendYield, d.DividendYield)
	setInt(&cfg.Defaults.Days, d.Days)
	if d.Side != "" {
		cfg.Defaults.Side = d.Side
	}
	setFloat(&cfg.Defaults.PctChange, d.PctChange)
	setInt(&cfg.Defaults.LatticeSteps, d.LatticeSteps)

	if yamlCfg.Rates.Source != "" {
		cfg.Rates.Source = yamlCfg.Rates.Source
	}
	// rates.fixed_rate wins over the defaults alias
	setFloat(&cfg.Rates.FixedRate, d.RiskFreeRate)
	setFloat(&cfg.Rates.FixedRate, yamlCfg.Rates.FixedRate)
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func loadYAMLConfig() *YAMLConfig {
	data, err := os.ReadFile(ConfigFile)
	if err != nil {
		// Could not read config.yaml - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config.yaml - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
