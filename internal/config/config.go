// Package config loads the game's balance tuning and runtime settings from a
// YAML file, with environment overrides for deployment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete runtime configuration.
type Config struct {
	Balance  Balance `yaml:"balance"`
	Storage  Storage `yaml:"storage"`
	Server   Server  `yaml:"server"`
	LogLevel string  `yaml:"log_level"`
}

// Balance holds every tunable number of the simulation.
type Balance struct {
	Seed int64 `yaml:"seed"` // 0 draws a fresh seed for each new game

	StartingCash       int `yaml:"starting_cash"`
	StartingReputation int `yaml:"starting_reputation"`
	StartingHeat       int `yaml:"starting_heat"`
	StartingIntel      int `yaml:"starting_intel"`
	StartingInfluence  int `yaml:"starting_influence"`
	StartingOfficers   int `yaml:"starting_officers"`
	StartingSoldiers   int `yaml:"starting_soldiers"`

	Stipend          int     `yaml:"stipend"`
	DailyEventChance float64 `yaml:"daily_event_chance"`
	HeatCooling      int     `yaml:"heat_cooling"`
	TradeIncome      int     `yaml:"trade_income"`

	RecruitCost          int `yaml:"recruit_cost"`
	TrainCost            int `yaml:"train_cost"`
	SpecializeCost       int `yaml:"specialize_cost"`
	BonusCost            int `yaml:"bonus_cost"`
	PromotionCost        int `yaml:"promotion_cost"`
	PromotionFace        int `yaml:"promotion_face"`
	BailCost             int `yaml:"bail_cost"`
	ReclaimCost          int `yaml:"reclaim_cost"`
	ReclaimSoldiers      int `yaml:"reclaim_soldiers"`
	ScoutIntelCost       int `yaml:"scout_intel_cost"`
	TradeCost            int `yaml:"trade_cost"`
	TradeRelationship    int `yaml:"trade_relationship"`
	AllianceRelationship int `yaml:"alliance_relationship"`
	AllianceInfluence    int `yaml:"alliance_influence"`
	PeaceCostPerStrength int `yaml:"peace_cost_per_strength"`
}

// Storage selects the save backend.
type Storage struct {
	Dialect     string `yaml:"dialect"` // "sqlite" or "postgres"
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
	Slot        string `yaml:"slot"`
}

// Server configures the HTTP API.
type Server struct {
	Port        int    `yaml:"port"`
	AdminKey    string `yaml:"admin_key"`
	CommandRate int    `yaml:"command_rate"` // per client per minute
}

// Default returns the shipped balance and settings.
func Default() Config {
	return Config{
		Balance: DefaultBalance(),
		Storage: Storage{
			Dialect:    "sqlite",
			SQLitePath: "data/syndicate.db",
			Slot:       "autosave",
		},
		Server: Server{
			Port:        8080,
			CommandRate: 120,
		},
		LogLevel: "info",
	}
}

// DefaultBalance returns the shipped balance numbers.
func DefaultBalance() Balance {
	return Balance{
		Seed:               0,
		StartingCash:       10000,
		StartingReputation: 30,
		StartingHeat:       20,
		StartingIntel:      20,
		StartingInfluence:  20,
		StartingOfficers:   4,
		StartingSoldiers:   6,

		Stipend:          50,
		DailyEventChance: 0.35,
		HeatCooling:      2,
		TradeIncome:      200,

		RecruitCost:          300,
		TrainCost:            200,
		SpecializeCost:       500,
		BonusCost:            1000,
		PromotionCost:        5000,
		PromotionFace:        50,
		BailCost:             2000,
		ReclaimCost:          2000,
		ReclaimSoldiers:      3,
		ScoutIntelCost:       15,
		TradeCost:            1000,
		TradeRelationship:    20,
		AllianceRelationship: 60,
		AllianceInfluence:    30,
		PeaceCostPerStrength: 20,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from KOWLOON_* environment variables.
func (c *Config) ApplyEnv() {
	c.Storage.Dialect = envOrDefault("KOWLOON_DB_DIALECT", c.Storage.Dialect)
	c.Storage.SQLitePath = envOrDefault("KOWLOON_DB_PATH", c.Storage.SQLitePath)
	c.Storage.PostgresDSN = envOrDefault("KOWLOON_POSTGRES_DSN", c.Storage.PostgresDSN)
	c.Storage.Slot = envOrDefault("KOWLOON_SAVE_SLOT", c.Storage.Slot)
	c.Server.Port = envIntOrDefault("KOWLOON_PORT", c.Server.Port)
	c.Server.AdminKey = envOrDefault("KOWLOON_ADMIN_KEY", c.Server.AdminKey)
	c.LogLevel = envOrDefault("KOWLOON_LOG_LEVEL", c.LogLevel)
	if seed := os.Getenv("KOWLOON_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Balance.Seed = v
		}
	}
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
