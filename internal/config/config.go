package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"lifequest/internal/engine"
)

// Config holds all LifeQuest configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	AI       AIConfig       `yaml:"ai"`
	Balance  BalanceConfig  `yaml:"balance"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"LIFEQUEST_DB"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LIFEQUEST_LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"LIFEQUEST_LOG_FILE"`   // empty logs to stderr
}

// AIConfig configures the Gemini-backed reward suggester and assistant.
type AIConfig struct {
	APIKey     string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model      string        `yaml:"model" env:"LIFEQUEST_AI_MODEL"`
	MaxRetries uint          `yaml:"max_retries"`
	Cooldown   time.Duration `yaml:"cooldown" env:"LIFEQUEST_AI_COOLDOWN"`
}

func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

type BalanceConfig struct {
	StarterMaxXP    int            `yaml:"starter_max_xp"`
	HabitCheckInXP  int            `yaml:"habit_checkin_xp"`
	HydrationGoal   int            `yaml:"hydration_goal"`
	HydrationGoalXP int            `yaml:"hydration_goal_xp"`
	QuestXP         map[string]int `yaml:"quest_xp"`
}

// Engine converts the YAML balance section into engine.Balance.
func (b BalanceConfig) Engine() engine.Balance {
	out := engine.Balance{
		StarterMaxXP:    b.StarterMaxXP,
		HabitCheckInXP:  b.HabitCheckInXP,
		HydrationGoal:   b.HydrationGoal,
		HydrationGoalXP: b.HydrationGoalXP,
		QuestXP:         engine.DefaultQuestXP(),
	}
	for k, v := range b.QuestXP {
		if d, ok := questXPKey(k); ok {
			out.QuestXP[d] = v
		}
	}
	return out
}

// questXPKey maps a quest_xp key to its difficulty. Only canonical names count.
func questXPKey(k string) (engine.QuestDifficulty, bool) {
	d := engine.QuestDifficulty(strings.ToLower(strings.TrimSpace(k)))
	return d, d.IsValid()
}

// Default returns the configuration used when no file or env overrides exist.
func Default() Config {
	b := engine.DefaultBalance()
	questXP := map[string]int{}
	for d, xp := range b.QuestXP {
		questXP[string(d)] = xp
	}
	return Config{
		Logging: LoggingConfig{Level: "warn"},
		AI: AIConfig{
			Model:      "gemini-2.5-flash",
			MaxRetries: 3,
			Cooldown:   time.Minute,
		},
		Balance: BalanceConfig{
			StarterMaxXP:    b.StarterMaxXP,
			HabitCheckInXP:  b.HabitCheckInXP,
			HydrationGoal:   b.HydrationGoal,
			HydrationGoalXP: b.HydrationGoalXP,
			QuestXP:         questXP,
		},
	}
}

// DefaultPath returns $LIFEQUEST_CONFIG or ~/.lifequest/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("LIFEQUEST_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".lifequest", "config.yaml"), nil
}

// Load reads the YAML file at path on top of Default, then applies environment
// overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Database.Path == "" {
		dbPath, err := defaultDBPath()
		if err != nil {
			return cfg, err
		}
		cfg.Database.Path = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func defaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".lifequest", "lifequest.db"), nil
}

func (c Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: logging.level %q must be debug|info|warn|error", c.Logging.Level)
	}
	if c.Balance.StarterMaxXP <= 0 {
		return fmt.Errorf("config: balance.starter_max_xp must be positive")
	}
	if c.Balance.HydrationGoal <= 0 {
		return fmt.Errorf("config: balance.hydration_goal must be positive")
	}
	if c.Balance.HabitCheckInXP < 0 || c.Balance.HydrationGoalXP < 0 {
		return fmt.Errorf("config: balance rewards must not be negative")
	}
	if c.Balance.StarterMaxXP < engine.MinMaxXP {
		return fmt.Errorf("config: balance.starter_max_xp must be at least %d", engine.MinMaxXP)
	}
	for k, v := range c.Balance.QuestXP {
		if _, ok := questXPKey(k); !ok {
			return fmt.Errorf("config: balance.quest_xp.%s is not a difficulty (easy|medium|hard|boss)", k)
		}
		if v <= 0 {
			return fmt.Errorf("config: balance.quest_xp.%s must be positive", k)
		}
	}
	if c.AI.Cooldown < 0 {
		return fmt.Errorf("config: ai.cooldown must not be negative")
	}
	return nil
}
