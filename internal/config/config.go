package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config - настройки бота
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`

	// Чат автора открытки: сюда приходят итоги викторины, 0 - не слать
	OwnerChatID int64 `yaml:"owner_chat_id"`

	Content ContentConfig `yaml:"content"`
	Effects EffectsConfig `yaml:"effects"`
	Logging LoggingConfig `yaml:"logging"`
}

type TelegramConfig struct {
	Token         string `yaml:"token"`
	Debug         bool   `yaml:"debug"`
	UpdateTimeout int    `yaml:"update_timeout"` // секунды long polling
}

type ContentConfig struct {
	File          string `yaml:"file"`
	QuestionsFile string `yaml:"questions_file"`
	Watch         bool   `yaml:"watch"`
	WatchDebounce string `yaml:"watch_debounce"`
}

type EffectsConfig struct {
	HeroConfettiDelay   string `yaml:"hero_confetti_delay"`
	FinalConfettiDelay  string `yaml:"final_confetti_delay"`
	AnswerPause         string `yaml:"answer_pause"`
	SlideInterval       string `yaml:"slide_interval"`
	LetterFrameInterval string `yaml:"letter_frame_interval"`
	LetterRunesPerFrame int    `yaml:"letter_runes_per_frame"`
	SectionPause        string `yaml:"section_pause"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

var ErrMissingToken = errors.New("telegram token is required (TELEGRAM_BOT_TOKEN)")

func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			UpdateTimeout: 60,
		},
		Content: ContentConfig{
			File:          "content.yaml",
			QuestionsFile: "questions.txt",
			Watch:         true,
			WatchDebounce: "250ms",
		},
		Effects: EffectsConfig{
			HeroConfettiDelay:   "1s",
			FinalConfettiDelay:  "500ms",
			AnswerPause:         "0s",
			SlideInterval:       "5s",
			LetterFrameInterval: "1s",
			LetterRunesPerFrame: 60,
			SectionPause:        "700ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load читает YAML поверх дефолтов, затем .env и переменные окружения.
// Отсутствующий файл - не ошибка.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// .env необязателен
	_ = godotenv.Load()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}
	if owner := os.Getenv("VALENTINE_OWNER_CHAT_ID"); owner != "" {
		id, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid VALENTINE_OWNER_CHAT_ID: %w", err)
		}
		c.OwnerChatID = id
	}
	if path := os.Getenv("VALENTINE_CONTENT"); path != "" {
		c.Content.File = path
	}
	if path := os.Getenv("VALENTINE_QUESTIONS"); path != "" {
		c.Content.QuestionsFile = path
	}
	if level := os.Getenv("VALENTINE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	if c.Effects.LetterRunesPerFrame <= 0 {
		return fmt.Errorf("letter_runes_per_frame must be positive, got %d", c.Effects.LetterRunesPerFrame)
	}
	return nil
}

func (c *Config) GetWatchDebounce() time.Duration {
	return parseDuration(c.Content.WatchDebounce, 250*time.Millisecond)
}

func (c *Config) GetHeroConfettiDelay() time.Duration {
	return parseDuration(c.Effects.HeroConfettiDelay, time.Second)
}

func (c *Config) GetFinalConfettiDelay() time.Duration {
	return parseDuration(c.Effects.FinalConfettiDelay, 500*time.Millisecond)
}

func (c *Config) GetAnswerPause() time.Duration {
	return parseDuration(c.Effects.AnswerPause, 0)
}

func (c *Config) GetSlideInterval() time.Duration {
	return parseDuration(c.Effects.SlideInterval, 5*time.Second)
}

func (c *Config) GetLetterFrameInterval() time.Duration {
	return parseDuration(c.Effects.LetterFrameInterval, time.Second)
}

func (c *Config) GetSectionPause() time.Duration {
	return parseDuration(c.Effects.SectionPause, 700*time.Millisecond)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
