package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type EmailConfig struct {
	Primary   SMTPConfig `yaml:"primary"`
	Fallback  SMTPConfig `yaml:"fallback"` // optional; empty host disables it
	FromEmail string     `yaml:"from_email"`
	FromName  string     `yaml:"from_name"`
}

type PSGCConfig struct {
	BaseURL      string `yaml:"base_url"`
	CacheMinutes int    `yaml:"cache_minutes"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token"`
	AdminChatID int64  `yaml:"admin_chat_id"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret string `yaml:"secret"`
	} `yaml:"jwt"`
	Email    EmailConfig    `yaml:"email"`
	PSGC     PSGCConfig     `yaml:"psgc"`
	Telegram TelegramConfig `yaml:"telegram"`
	Files    FilesConfig    `yaml:"files"`
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	f, err := os.Open(path)
	if err != nil {
		panic("Failed to open config: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config: " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.PSGC.BaseURL == "" {
		cfg.PSGC.BaseURL = "https://psgc.gitlab.io/api"
	}
	if cfg.PSGC.CacheMinutes <= 0 {
		cfg.PSGC.CacheMinutes = 720
	}
	return &cfg
}
