package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"studiodesk/internal/model"
)

type DBConfig struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Name     string `yaml:"name" validate:"required"`
}

type MQConfig struct {
	URL string `yaml:"url" validate:"required"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"required"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret" validate:"required"`
}

type ServerConfig struct {
	Port string `yaml:"port" validate:"required"`
}

// LicenseConfig replaces the original hosted license lookup: the studio
// key is checked at login and the result cached.
type LicenseConfig struct {
	Key string `yaml:"key"`
}

type WorkerConfig struct {
	OverdueSweepMinutes int `yaml:"overdue_sweep_minutes"`
}

// StudioConfig is the studio identity printed on receipts and reports.
type StudioConfig struct {
	Name string `yaml:"name"`
}

// StageTemplateConfig seeds the stage_templates table on first boot.
type StageTemplateConfig struct {
	Name             string `yaml:"name" validate:"required"`
	DurationWorkDays int    `yaml:"duration_work_days" validate:"gte=0"`
}

type Config struct {
	Server      ServerConfig          `yaml:"server"`
	DB          DBConfig              `yaml:"db"`
	MQ          MQConfig              `yaml:"mq"`
	Redis       RedisConfig           `yaml:"redis"`
	JWT         JWTConfig             `yaml:"jwt"`
	License     LicenseConfig         `yaml:"license"`
	Studio      StudioConfig          `yaml:"studio"`
	Worker      WorkerConfig          `yaml:"worker"`
	Templates   []StageTemplateConfig `yaml:"stage_templates"`
	PhaseGroups []model.PhaseGroup    `yaml:"phase_groups"`
}

// Load reads the YAML config at path, applies environment overrides and
// validates required fields.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	overrideFromEnv(&cfg)

	if cfg.Worker.OverdueSweepMinutes <= 0 {
		cfg.Worker.OverdueSweepMinutes = 60
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if key := os.Getenv("LICENSE_KEY"); key != "" {
		cfg.License.Key = key
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
}
