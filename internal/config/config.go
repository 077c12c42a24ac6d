package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type TaskConfig struct {
	Env          string `yaml:"env"`
	HTTPServer   `yaml:"http_server"`
	TaskDB       `yaml:"task_db"`
	JWT          `yaml:"jwt"`
	LogConfig    `yaml:"log_config"`
	KafkaService `yaml:"kafka-service"`
	EmailService `yaml:"email-service"`
	Upload       `yaml:"upload"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type TaskDB struct {
	Dsn           string `yaml:"dsn"`
	MigrationPath string `yaml:"migration_path"`
}

type JWT struct {
	Secret   string `yaml:"secret" env:"JWT_SECRET"`
	TTLHours int    `yaml:"ttl_hours" env-default:"24"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Enabled bool   `yaml:"enabled"`
}

type EmailService struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key" env:"PLUNK_API_KEY"`
	FrontendURL string `yaml:"frontend_url"`
}

type Upload struct {
	Dir       string `yaml:"dir" env-default:"./uploads"`
	MaxSizeMB int    `yaml:"max_size_mb" env-default:"5"`
}

func MustLoad() *TaskConfig {

	// Processing env config variable and file
	configPath := os.Getenv("TASK_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("TASK_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg TaskConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
