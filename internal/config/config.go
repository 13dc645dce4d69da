package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"CRM_ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`

	DBUser     string `yaml:"db_user" env:"CRM_DB_USER" env-default:"crm"`
	DBPassword string `yaml:"db_password" env:"CRM_DB_PASSWORD" env-default:""`
	DBHost     string `yaml:"db_host" env:"CRM_DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"CRM_DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"CRM_DB_NAME" env-default:"crm"`

	CORSOrigins []string `yaml:"cors_origins" env-default:"http://localhost:5173"`

	JWTSecret  string `yaml:"jwt_secret" env:"CRM_JWT_SECRET" env-default:"dev-secret"`
	AdminLogin string `yaml:"admin_login" env:"CRM_ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"CRM_ADMIN_PASS"`

	// Single-slot deal draft persisted between sessions.
	DraftPath string `yaml:"draft_path" env-default:"./dealDraft.json"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"CRM_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		// config file is optional in containers, env vars still apply
		if envErr := cleanenv.ReadEnv(&cfg); envErr != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	}

	return &cfg
}
