package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env          string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPPort     int           `yaml:"http_port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"10s"`
	DBPath       string        `yaml:"db_path" env:"DB_PATH" env-default:"messenger.db"`
	TemplateDir  string        `yaml:"template_dir" env:"TEMPLATE_DIR" env-default:"web/templates"`
	StaticDir    string        `yaml:"static_dir" env:"STATIC_DIR" env-default:"web/static"`
	SessionKey   string        `yaml:"session_key" env:"SESSION_KEY" env-default:"dev-secret-change-me"`
}

// MustLoad reads the config file named by --config or CONFIG_PATH.
// Without a file it falls back to environment variables and defaults.
func MustLoad() *Config {
	var cfg Config

	path := fetchConfigPath()
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("failed to read config from env: " + err.Error())
		}
		return &cfg
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
