// Package config loads the service configuration from defaults, HRM_*
// environment variables, flags and an optional yaml file.
package config

import (
	"os"
	"time"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Namespace prefixes every environment variable, e.g. HRM_MONGO_URI.
const Namespace = "HRM"

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Web struct {
	Address         string        `conf:"default:0.0.0.0:5000"        yaml:"address"`
	ReadTimeout     time.Duration `conf:"default:10s"                 yaml:"read_timeout"`
	WriteTimeout    time.Duration `conf:"default:30s"                 yaml:"write_timeout"`
	ShutdownTimeout time.Duration `conf:"default:10s"                 yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `conf:"default:http://localhost:5173" yaml:"allowed_origins"`
	Environment     string        `conf:"default:development"         yaml:"environment"`
}

type Mongo struct {
	URI            string        `conf:"default:mongodb://localhost:27017,noprint" yaml:"uri"`
	Name           string        `conf:"default:hrm"                               yaml:"name"`
	ConnectTimeout time.Duration `conf:"default:10s"                               yaml:"connect_timeout"`
}

type Auth struct {
	Secret   string        `conf:"noprint"       yaml:"secret"`
	TokenTTL time.Duration `conf:"default:720h"  yaml:"token_ttl"`
}

type Redis struct {
	Addr        string        `yaml:"addr"`
	Password    string        `conf:"noprint"     yaml:"password"`
	DB          int           `yaml:"db"`
	MaxAttempts int           `conf:"default:5"   yaml:"max_attempts"`
	Window      time.Duration `conf:"default:15m" yaml:"window"`
}

type Mail struct {
	Host     string `yaml:"host"`
	Port     int    `conf:"default:587" yaml:"port"`
	User     string `yaml:"user"`
	Password string `conf:"noprint"     yaml:"password"`
	From     string `yaml:"from"`
}

type Media struct {
	Dir    string `conf:"default:uploads"  yaml:"dir"`
	Prefix string `conf:"default:/uploads" yaml:"prefix"`
}

type Admin struct {
	Name     string `conf:"default:Administrator" yaml:"name"`
	Email    string `yaml:"email"`
	Password string `conf:"noprint" yaml:"password"`
}

type Config struct {
	Args       conf.Args `yaml:"-"`
	ConfigFile string    `conf:"help:optional yaml file overlaying the parsed values" yaml:"-"`
	Web        Web       `yaml:"web"`
	Mongo      Mongo     `yaml:"mongo"`
	Auth       Auth      `yaml:"auth"`
	Redis      Redis     `yaml:"redis"`
	Mail       Mail      `yaml:"mail"`
	Media      Media     `yaml:"media"`
	Admin      Admin     `yaml:"admin"`
}

// Load parses args and the environment into a Config. conf.ErrHelpWanted
// is returned unchanged so the caller can print Usage.
func Load(args []string) (Config, error) {
	var cfg Config

	if err := conf.Parse(args, Namespace, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.ConfigFile != "" {
		data, err := os.ReadFile(cfg.ConfigFile)
		if err != nil {
			return Config{}, errors.Wrap(err, "reading config file")
		}
		if err = Overlay(&cfg, data); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Overlay replaces the values of cfg with the ones present in the yaml
// document. Keys missing from the document keep their parsed value.
func Overlay(cfg *Config, data []byte) error {
	return errors.Wrap(yaml.Unmarshal(data, cfg), "parsing config file")
}

func (c Config) Validate() error {
	if c.Auth.Secret == "" {
		return errors.New("auth secret is required (HRM_AUTH_SECRET)")
	}
	if c.Mongo.URI == "" {
		return errors.New("mongo uri is required (HRM_MONGO_URI)")
	}
	if c.Web.Environment != EnvDevelopment && c.Web.Environment != EnvProduction {
		return errors.Errorf("environment must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Web.Environment)
	}
	return nil
}

func (c Config) Production() bool {
	return c.Web.Environment == EnvProduction
}

// Usage describes every option for --help.
func Usage() (string, error) {
	var cfg Config
	return conf.Usage(Namespace, &cfg)
}

// String renders the configuration without secrets for the startup log.
func (c Config) String() string {
	out, err := conf.String(&c)
	if err != nil {
		return err.Error()
	}
	return out
}
