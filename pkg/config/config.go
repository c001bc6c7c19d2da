package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const envPrefix = "lojinha"

type Config struct {
	ListenAddr  string `envconfig:"LISTEN_ADDR" default:":5000"`
	PublicDir   string `envconfig:"PUBLIC_DIR" default:"public"`
	CatalogPath string `envconfig:"CATALOG_PATH" default:"public/static/products.json"`
	LogFile     string `envconfig:"LOG_FILE" default:"lojinha.log"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

// New reads .env (when present) and then LOJINHA_* environment variables.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "cannot process environment")
	}

	return &cfg, nil
}

// Flags binds command line flags to cfg. Environment values become the flag defaults.
func (c *Config) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Address for the server to listen on",
			Value:       c.ListenAddr,
			Destination: &c.ListenAddr,
		},
		&cli.StringFlag{
			Name:        "public-dir",
			Usage:       "Directory with the storefront UI",
			Value:       c.PublicDir,
			Destination: &c.PublicDir,
		},
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to the JSON file with the product catalog",
			Value:       c.CatalogPath,
			Destination: &c.CatalogPath,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "Log file path, empty to log to stderr",
			Value:       c.LogFile,
			Destination: &c.LogFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       c.LogLevel,
			Destination: &c.LogLevel,
		},
	}
}

func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return level, nil
}
