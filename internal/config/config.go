package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DataFile      string `envconfig:"DATA_FILE" default:"trade_results.csv"`
	HistogramBins int    `envconfig:"HISTOGRAM_BINS" default:"40"`
	OutputFormat  string `envconfig:"OUTPUT_FORMAT" default:"text"`
	MetricsFile   string `envconfig:"METRICS_FILE" default:""`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Environment string `envconfig:"ENVIRONMENT" default:"production"`
}

func Load() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

func (c *Config) Development() bool {
	return c.Environment == "development"
}
