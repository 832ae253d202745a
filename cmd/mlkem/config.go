package main

import (
	"bytes"
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/KarpelesLab/mlkem"
)

const configFileOption = "config.file"

// Config is the configuration of the mlkem tool. Flags set the defaults; a
// YAML file given with -config.file overrides them, and flags given
// explicitly on the command line override the file.
type Config struct {
	ParameterSet string `yaml:"parameter_set"`
	KeyDir       string `yaml:"key_dir"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
}

// RegisterFlags registers the flags of the configuration and sets their
// defaults.
func (c *Config) RegisterFlags(f *flag.FlagSet) {
	f.StringVar(&c.ParameterSet, "parameter-set", mlkem.MLKEM768.Name(), "ML-KEM parameter set: ML-KEM-512, ML-KEM-768 or ML-KEM-1024.")
	f.StringVar(&c.KeyDir, "key-dir", ".", "Directory holding the key and ciphertext files.")
	f.StringVar(&c.LogLevel, "log.level", "info", "Only log messages with the given severity or above. Valid levels: [debug, info, warn, error]")
	f.StringVar(&c.LogFormat, "log.format", "logfmt", "Output log messages in the given format. Valid formats: [logfmt, json]")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, err := mlkem.ParameterSetByName(c.ParameterSet); err != nil {
		return errors.Wrap(err, "invalid parameter_set")
	}
	if c.KeyDir == "" {
		return errors.New("key_dir must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "logfmt", "json":
	default:
		return errors.Errorf("invalid log_format %q", c.LogFormat)
	}
	return nil
}

// LoadConfig reads a YAML-formatted config from filename into cfg. Unknown
// fields are an error.
func LoadConfig(filename string, cfg *Config) error {
	buf, err := os.ReadFile(filename)
	if err != nil {
		return errors.Wrap(err, "Error reading config file")
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrap(err, "Error parsing config file")
	}
	return nil
}

// parseConfigFileParameter finds -config.file in args without touching the
// main flag set, so the file can be loaded before flags are parsed.
func parseConfigFileParameter(args []string) string {
	var configFile string
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&configFile, configFileOption, "", "")

	// Parsing stops at the first unknown flag, so retry from each position
	// until the option turns up.
	for len(args) > 0 {
		_ = fs.Parse(args)
		if configFile != "" {
			break
		}
		args = args[1:]
	}
	return configFile
}
