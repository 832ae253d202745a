// Command mlkem generates ML-KEM key pairs and encapsulates and decapsulates
// shared keys, keeping keys and ciphertexts as hex files in a key directory.
//
// Usage:
//
//	mlkem [flags] keygen [-seed hex]
//	mlkem [flags] encaps
//	mlkem [flags] decaps [-ciphertext path]
//	mlkem [flags] params
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/KarpelesLab/mlkem"
)

// Files kept in the key directory.
const (
	encapsulationKeyFile = "encapsulation.key"
	decapsulationKeyFile = "decapsulation.key"
	seedFile             = "decapsulation.seed"
	ciphertextFile       = "ciphertext"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

// run executes the tool with the given arguments. Results go to stdout and
// log messages to stderr.
func run(args []string, stdout, stderr io.Writer) error {
	var cfg Config

	fs := flag.NewFlagSet("mlkem", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: mlkem [flags] keygen|encaps|decaps|params [command flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	// This sets default values from flags to the config.
	// It needs to be called before parsing the config file!
	cfg.RegisterFlags(fs)

	if configFile := parseConfigFileParameter(args); configFile != "" {
		if err := LoadConfig(configFile, &cfg); err != nil {
			return errors.Wrapf(err, "loading config from %s", configFile)
		}
	}
	// Already handled above, but still present on the command line.
	fs.String(configFileOption, "", "Configuration file to load.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "validating config")
	}

	logger := newLogger(&cfg, stderr)
	p, _ := mlkem.ParameterSetByName(cfg.ParameterSet)

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	logger = log.With(logger, "cmd", cmd, "param_set", p.Name())

	var err error
	switch cmd {
	case "keygen":
		err = keygen(p, &cfg, cmdArgs, logger)
	case "encaps":
		err = encaps(p, &cfg, stdout, logger)
	case "decaps":
		err = decaps(p, &cfg, cmdArgs, stdout, logger)
	case "params":
		err = params(stdout)
	default:
		fs.Usage()
		return errors.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		level.Error(logger).Log("msg", "command failed", "err", err)
		return err
	}
	return nil
}

func newLogger(cfg *Config, w io.Writer) log.Logger {
	var logger log.Logger
	if cfg.LogFormat == "json" {
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	} else {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	}

	var opt level.Option
	switch cfg.LogLevel {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)
}

func keygen(p *mlkem.ParameterSet, cfg *Config, args []string, logger log.Logger) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	seedHex := fs.String("seed", "", "Hex-encoded 64-byte seed. A random seed is used when empty.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		dk  *mlkem.DecapsulationKey
		err error
	)
	if *seedHex != "" {
		seed, derr := hex.DecodeString(*seedHex)
		if derr != nil {
			return errors.Wrap(derr, "decoding seed")
		}
		dk, err = p.NewDecapsulationKey(seed)
	} else {
		dk, err = p.GenerateKey(rand.Reader)
	}
	if err != nil {
		return errors.Wrap(err, "generating key")
	}
	defer dk.Destroy()

	if err := os.MkdirAll(cfg.KeyDir, 0o700); err != nil {
		return errors.Wrap(err, "creating key directory")
	}
	if err := writeHex(cfg.KeyDir, decapsulationKeyFile, dk.Bytes(), 0o600); err != nil {
		return err
	}
	if err := writeHex(cfg.KeyDir, seedFile, dk.Seed(), 0o600); err != nil {
		return err
	}
	ek := dk.EncapsulationKey().Bytes()
	if err := writeHex(cfg.KeyDir, encapsulationKeyFile, ek, 0o644); err != nil {
		return err
	}

	level.Info(logger).Log("msg", "generated key pair", "key_dir", cfg.KeyDir, "ek_size", len(ek))
	return nil
}

func encaps(p *mlkem.ParameterSet, cfg *Config, stdout io.Writer, logger log.Logger) error {
	b, err := readHex(cfg.KeyDir, encapsulationKeyFile)
	if err != nil {
		return err
	}
	ek, err := p.NewEncapsulationKey(b)
	if err != nil {
		return errors.Wrap(err, "parsing encapsulation key")
	}

	ct, sharedKey, err := ek.Encapsulate(rand.Reader)
	if err != nil {
		return errors.Wrap(err, "encapsulating")
	}
	if err := writeHex(cfg.KeyDir, ciphertextFile, ct, 0o644); err != nil {
		return err
	}

	level.Info(logger).Log("msg", "encapsulated shared key", "ciphertext_size", len(ct))
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(sharedKey))
	return err
}

func decaps(p *mlkem.ParameterSet, cfg *Config, args []string, stdout io.Writer, logger log.Logger) error {
	fs := flag.NewFlagSet("decaps", flag.ContinueOnError)
	ctPath := fs.String("ciphertext", filepath.Join(cfg.KeyDir, ciphertextFile), "Path of the hex-encoded ciphertext.")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := readHex(cfg.KeyDir, decapsulationKeyFile)
	if err != nil {
		return err
	}
	dk, err := p.ParseDecapsulationKey(b)
	clear(b)
	if err != nil {
		return errors.Wrap(err, "parsing decapsulation key")
	}
	defer dk.Destroy()

	ct, err := readHexFile(*ctPath)
	if err != nil {
		return err
	}
	sharedKey, err := dk.Decapsulate(ct)
	if err != nil {
		return errors.Wrap(err, "decapsulating")
	}

	level.Debug(logger).Log("msg", "decapsulated shared key", "ciphertext", *ctPath)
	_, err = fmt.Fprintln(stdout, hex.EncodeToString(sharedKey))
	return err
}

func params(stdout io.Writer) error {
	if _, err := fmt.Fprintf(stdout, "%-12s %8s %8s %8s %8s\n", "name", "ek", "dk", "ct", "ss"); err != nil {
		return err
	}
	for _, p := range mlkem.ParameterSets() {
		if _, err := fmt.Fprintf(stdout, "%-12s %8d %8d %8d %8d\n", p.Name(),
			p.EncapsulationKeySize(), p.DecapsulationKeySize(), p.CiphertextSize(), p.SharedKeySize()); err != nil {
			return err
		}
	}
	return nil
}

func writeHex(dir, name string, b []byte, perm os.FileMode) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(hex.EncodeToString(b)+"\n"), perm); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func readHex(dir, name string) ([]byte, error) {
	return readHexFile(filepath.Join(dir, name))
}

func readHexFile(path string) ([]byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return b, nil
}
