package config

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/daedaleanai/sqcfg/log"
	"github.com/daedaleanai/sqcfg/toolchain"
	"github.com/daedaleanai/sqcfg/util"
)

type Config struct {
	// ProbeTimeout bounds the libc probe compile.
	ProbeTimeout time.Duration
	// CacheFile is where persisted option values live.
	CacheFile string
	// Options are option values, keyed by option name.
	Options map[string]string
	// Facts override the facts derived from the host environment.
	Facts toolchain.BuildEnvironmentFacts
}

const configFileName = "config"

var config *Config

func getConfigDir(environment map[string]string) (string, error) {
	if configDir, ok := environment["SQCFG_CONFIG_DIR"]; ok {
		return configDir, nil
	}

	if xdgConfigHome, ok := environment["XDG_CONFIG_HOME"]; ok {
		return path.Join(xdgConfigHome, "sqcfg"), nil
	}

	homeDir, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("unable to locate the configuration directory: %w", err)
	}
	return path.Join(homeDir, ".config", "sqcfg"), nil
}

// Load reads config.yaml from `configDir`. A missing file yields the defaults.
// Every key can also be set through SQCFG_<KEY> environment variables.
func Load(configDir string) (Config, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	defaults := defaultConfig()
	v.SetDefault("probe_timeout", defaults.ProbeTimeout)
	v.SetDefault("cache_file", defaults.CacheFile)
	v.SetEnvPrefix("SQCFG")
	v.AutomaticEnv()
	if configDir != "" {
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading configuration: %w", err)
		}
		log.Debug("No configuration file in '%s'. Using default configuration.\n", configDir)
	} else {
		log.Debug("Loaded configuration from '%s'.\n", v.ConfigFileUsed())
	}

	cfg := Config{
		ProbeTimeout: v.GetDuration("probe_timeout"),
		CacheFile:    v.GetString("cache_file"),
		Options:      map[string]string{},
	}

	// viper lowercases keys, option names are upper case.
	for name, value := range v.GetStringMapString("options") {
		cfg.Options[strings.ToUpper(name)] = value
	}

	if err := v.UnmarshalKey("facts", &cfg.Facts); err != nil {
		return Config{}, fmt.Errorf("decoding facts from configuration: %w", err)
	}

	log.Debug("Running with configuration: %+v\n", cfg)
	return cfg, nil
}

// GetConfig loads the configuration once and returns it on every call.
// Errors are reported and replaced by the default configuration.
func GetConfig() Config {
	if config == nil {
		loaded := loadConfiguration()
		config = &loaded
	}
	return *config
}

func loadConfiguration() Config {
	configDir, err := getConfigDir(util.Environment())
	if err != nil {
		log.Debug("%s. Using default configuration.\n", err)
		configDir = ""
	}

	cfg, err := Load(configDir)
	if err != nil {
		log.Warning("%s. Using default configuration.\n", err)
		return defaultConfig()
	}
	return cfg
}

func defaultConfig() Config {
	return Config{
		ProbeTimeout: toolchain.DefaultProbeTimeout,
		CacheFile:    util.CacheFileName,
		Options:      map[string]string{},
	}
}
