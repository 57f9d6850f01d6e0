package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/jokeraudit"
	"github.com/agentstation/jokeraudit/cmd/application"
	"github.com/agentstation/jokeraudit/pkg/errors"
	"github.com/agentstation/jokeraudit/pkg/extract"
)

// envPrefix namespaces environment overrides, e.g. JOKERAUDIT_DOCUMENT.
const envPrefix = "JOKERAUDIT"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Audit inputs
	Document  string
	Source    string
	Registry  string
	Construct string
	Target    int

	// API server
	Host string
	Port int

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. Environment variables
//  3. .env files
//  4. Config file (configFile, or .jokeraudit.yaml in the working or home directory)
//  5. Defaults
//
// A missing default config file is not an error; an explicit one is.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// The serve command also honors the conventional HTTP_* variables.
	_ = v.BindEnv("host", envPrefix+"_HOST", "HTTP_HOST")
	_ = v.BindEnv("port", envPrefix+"_PORT", "HTTP_PORT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("file", fmt.Sprintf("cannot read %s", configFile), err)
		}
	} else {
		v.SetConfigName(".jokeraudit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("file", "cannot parse config file", err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Document:  v.GetString("document"),
		Source:    v.GetString("source"),
		Registry:  v.GetString("registry"),
		Construct: v.GetString("construct"),
		Target:    v.GetInt("target"),

		Host: v.GetString("host"),
		Port: v.GetInt("port"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log.level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log.format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log.output")),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("document", jokeraudit.DefaultDocumentPath)
	v.SetDefault("source", jokeraudit.DefaultSourcePath)
	v.SetDefault("construct", extract.DefaultConstruct)
	v.SetDefault("target", jokeraudit.DefaultTarget)
	v.SetDefault("host", application.DefaultHost)
	v.SetDefault("port", application.DefaultPort)
	v.SetDefault("log.format", "auto")
	v.SetDefault("log.output", "stderr")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Target < 0 {
		return errors.NewConfigError("target", fmt.Sprintf("must not be negative, got %d", c.Target), nil)
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.NewConfigError("port", fmt.Sprintf("out of range: %d", c.Port), nil)
	}
	if c.Registry != "" && !extract.IsRegistryFile(c.Registry) {
		return errors.NewConfigError("registry", fmt.Sprintf("%s must be a .yaml, .yml or .json file", c.Registry), nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Settings returns the audit and server settings.
func (c *Config) Settings() application.Settings {
	return application.Settings{
		Document:  c.Document,
		Source:    c.Source,
		Registry:  c.Registry,
		Construct: c.Construct,
		Target:    c.Target,
		Host:      c.Host,
		Port:      c.Port,
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so its values win; godotenv never overrides
// variables that are already set.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
