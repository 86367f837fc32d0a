package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	envConfigLocation = "PLAYPUB_CONFIG"
	dotEnvFile        = ".env"
)

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	Email     string `json:"email" yaml:"email" mapstructure:"email"`                                 // Service account identity
	KeyFile   string `json:"keyFile" yaml:"keyFile" mapstructure:"keyFile"`                           // Service account key
	LogLevel  string `json:"logLevel" yaml:"logLevel" mapstructure:"logLevel"`                        // Logging level
	ChunkSize string `json:"chunkSize,omitempty" yaml:"chunkSize,omitempty" mapstructure:"chunkSize"` // Upload chunk size
}

// newSettings reads the config file and binds environment variables
func newSettings() *viper.Viper {
	settings := viper.New()
	settings.SetFs(appFs)
	if location := os.Getenv(envConfigLocation); location != "" {
		settings.SetConfigFile(location)
	} else {
		settings.AddConfigPath(".")
		settings.AddConfigPath("$HOME/.playpub")
		settings.SetConfigName("playpub")
		settings.SetConfigType("yaml")
	}

	_ = settings.BindEnv("email", "SERVICE_ACCOUNT_EMAIL")
	_ = settings.BindEnv("keyFile", "PLAYPUB_KEY_FILE")
	_ = settings.BindEnv("logLevel", "PLAYPUB_LOGLEVEL")
	_ = settings.BindEnv("chunkSize", "PLAYPUB_CHUNK_SIZE")
	return settings
}

func newConfig(settings *viper.Viper) (*CLIConfig, error) {
	var config CLIConfig
	err := settings.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setPlaypubParams fills flags which are not set on the command line
func (c *CLIConfig) setPlaypubParams(flags *flagsT) {
	if flags.auth.email == "" {
		flags.auth.email = c.Email
	}
	if flags.auth.keyFile == "" {
		flags.auth.keyFile = c.KeyFile
	}
	if flags.root.logLevel == "" {
		flags.root.logLevel = c.LogLevel
	}
	if flags.publish.chunkSize == "" {
		flags.publish.chunkSize = c.ChunkSize
	}
	flags.applyDefaults()
}

// MarshalConfig serializes the config as a yaml document
func (c CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// loadDotEnv merges the variables found in a .env file into the environment.
//
// Variables already set in the environment are left untouched.
func loadDotEnv() {
	dotEnv := viper.New()
	dotEnv.SetFs(appFs)
	dotEnv.SetConfigFile(dotEnvFile)
	dotEnv.SetConfigType("env")
	if err := dotEnv.ReadInConfig(); err != nil {
		return
	}
	for _, key := range dotEnv.AllKeys() {
		name := strings.ToUpper(key)
		if _, isSet := os.LookupEnv(name); isSet {
			continue
		}
		_ = os.Setenv(name, dotEnv.GetString(key))
	}
}

func configFileLocation(expandHome bool) string {
	if location := os.Getenv(envConfigLocation); location != "" {
		return location
	}
	home := "$HOME"
	if expandHome {
		if dir, err := os.UserHomeDir(); err == nil {
			home = dir
		}
	}
	return filepath.Join(home, ".playpub", "playpub.yaml")
}

// configCmd represents the config related commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage a config",
	Long: `Commands to manage playpub CLI config.

Configuration for playpub is the common set of flags that are needed for most commands and do not change across runs,
such as the service account identity and key.`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
