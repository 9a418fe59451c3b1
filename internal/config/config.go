package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/richardbizik/sendevents/internal/profile"
)

// ErrConfigurationMissing is returned by Validate when the Event Hub
// connection settings are absent.
var ErrConfigurationMissing = errors.New("EventHub configuration is missing. Please set EventHubConnectionString and EventHubName in the environment")

// DefaultSendTimeout applies when SendTimeout is not positive.
const DefaultSendTimeout = 60 * time.Second

type Config struct {
	HTTP     HTTPConfig     `yaml:"http" json:"http"`
	EventHub EventHubConfig `yaml:"eventHub" json:"eventHub"`
	Log      LogConfig      `yaml:"log" json:"log"`
}

type HTTPConfig struct {
	// Port is taken from FUNCTIONS_CUSTOMHANDLER_PORT when running as a custom handler
	Port string `yaml:"port" json:"port" env:"FUNCTIONS_CUSTOMHANDLER_PORT,HTTP_PORT" env-default:"8080"`
	// FunctionKey enables function level authorization on /api routes when set
	FunctionKey string `yaml:"functionKey" json:"-" env:"FUNCTIONS_KEY"`
}

type EventHubConfig struct {
	// ConnectionString is the namespace or hub level shared access connection string
	ConnectionString string `yaml:"connectionString" json:"-" env:"EventHubConnectionString"`
	// Name is the event hub the events are published to
	Name string `yaml:"name" json:"name" env:"EventHubName"`

	MaxBatchBytes int32         `yaml:"maxBatchBytes" json:"maxBatchBytes" env:"EVENTHUB_MAX_BATCH_BYTES" env-default:"1048576"`
	DialTimeout   time.Duration `yaml:"dialTimeout" json:"dialTimeout" env:"EVENTHUB_DIAL_TIMEOUT" env-default:"10s"`
	// SendTimeout bounds a single send, including metadata waits and dials
	SendTimeout time.Duration `yaml:"sendTimeout" json:"sendTimeout" env:"EVENTHUB_SEND_TIMEOUT" env-default:"60s"`
	TLS         TLSConfig     `yaml:"tls" json:"tls"`
}

type TLSConfig struct {
	CAPath string `yaml:"caPath" json:"caPath" env:"EVENTHUB_TLS_CA_PATH"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Validate reports ErrConfigurationMissing when either the connection string
// or the event hub name is empty.
func (c EventHubConfig) Validate() error {
	if c.ConnectionString == "" || c.Name == "" {
		return ErrConfigurationMissing
	}
	if c.MaxBatchBytes <= 0 {
		return fmt.Errorf("invalid max batch bytes %d: must be positive", c.MaxBatchBytes)
	}
	return nil
}

func (c EventHubConfig) SendTimeoutOrDefault() time.Duration {
	if c.SendTimeout <= 0 {
		return DefaultSendTimeout
	}
	return c.SendTimeout
}

// SlogLevel parses Level, falling back to info on unknown values.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads an optional .env file, then the profile config file when one is
// present, and finally the environment. Environment values take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	c := Config{}
	fileName := configFileName()
	if fileName == "" {
		if err := cleanenv.ReadEnv(&c); err != nil {
			return Config{}, fmt.Errorf("unable to read config from environment: %w", err)
		}
		return c, nil
	}
	if err := cleanenv.ReadConfig(fileName, &c); err != nil {
		return Config{}, fmt.Errorf("unable to read config file %s: %w", fileName, err)
	}
	return c, nil
}

func configFileName() string {
	if confFile := os.Getenv("CONFIG_FILE"); confFile != "" {
		return confFile
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	fileName := fmt.Sprintf("%s/conf-%s.yaml", wd, strings.ToLower(string(profile.Current)))
	if _, err := os.Stat(fileName); err != nil {
		return ""
	}
	return fileName
}
