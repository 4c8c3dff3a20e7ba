// Package config loads onboard settings from defaults, an optional YAML
// file and ONBOARD_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "onboard.yaml"

// Config holds application configuration.
type Config struct {
	Theme        string          `mapstructure:"theme"`
	Mode         string          `mapstructure:"mode"`
	InitialStep  int             `mapstructure:"initial_step"`
	LogFile      string          `mapstructure:"log_file"`
	Verbose      bool            `mapstructure:"verbose"`
	OutputFormat string          `mapstructure:"output_format"`
	Directory    DirectoryConfig `mapstructure:"directory"`
	Upload       UploadConfig    `mapstructure:"upload"`
}

// DirectoryConfig seeds the uniqueness directory.
type DirectoryConfig struct {
	UserNames []string      `mapstructure:"usernames"`
	Emails    []string      `mapstructure:"emails"`
	Latency   time.Duration `mapstructure:"latency"`
}

// UploadConfig limits the profile image drop zone.
type UploadConfig struct {
	MaxFiles int   `mapstructure:"max_files"`
	MaxBytes int64 `mapstructure:"max_bytes"`
}

// Load reads configuration. An empty path looks for onboard.yaml in the
// working directory; a missing default file is not an error, a missing
// explicit file is.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("theme", "")
	v.SetDefault("mode", "onSubmit")
	v.SetDefault("initial_step", 1)
	v.SetDefault("log_file", filepath.Join(os.TempDir(), "onboard.log"))
	v.SetDefault("verbose", false)
	v.SetDefault("output_format", "yaml")
	v.SetDefault("directory.usernames", []string{"john_doe", "jane_smith", "admin"})
	v.SetDefault("directory.emails", []string{"admin@admin.com", "root@root.com"})
	v.SetDefault("directory.latency", 500*time.Millisecond)
	v.SetDefault("upload.max_files", 1)
	v.SetDefault("upload.max_bytes", int64(5<<20))

	v.SetConfigType("yaml")
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultFile, filepath.Ext(DefaultFile)))
	}

	v.SetEnvPrefix("ONBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges that viper cannot express.
func (c Config) Validate() error {
	switch c.OutputFormat {
	case "yaml", "json":
	default:
		return fmt.Errorf("config: output_format must be yaml or json, got %q", c.OutputFormat)
	}
	switch strings.ToLower(c.Theme) {
	case "", "auto", "dark", "light":
	default:
		return fmt.Errorf("config: unknown theme %q", c.Theme)
	}
	if c.InitialStep < 1 {
		return fmt.Errorf("config: initial_step must be >= 1, got %d", c.InitialStep)
	}
	if c.Upload.MaxFiles < 1 {
		return fmt.Errorf("config: upload.max_files must be >= 1, got %d", c.Upload.MaxFiles)
	}
	return nil
}
