package qconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/quatton/qrender/pkg/qart"
	"github.com/quatton/qrender/pkg/qrender"
	"github.com/spf13/viper"
)

type Config struct {
	Executable  string        `mapstructure:"executable"`
	OutputDir   string        `mapstructure:"outputDir"`
	Mode        string        `mapstructure:"mode"`
	Animate     bool          `mapstructure:"animate"`
	Frame       int           `mapstructure:"frame"`
	SceneOutput bool          `mapstructure:"sceneOutput"`
	Artifacts   qart.S3Config `mapstructure:"artifacts"`

	v *viper.Viper // instance-specific viper
}

const (
	EnvPrefix  = "QRENDER"
	ConfigRoot = ".qrender"

	ExecutableKey  = "executable"
	OutputDirKey   = "outputDir"
	ModeKey        = "mode"
	AnimateKey     = "animate"
	FrameKey       = "frame"
	SceneOutputKey = "sceneOutput"
)

// DefaultExecutable is the usual renderer install location for goos.
func DefaultExecutable(goos string) string {
	switch goos {
	case "windows":
		return `C:\Program Files\Blender Foundation\Blender\blender.exe`
	case "darwin":
		return "/Applications/Blender.app/Contents/MacOS/Blender"
	default:
		return "/usr/bin/blender"
	}
}

// Load creates a new Config instance with its own viper.
// There is no global config state.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		// Project config (tracked)
		for _, name := range []string{"qrender.yaml", "qrender.yml", ".qrender.yaml"} {
			if _, err := os.Stat(name); err == nil {
				v.SetConfigFile(name)
				if err := v.ReadInConfig(); err == nil {
					break
				}
			}
		}

		// Local overrides (untracked)
		localConfigPath := filepath.Join(ConfigRoot, "config.yaml")
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("merging local config: %w", err)
			}
		}
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if _, err := qrender.ParseMode(cfg.Mode); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ModeKey, err)
	}

	cfg.v = v
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ExecutableKey, DefaultExecutable(runtime.GOOS))
	v.SetDefault(ModeKey, string(qrender.ModeExternal))
	v.SetDefault(AnimateKey, true)
	v.SetDefault(FrameKey, 1)
	v.SetDefault("artifacts.bucket", "renders")
	v.SetDefault("artifacts.region", "us-east-1")

	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{"artifacts.endpoint", "artifacts.accessKey", "artifacts.secretKey", "artifacts.useSSL", "artifacts.prefix", OutputDirKey, SceneOutputKey} {
		_ = v.BindEnv(key)
	}
}

// Request builds a render request for document using this config.
func (c *Config) Request(document string) qrender.Request {
	mode, _ := qrender.ParseMode(c.Mode)
	return qrender.Request{
		DocumentPath:    document,
		OutputDirectory: c.OutputDir,
		ExecutablePath:  c.Executable,
		Mode:            mode,
		Animate:         c.Animate,
		Frame:           c.Frame,
		SceneOutput:     c.SceneOutput,
	}
}

// Viper returns the underlying viper instance, used for flag binding.
func (c *Config) Viper() *viper.Viper {
	return c.v
}

// Reload re-reads the typed fields after flags were bound.
func (c *Config) Reload() error {
	if c.v == nil {
		return nil
	}
	v := c.v
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}
	c.v = v
	if _, err := qrender.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("invalid %s: %w", ModeKey, err)
	}
	return nil
}

// ConfigFileUsed returns the config file that was used (if any)
func (c *Config) ConfigFileUsed() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}
