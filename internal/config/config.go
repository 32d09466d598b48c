// Package config layers relcheck settings: defaults, an optional YAML
// file, RELCHECK_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/relcheck/relcheck/internal/llm"
	"github.com/relcheck/relcheck/internal/logging"
	"github.com/relcheck/relcheck/internal/store"
)

// EnvPrefix is prepended to every environment override, e.g. RELCHECK_DB.
const EnvPrefix = "RELCHECK"

// Config is the top-level configuration structure.
type Config struct {
	// User keys saved progress and history.
	User string `mapstructure:"user"`
	// DB is the SQLite database path.
	DB string `mapstructure:"db"`
	// Bank optionally points at a question bank file replacing the
	// built-in catalogue.
	Bank string `mapstructure:"bank"`

	Logging logging.Config `mapstructure:"logging"`
	LLM     llm.Config     `mapstructure:"llm"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"user":      "user",
	"db":        "db",
	"bank":      "bank",
	"verbose":   "logging.console",
	"log-level": "logging.level",
	"provider":  "llm.provider",
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Dirs are searched for config.yaml when File is empty. Defaults to
	// the user config dir.
	Dirs []string
	// Flags are bound over file and env values when present.
	Flags *pflag.FlagSet
}

// Loader owns the viper instance so the config can be reloaded.
type Loader struct {
	v *viper.Viper

	mu   sync.RWMutex
	conf Config
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	dataDir, err := store.DataDir()
	if err != nil {
		dataDir = ".relcheck"
	}

	v.SetDefault("user", defaultUser())
	v.SetDefault("db", filepath.Join(dataDir, "relcheck.db"))
	v.SetDefault("bank", "")

	// Logging defaults
	v.SetDefault("logging.directory", filepath.Join(dataDir, "logs"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size", 10)   // 10 MB
	v.SetDefault("logging.max_backups", 3) // Keep 3 backups
	v.SetDefault("logging.max_age", 28)    // days
	v.SetDefault("logging.compress", true)
	v.SetDefault("logging.console", false)

	// LLM defaults. Keys are declared so RELCHECK_LLM_* env vars bind.
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.gemini.base_url", "")
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
}

// Load reads configuration from all layers.
func Load(opts Options) (*Loader, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		dirs := opts.Dirs
		if len(dirs) == 0 {
			dirs = []string{Dir()}
		}
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	// A missing file in the search path is fine; defaults and env apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	l := &Loader{v: v}
	conf, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.conf = conf
	return l, nil
}

func (l *Loader) decode() (Config, error) {
	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	c.User = strings.TrimSpace(c.User)
	if c.User == "" {
		return Config{}, fmt.Errorf("user must not be empty")
	}
	c.LLM.Discover()
	return c, nil
}

// Config returns the current configuration.
func (l *Loader) Config() Config {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.conf
}

// FileUsed returns the config file that was read, or "".
func (l *Loader) FileUsed() string {
	return l.v.ConfigFileUsed()
}

// Watch reloads the config when the file changes and passes the new
// value to onChange. Decode failures keep the previous config.
func (l *Loader) Watch(log *zap.Logger, onChange func(Config)) {
	if l.FileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		log.Info("Configuration file changed, reloading.", zap.String("file", e.Name))
		conf, err := l.decode()
		if err != nil {
			log.Error("Error reloading configuration", zap.Error(err))
			return
		}
		l.mu.Lock()
		l.conf = conf
		l.mu.Unlock()
		if onChange != nil {
			onChange(conf)
		}
	})
	l.v.WatchConfig()
}

// Dir returns the relcheck config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "relcheck")
	}
	if d, err := os.UserConfigDir(); err == nil {
		return filepath.Join(d, "relcheck")
	}
	return filepath.Join(".", ".relcheck")
}

func defaultUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "default"
}
