package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every key when read from the environment,
// e.g. INVADERS_HIGHSCORE_BACKEND for highscore.backend.
const EnvPrefix = "INVADERS"

// Config is the full runtime configuration.
type Config struct {
	SSH       SSHConfig       `mapstructure:"ssh"`
	Web       WebConfig       `mapstructure:"web"`
	HighScore HighScoreConfig `mapstructure:"highscore"`
	Log       LogConfig       `mapstructure:"log"`
	Game      GameConfig      `mapstructure:"game"`
}

// SSHConfig configures the SSH front end.
type SSHConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	HostKeyPath     string        `mapstructure:"hostKeyPath"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	IdleTimeout     time.Duration `mapstructure:"idleTimeout"`
}

// WebConfig configures the landing page server.
type WebConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	SSHDisplayHost string `mapstructure:"sshDisplayHost"`
}

// HighScoreConfig selects the high-score store.
type HighScoreConfig struct {
	Backend string `mapstructure:"backend"` // "memory" or "sqlite"
	Path    string `mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // Local play only; empty disables logging there
}

// GameConfig holds front-end settings. Gameplay constants are fixed.
type GameConfig struct {
	Seed uint64 `mapstructure:"seed"` // 0 seeds from the clock
	FPS  int    `mapstructure:"fps"`
}

// legacyEnv maps keys to the environment names used by earlier deployments.
var legacyEnv = map[string]string{
	"ssh.host":           "SSH_HOST",
	"ssh.port":           "SSH_PORT",
	"ssh.hostKeyPath":    "SSH_HOST_KEY",
	"web.host":           "WEB_HOST",
	"web.port":           "WEB_PORT",
	"web.sshDisplayHost": "SSH_DISPLAY_HOST",
}

// Load builds the configuration from defaults, the optional file at path and
// the environment, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.hostKeyPath", "/app/keys/host_key")
	v.SetDefault("ssh.shutdownTimeout", 15*time.Second)
	v.SetDefault("ssh.idleTimeout", 2*time.Minute)

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.sshDisplayHost", "your-server.com")

	v.SetDefault("highscore.backend", "sqlite")
	v.SetDefault("highscore.path", "invaders.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("game.seed", 0)
	v.SetDefault("game.fps", 60)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if cfg.Game.FPS <= 0 {
		return nil, fmt.Errorf("game.fps must be positive, got %d", cfg.Game.FPS)
	}
	return &cfg, nil
}
