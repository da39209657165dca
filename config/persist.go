package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/choragraph/chora/errors"
	"github.com/choragraph/chora/logger"
)

// createBackup creates rotating backups (.back1, .back2, .back3) before
// modifying a config file
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No file to backup
	}

	// Rotate: .back3 -> delete, .back2 -> .back3, .back1 -> .back2, current -> .back1
	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		// Deletion failures don't block the save
		logger.Logger.Warnw("Failed to delete old backup", "path", back3, "error", err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "read config for backup")
	}
	if err := os.WriteFile(back1, content, DefaultFilePermissions); err != nil {
		return errors.Wrap(err, "create .back1")
	}

	return nil
}

// Save writes the configuration to a TOML file, rotating backups first.
func Save(cfg *Config, configPath string) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "refusing to save invalid config")
	}
	if err := createBackup(configPath); err != nil {
		return err
	}

	content, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "create config directory for %s", configPath)
	}

	// Mark this as our own write to prevent reload loops
	if watcher := GetGlobalWatcher(); watcher != nil {
		watcher.MarkOwnWrite()
	}

	if err := os.WriteFile(configPath, content, DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "write config %s", configPath)
	}

	logger.Logger.Infow("Configuration saved", "path", configPath)
	return nil
}

// WriteDefaultConfig writes a config file populated with defaults, unless
// one already exists at the path.
func WriteDefaultConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return errors.Newf("config file already exists at %s", configPath)
	}

	v := GetViper()
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return errors.Wrap(err, "build default config")
	}
	return Save(&cfg, configPath)
}

// UserConfigPath returns the path to the user config file, ~/.chora/chora.toml.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "chora.toml"
	}
	return filepath.Join(home, ".chora", "chora.toml")
}
