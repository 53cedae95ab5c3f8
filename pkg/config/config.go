package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	AppName        = "langswap"
	DefaultSubtree = "language/zh_cn_hans"
)

// Config is the on-disk configuration. Archive and Whitelist
// override the embedded assets when set.
type Config struct {
	InstallRoot string `yaml:"install_root"`
	BackupDir   string `yaml:"backup_dir"`
	Subtree     string `yaml:"subtree"`
	Archive     string `yaml:"archive"`
	Whitelist   string `yaml:"whitelist"`
	Workers     int    `yaml:"workers"`
}

func Default() Config {
	return Config{
		BackupDir: filepath.Join(xdg.DataHome, AppName, "backup"),
		Subtree:   DefaultSubtree,
	}
}

func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}

// Load reads a YAML file over the defaults. Unknown keys are an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c Config) Validate() error {
	if c.InstallRoot == "" {
		return fmt.Errorf("install_root is required")
	}
	if !filepath.IsAbs(c.InstallRoot) {
		return fmt.Errorf(
			"install_root must be absolute: %s", c.InstallRoot,
		)
	}
	if c.BackupDir == "" {
		return fmt.Errorf("backup_dir is required")
	}
	if c.Subtree == "" {
		return fmt.Errorf("subtree is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}
