package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/langswap/assets"
	"github.com/tqbf/langswap/pkg/config"
	"github.com/tqbf/langswap/pkg/install"
	"github.com/tqbf/langswap/pkg/paths"
)

const appVersion = "0.1.0"

func main() {
	app := &cli.App{
		Name:  "langswap",
		Usage: "overlay localized game files and restore the originals",
		Before: func(c *cli.Context) error {
			configureLogging(c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"LANGSWAP_CONFIG"},
				Usage:   "config file (default " + config.DefaultPath() + ")",
			},
			&cli.StringFlag{
				Name:    "install-root",
				EnvVars: []string{"LANGSWAP_INSTALL_ROOT"},
				Usage:   "game data directory to patch",
			},
			&cli.StringFlag{
				Name:    "backup-dir",
				EnvVars: []string{"LANGSWAP_BACKUP_DIR"},
				Usage:   "directory holding language.zip backups",
			},
			&cli.StringFlag{
				Name:    "subtree",
				EnvVars: []string{"LANGSWAP_SUBTREE"},
				Usage:   "language root inside the archive",
			},
			&cli.StringFlag{
				Name:  "archive",
				Usage: "source archive (default embedded)",
			},
			&cli.StringFlag{
				Name:  "whitelist",
				Usage: "whitelist file (default embedded)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "max concurrent file operations (0 = unbounded)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Commands: []*cli.Command{
			applyCmd(),
			restoreCmd(),
			checkCmd(),
			listCmd(),
			{
				Name:  "version",
				Usage: "print version",
				Action: func(c *cli.Context) error {
					fmt.Println(appVersion)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}),
	))
}

func loadConfig(c *cli.Context) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(config.DefaultPath())
	}
	if err != nil {
		return cfg, err
	}

	if c.IsSet("install-root") {
		cfg.InstallRoot = c.String("install-root")
	}
	if c.IsSet("backup-dir") {
		cfg.BackupDir = c.String("backup-dir")
	}
	if c.IsSet("subtree") {
		cfg.Subtree = c.String("subtree")
	}
	if c.IsSet("archive") {
		cfg.Archive = c.String("archive")
	}
	if c.IsSet("whitelist") {
		cfg.Whitelist = c.String("whitelist")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func newEngine(c *cli.Context) (*install.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	archive := assets.LanguageZip
	if cfg.Archive != "" {
		archive, err = os.ReadFile(cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("read archive: %w", err)
		}
	}

	whitelist := assets.Whitelist
	if cfg.Whitelist != "" {
		data, err := os.ReadFile(cfg.Whitelist)
		if err != nil {
			return nil, fmt.Errorf("read whitelist: %w", err)
		}
		whitelist = string(data)
	}

	slog.Debug("configuration",
		"install_root", cfg.InstallRoot,
		"backup_dir", cfg.BackupDir,
		"subtree", cfg.Subtree,
		"workers", cfg.Workers,
	)

	return install.New(install.Config{
		InstallRoot: cfg.InstallRoot,
		BackupDir:   cfg.BackupDir,
		Subtree:     cfg.Subtree,
		Archive:     archive,
		Whitelist:   paths.ParseWhitelist(whitelist),
		Workers:     cfg.Workers,
	})
}
