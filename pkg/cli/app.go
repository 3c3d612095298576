package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/mchmarny/rubric/pkg/logging"
	"github.com/mchmarny/rubric/pkg/provider"
	"github.com/mchmarny/rubric/pkg/rubric"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	dirMode      = 0700
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"

	// postgresEnvVar, when set, points the CLI at a shared postgres
	// store instead of the local sqlite file.
	postgresEnvVar = "RUBRIC_POSTGRES"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to the Sqlite database file",
	}

	dataFilePathFlag = &urfave.StringFlag{
		Name:  "data",
		Usage: "Path to a JSON dataset file to score instead of the database",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefaultCLILogger("info")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Source rubric.Source
	Store  *provider.Store
	Debug  bool
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 "rubric",
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for deterministic company scoring across regime scenarios",
		Flags: []urfave.Flag{
			debugFlag,
			dbFilePathFlag,
			dataFilePathFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			scoreCmd,
			signalCmd,
			metricsCmd,
			importCmd,
			serverCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				logging.SetDefaultCLILogger("debug")
			}

			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			cfg := &appConfig{Debug: c.Bool(debugFlag.Name)}

			if dataPath := c.String(dataFilePathFlag.Name); dataPath != "" {
				src, err := provider.NewFile(dataPath)
				if err != nil {
					return fmt.Errorf("loading dataset: %w", err)
				}
				cfg.Source = src
				c.App.Metadata[appConfigKey] = cfg
				return nil
			}

			// An explicit --db wins over the postgres env var.
			dbPath := c.String(dbFilePathFlag.Name)
			if dbPath == "" {
				if dsn := os.Getenv(postgresEnvVar); dsn != "" {
					store, err := provider.OpenPostgres(dsn)
					if err != nil {
						return fmt.Errorf("connecting to postgres: %w", err)
					}
					cfg.Source = store
					cfg.Store = store
					c.App.Metadata[appConfigKey] = cfg
					return nil
				}
				dbPath = path.Join(getHomeDir(), provider.DataFileName)
			}
			store, err := provider.OpenSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			cfg.Source = store
			cfg.Store = store
			c.App.Metadata[appConfigKey] = cfg
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.Store != nil {
				cfg.Store.Close()
			}
			return nil
		},
	}
}

func getHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		slog.Debug("error getting home dir, using current dir instead", "error", err)
		return "."
	}
	slog.Debug("home dir", "path", home)

	dirName := ".rubric"
	dirPath := filepath.Join(home, dirName)
	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dirPath)
		err := os.Mkdir(dirPath, dirMode)
		if err != nil {
			slog.Debug("error creating dir", "path", dirPath, "home", home, "error", err)
			return home
		}
	}
	return dirPath
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
