package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mchmarny/rubric/pkg/provider"
	"github.com/urfave/cli/v2"
)

var (
	importFileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the JSON dataset file to import",
		Required: true,
	}

	importCmd = &cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Import a signal dataset into the local database",
		UsageText: `rubric import --file signals.json                       # import at today's date
   rubric import --file signals.json --as-of 2026-01-01   # import a dated snapshot`,
		Action: cmdImport,
		Flags: []cli.Flag{
			importFileFlag,
			asOfFlag,
		},
	}
)

type importSummary struct {
	*provider.ImportResult `yaml:",inline"`
	AsOf                   string `json:"as_of" yaml:"asOf"`
	Duration               string `json:"duration" yaml:"duration"`
}

func cmdImport(c *cli.Context) error {
	start := time.Now()

	cfg := getConfig(c)
	if cfg.Store == nil {
		return fmt.Errorf("import requires a database source, not a data file")
	}

	path := c.String(importFileFlag.Name)
	ds, err := provider.LoadDataset(path)
	if err != nil {
		return fmt.Errorf("loading dataset %s: %w", path, err)
	}

	asOf := c.String(asOfFlag.Name)
	if asOf == "" {
		asOf = time.Now().UTC().Format("2006-01-02")
	}

	slog.Debug("importing dataset", "file", path, "as_of", asOf)

	res, err := cfg.Store.Import(context.Background(), ds, asOf)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", path, err)
	}

	out := &importSummary{
		ImportResult: res,
		AsOf:         asOf,
		Duration:     time.Since(start).Round(time.Millisecond).String(),
	}
	if err := encode(out); err != nil {
		return fmt.Errorf("error encoding: %+v: %w", out, err)
	}
	return nil
}
