package cli

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mchmarny/rubric/pkg/rubric"
	"github.com/urfave/cli/v2"
)

var (
	companyFlag = &cli.StringFlag{
		Name:     "company",
		Aliases:  []string{"c"},
		Usage:    "Name of the company to score",
		Required: true,
	}

	horizonFlag = &cli.StringFlag{
		Name:    "horizon",
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Scoring horizon [%s]", horizonUsage()),
		Value:   string(rubric.HorizonMid),
	}

	asOfFlag = &cli.StringFlag{
		Name:  "as-of",
		Usage: "Score using signals as of this date (YYYY-MM-DD, default: latest)",
	}

	weightsFlag = &cli.StringFlag{
		Name:  "weights",
		Usage: "Path to a YAML weights file (default: built-in weights)",
	}

	metricFlag = &cli.StringFlag{
		Name:     "metric",
		Aliases:  []string{"m"},
		Usage:    "Metric ID (see the metrics command for the catalog)",
		Required: true,
	}

	scoreCmd = &cli.Command{
		Name:    "score",
		Aliases: []string{"s"},
		Usage:   "Score a company and print the full breakdown",
		UsageText: `rubric score --company ACME                        # mid horizon, stored signals
   rubric score --company ACME --horizon 5-12y       # long horizon
   rubric score --company ACME --as-of 2026-01-01    # historical snapshot
   rubric --data signals.json score --company ACME   # score an ad-hoc dataset`,
		Action: cmdScore,
		Flags: []cli.Flag{
			companyFlag,
			horizonFlag,
			asOfFlag,
			weightsFlag,
		},
	}

	signalCmd = &cli.Command{
		Name:   "signal",
		Usage:  "Print a single stored signal",
		Action: cmdSignal,
		Flags: []cli.Flag{
			companyFlag,
			metricFlag,
			horizonFlag,
			asOfFlag,
		},
	}

	metricsCmd = &cli.Command{
		Name:   "metrics",
		Usage:  "List the metric catalog the engine reads",
		Action: cmdMetrics,
	}
)

func horizonUsage() string {
	parts := make([]string, 0, len(rubric.Horizons))
	for _, h := range rubric.Horizons {
		parts = append(parts, string(h))
	}
	return strings.Join(parts, ", ")
}

func parseHorizonFlag(c *cli.Context) (rubric.Horizon, error) {
	val := c.String(horizonFlag.Name)
	h, ok := rubric.ParseHorizon(val)
	if !ok {
		return "", fmt.Errorf("unknown horizon %q, expected one of [%s]", val, horizonUsage())
	}
	return h, nil
}

func loadWeightsFlag(c *cli.Context) (*rubric.Weights, error) {
	path := c.String(weightsFlag.Name)
	if path == "" {
		return nil, nil
	}
	w, err := rubric.LoadWeights(path)
	if err != nil {
		return nil, fmt.Errorf("loading weights: %w", err)
	}
	return &w, nil
}

func cmdScore(c *cli.Context) error {
	company := c.String(companyFlag.Name)
	h, err := parseHorizonFlag(c)
	if err != nil {
		return err
	}
	weights, err := loadWeightsFlag(c)
	if err != nil {
		return err
	}

	cfg := getConfig(c)
	scorer, err := rubric.New(cfg.Source, weights)
	if err != nil {
		return fmt.Errorf("creating scorer: %w", err)
	}

	slog.Debug("scoring", "company", company, "horizon", h)

	bd, err := scorer.Score(context.Background(), company, h, &rubric.ScoreOptions{
		AsOf: c.String(asOfFlag.Name),
	})
	if err != nil {
		return fmt.Errorf("failed to score %s: %w", company, err)
	}

	if err := encode(bd); err != nil {
		return fmt.Errorf("error encoding: %+v: %w", bd, err)
	}
	return nil
}

func cmdSignal(c *cli.Context) error {
	company := c.String(companyFlag.Name)
	metric := c.String(metricFlag.Name)
	h, err := parseHorizonFlag(c)
	if err != nil {
		return err
	}

	var q *rubric.Query
	if asOf := c.String(asOfFlag.Name); asOf != "" {
		q = &rubric.Query{AsOf: asOf}
	}

	cfg := getConfig(c)
	sig, err := cfg.Source.GetValue(context.Background(), metric, company, h, q)
	if err != nil {
		return fmt.Errorf("failed to query signal %s for %s: %w", metric, company, err)
	}

	if err := encode(sig); err != nil {
		return fmt.Errorf("error encoding: %+v: %w", sig, err)
	}
	return nil
}

type metricInfo struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
}

func cmdMetrics(c *cli.Context) error {
	list := make([]*metricInfo, 0, len(rubric.Catalog))
	for id, desc := range rubric.Catalog {
		list = append(list, &metricInfo{ID: id, Description: desc})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return encode(list)
}
