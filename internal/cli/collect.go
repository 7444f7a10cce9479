package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/collect"
	"github.com/depscout/depscout/pkg/config"
	"github.com/depscout/depscout/pkg/errors"
	"github.com/depscout/depscout/pkg/ranking"
	"github.com/depscout/depscout/pkg/registry/librariesio"
)

// collectOpts holds the command-line flags for the collect command.
type collectOpts struct {
	ranking string // ranking artifact path (default: <output dir>/top_npm_packages.csv)
	output  string // output directory for the metadata artifacts
	workers int    // concurrent in-flight requests
	refresh bool   // bypass HTTP cache
}

// collectCommand creates the collect command. The single positional
// argument is the number of top-ranked packages to collect.
func (c *CLI) collectCommand() *cobra.Command {
	opts := collectOpts{workers: 1}

	cmd := &cobra.Command{
		Use:   "collect <count>",
		Short: "Collect registry metadata for the top ranked packages",
		Long: `Fetch Libraries.io metadata for the top <count> packages of the ranking
artifact, in ranking order. Successfully collected packages land in the
metadata artifact; failed packages are recorded in the failure log and
never abort the run.

Requires the ` + apiKeyEnv + ` environment variable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseCount(args[0])
			if err != nil {
				return err
			}
			return c.runCollect(cmd.Context(), count, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ranking, "ranking", "", "ranking artifact path (default <output dir>/"+rankingFile+")")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory for metadata artifacts (default from config)")
	cmd.Flags().IntVar(&opts.workers, "workers", opts.workers, "concurrent requests (1 = sequential)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the HTTP response cache")

	return cmd
}

// parseCount validates the single numeric argument of collect.
func parseCount(arg string) (int, error) {
	count, err := strconv.Atoi(arg)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidCount, "count %q is not an integer", arg)
	}
	if count < 1 {
		return 0, errors.New(errors.ErrCodeInvalidCount, "count must be >= 1, got %d", count)
	}
	return count, nil
}

func (c *CLI) runCollect(ctx context.Context, count int, opts collectOpts) error {
	logger := loggerFromContext(ctx)

	// Credential check comes first: a missing key must fail the run
	// before any artifact is read or request issued.
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return errors.New(errors.ErrCodeMissingCredential,
			"%s is not set (create a key at https://libraries.io/account)", apiKeyEnv)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	rankingPath := opts.ranking
	if rankingPath == "" {
		rankingPath = filepath.Join(cfg.Output.Dir, rankingFile)
	}
	ranks, err := ranking.ReadArtifactFile(rankingPath)
	if err != nil {
		return err
	}
	if count > len(ranks) {
		logger.Warnf("Requested %d packages but ranking has %d; collecting all of them", count, len(ranks))
	}

	client, err := librariesio.NewClient(apiKey, cfg.CacheTTL())
	if err != nil {
		return err
	}
	if cfg.Registry.BaseURL != "" {
		client.SetBaseURL(cfg.Registry.BaseURL)
	}

	logger.Infof("Collecting metadata for the top %d of %d ranked packages", min(count, len(ranks)), len(ranks))
	prog := newProgress(logger)

	report, err := collect.Run(ctx, client, ranks, count, collect.Options{
		Workers: opts.workers,
		Refresh: opts.refresh,
		Logger:  func(msg string, args ...any) { logger.Debugf(msg, args...) },
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Collected %d of %d packages", len(report.Collected), report.Attempted))

	outDir := opts.output
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if err := collect.WriteArtifacts(outDir, report); err != nil {
		return err
	}

	printSuccess("Collection complete (run %s)", report.RunID)
	printFile(filepath.Join(outDir, collect.MetadataFile))
	printFile(filepath.Join(outDir, collect.FailureFile))
	if n := len(report.Failures); n > 0 {
		printWarning("%d of %d packages failed; inspect the failure log before relying on completeness", n, report.Attempted)
	}
	return nil
}
