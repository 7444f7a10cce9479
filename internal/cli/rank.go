package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/config"
	"github.com/depscout/depscout/pkg/errors"
	"github.com/depscout/depscout/pkg/ranking"
)

// rankOpts holds the command-line flags for the rank command.
type rankOpts struct {
	output      string // ranking artifact path (default: <output dir>/top_npm_packages.csv)
	project     string // Google Cloud project that runs the query
	credentials string // service-account key file (ADC if empty)
	limit       int    // maximum ranked packages
}

// rankCommand creates the rank command.
func (c *CLI) rankCommand() *cobra.Command {
	opts := rankOpts{limit: ranking.DefaultLimit}

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Extract the npm popularity ranking from the public dependency dataset",
		Long: `Run the ranking query against the public deps.dev dataset on BigQuery.

The query counts distinct dependents per npm package, excludes the @types/
namespace, and writes the top packages as a two-column CSV artifact sorted
by dependent count (ties broken by package name).

Requires BigQuery access: a billing project via --project, the config
file, or GOOGLE_CLOUD_PROJECT, and Application Default Credentials or a
service-account key file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRank(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "ranking artifact path (default <output dir>/"+rankingFile+")")
	cmd.Flags().StringVar(&opts.project, "project", "", "Google Cloud project for the query (overrides config)")
	cmd.Flags().StringVar(&opts.credentials, "credentials", "", "service-account key file (default: application default credentials)")
	cmd.Flags().IntVar(&opts.limit, "limit", opts.limit, "maximum number of ranked packages")

	return cmd
}

func (c *CLI) runRank(ctx context.Context, opts rankOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	project := opts.project
	if project == "" {
		project = cfg.BigQuery.Project
	}
	if project == "" {
		project = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}
	if project == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"no Google Cloud project configured (use --project, the config file, or GOOGLE_CLOUD_PROJECT)")
	}

	credentials := opts.credentials
	if credentials == "" {
		credentials = cfg.BigQuery.CredentialsFile
	}

	runner, err := ranking.NewBigQueryRunner(ctx, project, credentials)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Debugf("Running ranking query against project %s (limit %d)", project, opts.limit)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Running ranking query...")
	spinner.Start()
	ranks, err := ranking.Extract(ctx, runner, opts.limit)
	if err != nil {
		spinner.StopWithError("Ranking query failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Ranked %d packages", len(ranks)))

	if len(ranks) == 0 {
		printWarning("Query matched no packages; writing an empty ranking artifact")
	} else {
		printInfo("Most depended-upon package: %s (%d dependents)",
			StyleHighlight.Render(ranks[0].Name), ranks[0].Dependents)
	}

	output := opts.output
	if output == "" {
		output = filepath.Join(cfg.Output.Dir, rankingFile)
	}
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", dir)
		}
	}
	if err := ranking.WriteArtifactFile(output, ranks); err != nil {
		return err
	}

	printSuccess("Ranking artifact written")
	printFile(output)
	printNextStep("Collect metadata for the top packages", appName+" collect 1000")
	return nil
}
