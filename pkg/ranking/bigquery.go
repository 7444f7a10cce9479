package ranking

import (
	"context"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/depscout/depscout/pkg/errors"
)

// queryText is the static ranking query. It runs against the public
// deps.dev snapshot, restricted to the npm ecosystem, counting distinct
// dependent packages per dependency. The @types/ namespace is excluded
// at the source so it never reaches an artifact.
const queryText = `
SELECT
  d.Dependency.Name AS package_name,
  COUNT(DISTINCT d.Name) AS dependent_count
FROM ` + "`bigquery-public-data.deps_dev_v1.DependenciesLatest`" + ` AS d
WHERE d.System = 'NPM'
  AND d.Dependency.System = 'NPM'
  AND NOT STARTS_WITH(d.Dependency.Name, '@types/')
GROUP BY package_name
ORDER BY dependent_count DESC, package_name
LIMIT @limit
`

// BigQueryRunner executes the ranking query through the BigQuery API.
// Construct it once at startup and Close it when the process exits.
type BigQueryRunner struct {
	client *bigquery.Client
}

// NewBigQueryRunner creates a runner for the given billing project.
// When credentialsFile is empty, Application Default Credentials are used.
func NewBigQueryRunner(ctx context.Context, project, credentialsFile string) (*BigQueryRunner, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := bigquery.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQuery, err, "create BigQuery client for project %s", project)
	}
	return &BigQueryRunner{client: client}, nil
}

// Close releases the underlying API connection.
func (r *BigQueryRunner) Close() error {
	return r.client.Close()
}

// Run executes the ranking query and collects all result rows.
// The query is all-or-nothing: either the full ordered result is
// returned or an error. Zero rows is a valid outcome.
func (r *BigQueryRunner) Run(ctx context.Context, limit int) ([]PackageRank, error) {
	q := r.client.Query(queryText)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQuery, err, "execute ranking query")
	}

	var ranks []PackageRank
	for {
		var row struct {
			PackageName    string `bigquery:"package_name"`
			DependentCount int64  `bigquery:"dependent_count"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQuery, err, "read ranking row")
		}
		ranks = append(ranks, PackageRank{
			Name:       row.PackageName,
			Dependents: int(row.DependentCount),
		})
	}
	return ranks, nil
}
