package collect

import (
	"context"
	goerrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/depscout/depscout/pkg/errors"
	"github.com/depscout/depscout/pkg/ranking"
	"github.com/depscout/depscout/pkg/registry"
	"github.com/depscout/depscout/pkg/registry/librariesio"
)

// FailureKind labels why a single package fetch failed. Kinds are stable
// strings so the failure log can be filtered by later tooling.
type FailureKind string

const (
	FailureNotFound    FailureKind = "not_found"
	FailureRateLimited FailureKind = "rate_limited"
	FailureNetwork     FailureKind = "network_error"
	FailureParse       FailureKind = "parse_error"
)

// Failure records one package that could not be collected.
type Failure struct {
	Name string      `json:"package_name"`
	Kind FailureKind `json:"error_kind"`
}

// Report is the outcome of one collection run. Collected entries appear
// in ranking order; every attempted package lands in exactly one of
// Collected or Failures, and Attempted is the sum of both, so a run cut
// short by cancellation still produces a consistent report.
type Report struct {
	RunID      string                `json:"run_id"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Requested  int                   `json:"requested_count"`
	Attempted  int                   `json:"attempted_count"`
	Collected  []librariesio.Project `json:"collected"`
	Failures   []Failure             `json:"failures"`
}

// Fetcher fetches metadata for one package. Implemented by
// [librariesio.Client]; tests substitute deterministic fakes.
type Fetcher interface {
	FetchProject(ctx context.Context, pkg string, refresh bool) (*librariesio.Project, error)
}

// Options tune a collection run.
type Options struct {
	// Workers caps concurrent in-flight requests. Values <= 1 mean
	// sequential collection, which is the reference behavior.
	Workers int

	// Refresh bypasses the HTTP response cache.
	Refresh bool

	// Logger receives per-package progress lines. Optional.
	Logger func(msg string, args ...any)
}

// Run fetches metadata for the top k ranked packages.
//
// Per-package failures are recorded and never abort the run; only an
// invalid k or context cancellation returns an error. When k exceeds the
// ranking size, all available packages are attempted. The returned
// report lists collected entries in ranking order regardless of worker
// count.
func Run(ctx context.Context, f Fetcher, ranks []ranking.PackageRank, k int, opts Options) (*Report, error) {
	if k < 1 {
		return nil, errors.New(errors.ErrCodeInvalidCount, "count must be >= 1, got %d", k)
	}

	targets := ranking.Top(ranks, k)
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Requested: k,
		Collected: make([]librariesio.Project, 0, len(targets)),
	}

	var err error
	if opts.Workers > 1 {
		err = runParallel(ctx, f, targets, opts, report)
	} else {
		err = runSequential(ctx, f, targets, opts, report)
	}
	// Attempted counts packages with a recorded outcome. On a completed
	// run this equals min(k, len(ranks)); a cancelled run counts only
	// what was reached before the cut-off.
	report.Attempted = len(report.Collected) + len(report.Failures)
	report.FinishedAt = time.Now().UTC()
	return report, err
}

// runSequential collects one package at a time in ranking order, so an
// interrupted run has already covered the most popular packages.
func runSequential(ctx context.Context, f Fetcher, targets []ranking.PackageRank, opts Options, report *Report) error {
	for _, t := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		proj, err := f.FetchProject(ctx, t.Name, opts.Refresh)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			report.Failures = append(report.Failures, Failure{Name: t.Name, Kind: Classify(err)})
			logf(opts, "fetch %s failed: %v", t.Name, err)
			continue
		}
		report.Collected = append(report.Collected, *proj)
		logf(opts, "collected %s (%d dependents)", t.Name, t.Dependents)
	}
	return nil
}

// runParallel collects with a bounded number of in-flight requests.
// Failures stay independent across workers, and results are collated by
// ranking index afterwards so output order matches the sequential run.
func runParallel(ctx context.Context, f Fetcher, targets []ranking.PackageRank, opts Options, report *Report) error {
	type slot struct {
		proj *librariesio.Project
		fail *Failure
	}
	slots := make([]slot, len(targets))

	var wg sync.WaitGroup
	sem := make(chan struct{}, opts.Workers)
	for i, t := range targets {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, t ranking.PackageRank) {
			defer wg.Done()
			defer func() { <-sem }()

			proj, err := f.FetchProject(ctx, t.Name, opts.Refresh)
			if err != nil {
				if ctx.Err() != nil {
					return // skipped, not failed
				}
				slots[i].fail = &Failure{Name: t.Name, Kind: Classify(err)}
				logf(opts, "fetch %s failed: %v", t.Name, err)
				return
			}
			slots[i].proj = proj
			logf(opts, "collected %s (%d dependents)", t.Name, t.Dependents)
		}(i, t)
	}
	wg.Wait()

	for _, s := range slots {
		switch {
		case s.proj != nil:
			report.Collected = append(report.Collected, *s.proj)
		case s.fail != nil:
			report.Failures = append(report.Failures, *s.fail)
		}
	}
	return ctx.Err()
}

// Classify maps a fetch error onto its failure kind. Anything that is
// neither a not-found, rate-limit, nor network error is treated as a
// malformed response.
func Classify(err error) FailureKind {
	switch {
	case goerrors.Is(err, registry.ErrNotFound):
		return FailureNotFound
	case goerrors.Is(err, registry.ErrRateLimited):
		return FailureRateLimited
	case goerrors.Is(err, registry.ErrNetwork):
		return FailureNetwork
	default:
		return FailureParse
	}
}

func logf(opts Options, msg string, args ...any) {
	if opts.Logger != nil {
		opts.Logger(msg, args...)
	}
}
