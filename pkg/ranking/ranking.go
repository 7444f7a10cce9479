package ranking

import (
	"context"
	"sort"
	"strings"

	"github.com/depscout/depscout/pkg/errors"
)

// ReservedPrefix is the namespace excluded from the ranking. Packages
// under it only ship type declarations and are not independently
// distributable targets.
const ReservedPrefix = "@types/"

// DefaultLimit caps the number of ranked packages returned by the query.
const DefaultLimit = 10000

// PackageRank is one row of the ranking: a package and the number of
// distinct packages that depend on it.
type PackageRank struct {
	Name       string // npm package name, unique within a ranking
	Dependents int    // distinct dependent count, >= 0
}

// Runner executes the ranking query against a dataset backend.
// The production implementation is [BigQueryRunner]; tests substitute
// in-memory stubs.
type Runner interface {
	Run(ctx context.Context, limit int) ([]PackageRank, error)
}

// Extract runs the ranking query and normalizes the result into the
// canonical order: descending dependent count, ascending name on ties.
// A limit <= 0 falls back to [DefaultLimit]. An empty result is valid.
func Extract(ctx context.Context, r Runner, limit int) ([]PackageRank, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	ranks, err := r.Run(ctx, limit)
	if err != nil {
		return nil, err
	}
	Sort(ranks)
	if err := Validate(ranks); err != nil {
		return nil, err
	}
	return ranks, nil
}

// Sort orders ranks descending by dependent count with ascending
// lexicographic name as the tie-break.
func Sort(ranks []PackageRank) {
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Dependents != ranks[j].Dependents {
			return ranks[i].Dependents > ranks[j].Dependents
		}
		return ranks[i].Name < ranks[j].Name
	})
}

// Validate checks the ranking invariants: no empty or duplicate names,
// no reserved-namespace names, non-negative counts, and canonical order.
func Validate(ranks []PackageRank) error {
	seen := make(map[string]struct{}, len(ranks))
	for i, r := range ranks {
		if r.Name == "" {
			return errors.New(errors.ErrCodeInvalidArtifact, "row %d: empty package name", i+1)
		}
		if strings.HasPrefix(r.Name, ReservedPrefix) {
			return errors.New(errors.ErrCodeInvalidArtifact, "row %d: reserved namespace package %s", i+1, r.Name)
		}
		if r.Dependents < 0 {
			return errors.New(errors.ErrCodeInvalidArtifact, "row %d: negative dependent count for %s", i+1, r.Name)
		}
		if _, dup := seen[r.Name]; dup {
			return errors.New(errors.ErrCodeInvalidArtifact, "duplicate package %s", r.Name)
		}
		seen[r.Name] = struct{}{}

		if i == 0 {
			continue
		}
		prev := ranks[i-1]
		if r.Dependents > prev.Dependents ||
			(r.Dependents == prev.Dependents && r.Name < prev.Name) {
			return errors.New(errors.ErrCodeInvalidArtifact, "rows %d and %d out of order", i, i+1)
		}
	}
	return nil
}

// Top returns the first k entries of ranks, or all of them when fewer
// than k exist. k <= 0 yields an empty slice.
func Top(ranks []PackageRank, k int) []PackageRank {
	if k <= 0 {
		return nil
	}
	if k > len(ranks) {
		k = len(ranks)
	}
	return ranks[:k]
}
