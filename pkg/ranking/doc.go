// Package ranking produces an ordered list of the most depended-upon npm
// packages from the public deps.dev dataset on BigQuery.
//
// # Overview
//
// The ranking is the first half of the collection pipeline: a single
// static analytical query groups the dependency graph by dependency name,
// counts distinct dependents, and returns the top packages in descending
// order. Packages under the @types/ namespace are excluded at the query
// level because type-declaration stubs are not independently attackable
// targets.
//
// # Determinism
//
// Equal dependent counts are tie-broken by ascending package name, both
// in the query's ORDER BY and in [Validate], so two runs against the same
// dataset snapshot produce identical artifacts.
//
// # Artifact
//
// The result is persisted as a two-column CSV with a header row:
//
//	package_name,dependent_count
//	lodash,180554
//	react,132871
//
// An empty result set is valid and produces a header-only file.
// [ReadArtifact] validates ordering, uniqueness, and the namespace
// exclusion so that downstream consumers can trust the file.
package ranking
