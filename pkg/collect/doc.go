// Package collect implements the metadata collection loop: given a
// popularity ranking and a count K, fetch per-package metadata for the
// top K entries and persist the results.
//
// # Failure model
//
// Each package moves directly from pending to either collected or
// failed; there are no intermediate states and no cross-package
// dependencies. A failed fetch is data, not a process failure: it is
// recorded in the report with one of four kinds (not_found,
// rate_limited, network_error, parse_error) and the run continues.
// Only context cancellation or an invalid K aborts a run.
//
// # Ordering
//
// Collection proceeds in ranking order so that an interrupted run has
// already covered the most popular packages. With multiple workers the
// in-flight order is unspecified, but results are collated back into
// ranking order before the report is assembled.
//
// # Artifacts
//
// [WriteArtifacts] writes two files: the metadata report as JSON and the
// failure log as CSV. The failure log is always written, even when
// empty, so the completeness of a run can be audited.
package collect
