// Package shell provides the imperative shell shared by all feature slices:
// retry with exponential backoff for concurrency conflicts, and logging,
// metrics and tracing instrumentation around command and query handling.
package shell
