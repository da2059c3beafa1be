// Package testdoubles provides spy implementations of the circulation
// observability ports so tests can assert on logging, metrics and tracing
// behavior without any telemetry backend.
package testdoubles
