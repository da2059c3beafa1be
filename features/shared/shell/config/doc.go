// Package config provides database and observability configuration helpers
// for the circulation system.
//
// It contains factory functions for creating database connections using
// different PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB) with
// pre-configured test database DSNs, plus OpenTelemetry providers for the
// test observability stack.
//
// This package is part of the shell (infrastructure) layer.
package config
