// Package slog decorates tabmark services with log/slog logging. Each
// decorator logs one line per call with its inputs, result size, duration
// and error.
package slog
