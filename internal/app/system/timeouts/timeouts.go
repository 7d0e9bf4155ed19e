// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts are used with context.WithTimeout for database operations
// in HTTP handlers and services. Centralizing them keeps request budgets
// consistent and easy to adjust.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, aggregation reads
//   - Long: review graph generation and cascade deletes
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple operations like single-document reads.
func Short() time.Duration { return short }

// Medium returns the timeout for moderate operations like paginated lists
// and aggregation reads.
func Medium() time.Duration { return medium }

// Long returns the timeout for operations touching multiple collections,
// such as review graph generation for a whole workspace.
func Long() time.Duration { return long }
