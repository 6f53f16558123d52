// Package envconfig reads the engine's settings from environment variables.
//
// Supported variables:
//   - STRIDED_DEBUG: enable debug logging
//   - STRIDED_NUM_THREADS: workers for batch-parallel matmul (default 1)
//   - STRIDED_MAX_ALLOC_BYTES: cap on a single buffer allocation (default 0, no cap)
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of leading/trailing quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a getter for a boolean variable. A set but unparsable
// value counts as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a getter for a boolean variable that defaults to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// Uint returns a getter for an unsigned variable with a default value.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// Int64 returns a getter for a non-negative int64 variable with a default value.
func Int64(key string, defaultValue int64) func() int64 {
	return func() int64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseInt(s, 10, 64); err != nil || n < 0 {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

var (
	// Debug enables debug logging.
	Debug = Bool("STRIDED_DEBUG")
	// NumThreads is the number of workers batch-parallel matmul may use; 0 and 1 mean sequential.
	NumThreads = Uint("STRIDED_NUM_THREADS", 1)
	// MaxAllocBytes caps a single buffer allocation; 0 means no cap.
	MaxAllocBytes = Int64("STRIDED_MAX_ALLOC_BYTES", 0)
)

// LogLevel returns the slog level selected by STRIDED_DEBUG.
func LogLevel() slog.Level {
	if Debug() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// EnvVar describes one supported variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every supported variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"STRIDED_DEBUG":           {"STRIDED_DEBUG", Debug(), "Show additional debug information"},
		"STRIDED_NUM_THREADS":     {"STRIDED_NUM_THREADS", NumThreads(), "Workers for batch-parallel matmul"},
		"STRIDED_MAX_ALLOC_BYTES": {"STRIDED_MAX_ALLOC_BYTES", MaxAllocBytes(), "Largest single allocation in bytes (0 = unlimited)"},
	}
}

// Values returns every supported variable formatted as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
