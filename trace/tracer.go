// Package trace provides execution tracing for the evaluator: function
// calls, returns, and propagating errors, each filterable by callee
// name glob, logged through zerolog rather than the ad-hoc
// fmt.Fprintf framing the teacher's tracer used.
package trace

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Tracer logs evaluator events. A nil *Tracer is valid and silent,
// so callers that never enable tracing pay no branching cost beyond
// a nil check.
type Tracer struct {
	enabled bool
	filters []string
	log     zerolog.Logger
}

// New builds a Tracer writing to os.Stderr, active only
// when enabled, restricted to callee names matching filters (glob
// patterns; no filters means trace everything).
func New(enabled bool, filters []string) *Tracer {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		log:     zerolog.New(w).With().Timestamp().Logger(),
	}
}

func (t *Tracer) matches(name string) bool {
	if t == nil || !t.enabled {
		return false
	}
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// Call logs entry into a function or builtin application.
func (t *Tracer) Call(name string, args []string, tail bool) {
	if !t.matches(name) {
		return
	}
	t.log.Debug().Str("event", "call").Str("fn", name).Strs("args", args).Bool("tail", tail).Msg("call")
}

// Return logs the value a function or builtin produced.
func (t *Tracer) Return(name string, result string) {
	if !t.matches(name) {
		return
	}
	t.log.Debug().Str("event", "return").Str("fn", name).Str("value", result).Msg("return")
}

// Error logs a propagating ErrorCode raised while evaluating name.
func (t *Tracer) Error(name string, code string, detail string) {
	if !t.matches(name) {
		return
	}
	t.log.Warn().Str("event", "error").Str("fn", name).Str("code", code).Str("detail", detail).Msg("error")
}

// Resolve logs an import/module resolution decision (hit or miss),
// useful for debugging resolution-order surprises (spec.md §4.4).
func (t *Tracer) Resolve(name string, tier string, found bool) {
	if t == nil || !t.enabled {
		return
	}
	t.log.Debug().Str("event", "resolve").Str("name", name).Str("tier", tier).Bool("found", found).Msg("resolve")
}
