// Package sqltrace emits one structured log line per sql round trip
// shared by the postgres and sqlite adapters
package sqltrace

import (
	"context"
	"time"

	"eshoppers/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
type QueryEvent struct {
	Backend   string
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer returns a tracer that always prints sql when LOG_SQL is on,
// independent of the process-wide root level
func Tracer(root logger.Logger, backend string) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", backend).Logger()
	return &zlTracer{log: ll}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	elapsedMs := float64(ev.ElapsedUS) / 1000.0
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}

	evt.Float64("elapsed_ms", elapsedMs).
		Bool("slow", ev.Slow).
		Str("sql", Compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(ev.Backend + " query")
}

// Emitter times statements and forwards them to a tracer
// the zero value (nil Tracer) emits nothing
type Emitter struct {
	Backend string
	Tracer  QueryTracer
	// SlowMs marks statements at or over the threshold; negative disables
	SlowMs int
}

// Emit sends a query event for a statement that started at start
func (e Emitter) Emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if e.Tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	slow := e.SlowMs >= 0 && elapsedUS >= int64(e.SlowMs)*1000
	e.Tracer.OnQuery(ctx, QueryEvent{
		Backend:   e.Backend,
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      slow,
	})
}

// Compact folds runs of whitespace into single spaces
func Compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
