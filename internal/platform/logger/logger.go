// Package logger owns the process wide zerolog logger and the request scoped children built from it
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is a zerolog.Logger
type Logger = zerolog.Logger

// Options shape the root logger
type Options struct {
	Level   string // trace..panic, debug when unknown
	Format  string // console or json
	Service string
	Writer  io.Writer
	Caller  bool
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
// it reads the environment itself since config logs through this package
func FromEnv() Options {
	env := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv("LOG_" + k)); v != "" {
			return v
		}
		return def
	}
	caller, _ := strconv.ParseBool(env("CALLER", "false"))
	return Options{
		Level:   strings.ToLower(env("LEVEL", "debug")),
		Format:  strings.ToLower(env("FORMAT", "console")),
		Service: env("SERVICE", "eshop-api"),
		Caller:  caller,
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init builds the root logger, only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		w := opt.Writer
		if w == nil {
			w = os.Stdout
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		fields := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			fields = fields.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			fields = fields.Str("service", opt.Service)
		}
		if opt.Caller {
			fields = fields.Caller()
		}
		l := fields.Logger()
		root.Store(&l)
	})
}

// Get is the root logger, built from FromEnv on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keyUserID
)

// WithRequest stores the request id and caller for C, blanks are skipped
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// C is the root logger with request_id and user_id from ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		b = b.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyUserID).(string); s != "" {
		b = b.Str("user_id", s)
	}
	l := b.Logger()
	return &l
}

// Named is the root logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
