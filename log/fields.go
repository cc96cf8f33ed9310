package log

import (
	"time"

	"go.uber.org/zap"
)

var (
	String   = zap.String
	Strings  = zap.Strings
	Int      = zap.Int
	Ints     = zap.Ints
	Uint     = zap.Uint
	Float64  = zap.Float64
	Bool     = zap.Bool
	Any      = zap.Any
	Duration = zap.Duration
	Time     = zap.Time
)

func ErrorField(err error) Field {
	return zap.Error(err)
}

// Stringer logs the String() value of v only if the entry is written.
func Stringer(key string, v interface{ String() string }) Field {
	return zap.Stringer(key, v)
}

// Since is a convenience for logging elapsed time.
func Since(key string, start time.Time) Field {
	return zap.Duration(key, time.Since(start))
}
