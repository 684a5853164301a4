package logging

import (
	"fmt"
	"log"
)

// Logger receives non-fatal warnings. msg is a short, static description;
// kv is an alternating key/value sequence of context, mirroring the
// structured-logging convention callers commonly layer on top (zap,
// logrus, slog) without tying this module to any one of them.
type Logger interface {
	Warn(msg string, kv ...any)
}

// Nop discards every warning. It is the default when no Logger is
// supplied.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Std adapts the standard library's log package, rendering kv pairs
// inline after msg.
var Std Logger = stdLogger{}

type stdLogger struct{}

func (stdLogger) Warn(msg string, kv ...any) {
	log.Println(format(msg, kv...))
}

func format(msg string, kv ...any) string {
	out := msg
	for i := 0; i+1 < len(kv); i += 2 {
		out += " "
		if s, ok := kv[i].(string); ok {
			out += s
		} else {
			out += "?"
		}
		out += "="
		out += toString(kv[i+1])
	}

	return out
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return fmt.Sprintf("%v", t)
	}
}
