package logging_test

import (
	"testing"

	"github.com/katalvlaran/osmroute/logging"
)

func TestNop_DoesNotPanic(t *testing.T) {
	logging.Nop.Warn("ignored", "k", "v")
}

func TestStd_DoesNotPanic(t *testing.T) {
	logging.Std.Warn("malformed record", "id", int64(42), "err", nil)
}
