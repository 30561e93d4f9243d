// Package debug provides conditional debug logging and assertions for
// threadline.
//
// Debug output is enabled by setting the TL_DEBUG environment variable:
//
//	TL_DEBUG=1 tl
//
// When enabled, messages are written to stderr with timestamps and failed
// assertions panic so programming errors fail loudly during development.
// When disabled (default), every function here is a no-op: assertions
// degrade to silence so a release build never crashes the UI over a
// recoverable fault.
package debug

import (
	"fmt"
	"log"
	"os"
	"time"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("TL_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[TL_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control, mainly from tests.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[TL_DEBUG] ", log.Ltime|log.Lmicroseconds)
	}
}

// Log writes a printf-style debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogEnterExit logs function entry and exit with timing:
//
//	defer debug.LogEnterExit("loadCycle")()
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Assert logs and panics if the condition is false. Only active when debug
// is enabled; in release builds a failed assertion is silent.
func Assert(cond bool, msg string) {
	if !enabled || cond {
		return
	}
	logger.Printf("ASSERTION FAILED: %s", msg)
	panic(fmt.Sprintf("debug assertion failed: %s", msg))
}

// AssertNoError logs and panics if err is not nil. Only active when debug
// is enabled.
func AssertNoError(err error, context string) {
	if !enabled || err == nil {
		return
	}
	logger.Printf("ASSERTION FAILED: %s: %v", context, err)
	panic(fmt.Sprintf("debug assertion failed: %s: %v", context, err))
}
