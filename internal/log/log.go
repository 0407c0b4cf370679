// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the env variable holding the log level.
const EnvLevel = "ASSETQ_LOG"

var traceEnabled bool

// InitLogger sets up Apex with the line handler and a log level from the
// ASSETQ_LOG env variable. Log lines go to stderr so they never mix with
// dataset output.
func InitLogger() {
	level, trace := levelFromEnv(os.Getenv(EnvLevel))
	traceEnabled = trace
	log.SetHandler(NewLineHandler(os.Stderr))
	log.SetLevel(level)
}

// levelFromEnv maps an ASSETQ_LOG value to an apex level. trace is reported
// separately since apex has no level below debug.
func levelFromEnv(v string) (log.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "trace":
		return log.DebugLevel, true
	case "debug":
		return log.DebugLevel, false
	case "info":
		return log.InfoLevel, false
	case "warn":
		return log.WarnLevel, false
	case "fatal":
		return log.FatalLevel, false
	default:
		return log.ErrorLevel, false
	}
}

// LineHandler writes one "<timestamp> <level> <message>" line per entry.
type LineHandler struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewLineHandler(out io.Writer) *LineHandler {
	return &LineHandler{out: out, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *LineHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	// Fields from WithError and friends trail the message.
	for _, name := range e.Fields.Names() {
		message += fmt.Sprintf(" %s=%v", name, e.Fields.Get(name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintf(h.out, "%s %s %s\n", timestamp, level, message)
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
