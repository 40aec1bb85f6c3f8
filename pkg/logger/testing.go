package logger

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

// testLogger funnels engine log lines into the test runner so a failing
// test carries the log output that led up to it. Fields accumulated via
// WithField/WithFields are rendered as key=value pairs in deterministic
// key order.
type testLogger struct {
	t      *testing.T
	fields map[string]interface{}
}

// NewTestLogger returns a Logger that writes through t.Log.
func NewTestLogger(t *testing.T) Logger {
	return &testLogger{t: t}
}

func (l *testLogger) emit(level, msg string) {
	if l.t == nil {
		return
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", level, msg)
	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, l.fields[k])
	}
	l.t.Log(b.String())
}

func (l *testLogger) Debug(msg string) { l.emit("DBG", msg) }
func (l *testLogger) Info(msg string)  { l.emit("INF", msg) }
func (l *testLogger) Warn(msg string)  { l.emit("WRN", msg) }
func (l *testLogger) Error(msg string) { l.emit("ERR", msg) }

// Fatal logs without aborting, tests decide their own failures.
func (l *testLogger) Fatal(msg string) { l.emit("FTL", msg) }

func (l *testLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *testLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &testLogger{t: l.t, fields: merged}
}
