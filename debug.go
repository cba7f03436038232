package ghkk

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// DebugLogger writes diagnostics for gh-kk operations.
// Error output is always emitted; everything else only in verbose mode,
// tagged with a per-run id so one invocation's narration can be grepped.
type DebugLogger struct {
	mu      sync.Mutex
	enabled bool
	closer  io.Closer
	errs    *log.Logger
	debug   *log.Logger
}

// NewDebugLogger creates a new debug logger writing errors to errW.
// If logPath is empty, verbose narration also goes to errW.
func NewDebugLogger(enabled bool, logPath string, errW io.Writer) (*DebugLogger, error) {
	if errW == nil {
		errW = os.Stderr
	}
	l := &DebugLogger{enabled: enabled}

	debugW := errW
	if enabled && logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		debugW = f
		l.closer = f
	}

	l.errs = log.NewWithOptions(errW, log.Options{Level: log.ErrorLevel})
	l.debug = log.NewWithOptions(debugW, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		Prefix:          "gh-kk",
	}).With("run", ulid.Make().String())

	return l, nil
}

// Enabled reports whether verbose narration is on.
func (l *DebugLogger) Enabled() bool {
	return l != nil && l.enabled
}

// Close closes the debug log file if one was opened.
func (l *DebugLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer != nil {
		err := l.closer.Close()
		l.closer = nil
		return err
	}
	return nil
}

// Error writes a single diagnostic line to the error channel.
func (l *DebugLogger) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs.Error(fmt.Sprintf(format, args...))
}

// Log writes a debug message if verbose mode is enabled.
func (l *DebugLogger) Log(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug.Debug(fmt.Sprintf(format, args...))
}

// LogCommand logs an external command invocation.
func (l *DebugLogger) LogCommand(name string, args []string, exitCode int) {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug.Debug("COMMAND", "name", name, "args", args, "exit", exitCode)
}

// LogRequest logs an outgoing HTTP request.
func (l *DebugLogger) LogRequest(method, url string) {
	l.Log("REQUEST %s %s", method, url)
}

// LogResponse logs an HTTP response.
func (l *DebugLogger) LogResponse(statusCode int, status string, body []byte) {
	if !l.Enabled() {
		return
	}
	l.Log("RESPONSE %d %s", statusCode, status)
	if len(body) > 0 {
		l.Log("RESPONSE BODY: %s", truncateForLog(string(body), 4000))
	}
}

// LogError logs an error with full details.
func (l *DebugLogger) LogError(operation string, err error) {
	if !l.Enabled() {
		return
	}
	l.Log("ERROR [%s]: %+v", operation, err)
}

// truncateForLog truncates a string for logging purposes.
func truncateForLog(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + fmt.Sprintf("... [truncated, %d bytes total]", len(s))
}
