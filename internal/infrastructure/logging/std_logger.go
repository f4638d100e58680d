package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/LeonIngman/LTH-Game-sub001/internal/infrastructure/config"
)

var levelRank = map[string]int{
	"DEBUG":   0,
	"INFO":    1,
	"WARNING": 2,
	"WARN":    2,
	"ERROR":   3,
}

// StdLogger writes handler log entries through the standard library logger.
// Entries below the configured level are dropped.
type StdLogger struct {
	logger   *log.Logger
	minRank  int
	jsonMode bool
	now      func() time.Time
}

// NewStdLogger creates a logger writing to w
func NewStdLogger(w io.Writer, level, format string) *StdLogger {
	return &StdLogger{
		logger:   log.New(w, "", 0),
		minRank:  rank(level),
		jsonMode: format == "json",
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewStdLoggerFromConfig opens the configured output and creates a logger.
// The returned closer must be called on shutdown when output is a file.
func NewStdLoggerFromConfig(cfg config.LoggingConfig) (*StdLogger, io.Closer, error) {
	var w io.WriteCloser
	switch cfg.Output {
	case "stdout":
		w = nopCloser{os.Stdout}
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
	default:
		w = nopCloser{os.Stderr}
	}
	return NewStdLogger(w, cfg.Level, cfg.Format), w, nil
}

// Log writes one entry; metadata keys are emitted in sorted order
func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	level = strings.ToUpper(level)
	if rank(level) < l.minRank {
		return
	}

	if l.jsonMode {
		entry := make(map[string]interface{}, len(metadata)+3)
		for k, v := range metadata {
			entry[k] = v
		}
		entry["time"] = l.now().Format(time.RFC3339)
		entry["level"] = level
		entry["msg"] = message
		data, err := json.Marshal(entry)
		if err != nil {
			l.logger.Printf("%s %s %s (metadata not serializable: %v)", l.now().Format(time.RFC3339), level, message, err)
			return
		}
		l.logger.Print(string(data))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", l.now().Format(time.RFC3339), level, message)
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, metadata[k])
	}
	l.logger.Print(b.String())
}

func rank(level string) int {
	if r, ok := levelRank[strings.ToUpper(level)]; ok {
		return r
	}
	return levelRank["INFO"]
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
