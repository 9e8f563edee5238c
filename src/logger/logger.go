// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/ades-remote-signer/src/internal/helper/gc"
)

// Log levels written by [StructuredLogger].
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// FormatJSON selects [StructuredLogger] in [ForFormat].
const FormatJSON = "json"

// Logger defines the interface for logging operations.
type Logger interface {
	// Printf formats and prints an informational message.
	Printf(format string, v ...any)
	// Println prints an informational message with a newline.
	Println(v ...any)
	// Errorf formats and prints an error message.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stdout, "", 0)}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Errorf prints a message prefixed with "error: ".
func (c *CLILogger) Errorf(format string, v ...any) { c.logger.Printf("error: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// Writer returns the output destination of the CLI logger.
func (c *CLILogger) Writer() io.Writer { return c.logger.Writer() }

// ForFormat returns the logger matching a configured log format. For
// "json" a [CLILogger] is replaced by a [StructuredLogger] writing to the
// same destination; any other logger or format is returned unchanged.
func ForFormat(l Logger, format string) Logger {
	if format != FormatJSON {
		return l
	}
	if cl, ok := l.(*CLILogger); ok {
		return NewStructuredLogger(cl.Writer(), false)
	}
	return l
}

// sink is the destination shared between a StructuredLogger and the
// loggers derived from it with [StructuredLogger.WithComponent].
type sink struct {
	mu     sync.Mutex
	writer io.Writer
}

// StructuredLogger implements Logger with JSON lines.
//
// StructuredLogger is safe for concurrent use by multiple goroutines.
type StructuredLogger struct {
	sink      *sink
	component string
	silent    bool
}

type entry struct {
	Level     string `json:"level"`
	Message   string `json:"message"`
	Component string `json:"component,omitempty"`
}

// NewStructuredLogger creates a JSON logger. With silent set nothing is
// written, which keeps the [MCP] stdio channel clean.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewStructuredLogger(writer io.Writer, silent bool) *StructuredLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &StructuredLogger{
		sink:   &sink{writer: writer},
		silent: silent,
	}
}

// WithComponent returns a logger tagging every entry with component.
// The returned logger shares the destination of l.
func (l *StructuredLogger) WithComponent(component string) *StructuredLogger {
	return &StructuredLogger{sink: l.sink, component: component, silent: l.silent}
}

func (l *StructuredLogger) write(level, msg string) {
	if l.silent {
		return
	}

	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(entry{Level: level, Message: msg, Component: l.component}); err != nil {
		return
	}

	l.sink.mu.Lock()
	l.sink.writer.Write(buf.Bytes())
	l.sink.mu.Unlock()
}

// Printf formats and logs an info entry.
func (l *StructuredLogger) Printf(format string, v ...any) { l.write(LevelInfo, fmt.Sprintf(format, v...)) }

// Println logs an info entry.
func (l *StructuredLogger) Println(v ...any) { l.write(LevelInfo, fmt.Sprint(v...)) }

// Errorf formats and logs an error entry.
func (l *StructuredLogger) Errorf(format string, v ...any) {
	l.write(LevelError, fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination, shared with derived loggers.
func (l *StructuredLogger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if w == nil {
		l.sink.writer = io.Discard
	} else {
		l.sink.writer = w
	}
}
