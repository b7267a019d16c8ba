// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/H0llyW00dzZ/certview/src/internal/helper/gc"
	"github.com/goccy/go-json"
)

// Log levels written by JSONLogger.
const (
	LevelInfo = "info"
	LevelWarn = "warn"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// The CLI picks an implementation from the --log-format flag, so commands
// log through this interface only.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// Warnf formats and prints a warning, such as a data anomaly.
	Warnf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled, writing
// to stderr so that rendered results on stdout stay pipeable.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Warnf prints a message prefixed with "warning: ".
func (c *CLILogger) Warnf(format string, v ...any) {
	c.logger.Printf("warning: "+format, v...)
}

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.logger.SetOutput(w)
}

// JSONLogger implements Logger with structured output: every call writes
// one {"level","message"} object followed by a newline.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewJSONLogger creates a structured logger writing to writer.
// A nil writer discards output. With silent set every call is a no-op.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf formats and logs an info message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(LevelInfo, fmt.Sprintf(format, v...))
}

// Println logs an info message built with fmt.Sprint semantics.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	j.write(LevelInfo, fmt.Sprint(v...))
}

// Warnf formats and logs a warning.
func (j *JSONLogger) Warnf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(LevelWarn, fmt.Sprintf(format, v...))
}

// write encodes outside the lock and holds it only for the final write, so
// lines from concurrent callers never interleave.
func (j *JSONLogger) write(level, msg string) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Encode appends the newline. A string-only struct cannot fail to encode.
	_ = json.NewEncoder(buf).Encode(entry{Level: level, Message: msg})

	j.mu.Lock()
	defer j.mu.Unlock()
	j.writer.Write(buf.Bytes())
}

// SetOutput sets the output destination for the JSON logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

// New returns the logger for a --log-format value: "json" selects
// JSONLogger, anything else CLILogger. Quiet loggers discard everything.
func New(format string, w io.Writer, quiet bool) Logger {
	if format == "json" {
		return NewJSONLogger(w, quiet)
	}
	l := NewCLILogger()
	if quiet {
		w = io.Discard
	}
	if w != nil {
		l.SetOutput(w)
	}
	return l
}
