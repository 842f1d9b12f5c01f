// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errorlog appends fatal errors to a plain-text log file that
// operators read without any tooling.
package errorlog

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// TimestampFormat is the layout of the timestamp in each line.
const TimestampFormat = "2006-01-02 15:04:05.000000"

// Log appends error lines to a file.
type Log struct {
	Path string

	// Now returns the line timestamp. Defaults to time.Now.
	Now func() time.Time
}

// New returns a Log writing to path.
func New(path string) *Log {
	return &Log{Path: path, Now: time.Now}
}

// Line formats the log line for err without a trailing newline.
func (l *Log) Line(err error) string {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	msg := strings.TrimSpace(err.Error())
	return fmt.Sprintf("[ERROR] %s: An error occurred: %s", now().Format(TimestampFormat), msg)
}

// Append writes the line for err to the file, creating it if needed, and
// returns the line.
func (l *Log) Append(err error) (string, error) {
	line := l.Line(err)
	f, openErr := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if openErr != nil {
		return line, fmt.Errorf("opening error log %s: %w", l.Path, openErr)
	}
	defer f.Close()

	if _, werr := f.WriteString(line + "\n"); werr != nil {
		return line, fmt.Errorf("writing error log %s: %w", l.Path, werr)
	}
	return line, nil
}
