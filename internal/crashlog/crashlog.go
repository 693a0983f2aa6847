// Package crashlog is the append-only failure log. Entries survive restarts;
// the file is only ever appended to, so the history of crashes on a node can
// be read back after the fact.
package crashlog

import (
	"fmt"
	"os"
	"time"
)

// DefaultPath is where the node keeps its crash log.
const DefaultPath = "/var/log/hvac-logger.log"

// Log appends to a single log file, opening and closing it per write so a
// crash never leaves the file dangling.
type Log struct {
	path string
}

// New creates a Log writing to the given path.
func New(path string) *Log {
	return &Log{path: path}
}

// Append writes one raw entry.
func (l *Log) Append(text string) error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open crash log: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		return fmt.Errorf("append crash log: %w", err)
	}
	return nil
}

// Starting records a boot banner.
func (l *Log) Starting(t time.Time) error {
	return l.Append(fmt.Sprintf("\n\n============== Starting: %s ==============\n", stamp(t)))
}

// Running records the transition into the reporting loop.
func (l *Log) Running(t time.Time) error {
	return l.Append(fmt.Sprintf("==============  Running: %s ==============\n", stamp(t)))
}

// Failure records an error with its timestamp.
func (l *Log) Failure(t time.Time, err error) error {
	return l.Append(fmt.Sprintf("----------- %s -----------\n%v\n", stamp(t), err))
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
