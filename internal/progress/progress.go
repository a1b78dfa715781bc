// Package progress appends machine-readable run events to a JSONL file.
package progress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger writes one JSON object per event, both to the progress file and
// to Out. Every event carries a UTC timestamp and the run id minted when
// the logger was created.
type Logger struct {
	Out   io.Writer
	path  string
	runID string
}

func NewLogger(path string) *Logger {
	return &Logger{
		Out:   os.Stdout,
		path:  path,
		runID: uuid.NewString(),
	}
}

// RunID returns the identifier stamped on this run's events.
func (l *Logger) RunID() string {
	return l.runID
}

// Log appends an event with the given name and fields.
func (l *Logger) Log(evt string, fields map[string]any) error {
	rec := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		rec[k] = v
	}
	rec["evt"] = evt
	rec["ts"] = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	rec["run_id"] = l.runID
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(payload, '\n')); err != nil {
		return err
	}
	fmt.Fprintln(l.Out, string(payload))
	return nil
}
