package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrorLog records per-document failures, one line per failure:
//
//	[2006-01-02 15:04:05] documentName: message
//
// The file is append-only; a failed append never aborts the run.
type ErrorLog struct {
	path string
	now  func() time.Time
}

// NewErrorLog builds a log writing to path.
func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path, now: time.Now}
}

// Record appends one failure line.
func (l *ErrorLog) Record(documentName, message string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create error log directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}
	defer file.Close()

	timestamp := l.now().Format("2006-01-02 15:04:05")
	if _, err := fmt.Fprintf(file, "[%s] %s: %s\n", timestamp, documentName, message); err != nil {
		return fmt.Errorf("append error log: %w", err)
	}
	return nil
}
