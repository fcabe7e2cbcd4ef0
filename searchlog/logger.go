// Package searchlog appends video-search queries to a local CSV file.
package searchlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

var header = []string{"id", "timestamp", "query", "video_id", "video_title", "video_channel", "video_views"}

// Entry is one logged search. The video fields are empty when the search
// produced no usable result.
type Entry struct {
	Query        string
	VideoID      string
	VideoTitle   string
	VideoChannel string
	VideoViews   int64
}

// Logger appends entries to an append-only CSV file, creating the file and
// header row on first use. Appends within one process are serialized by a
// mutex; cross-process interleaving is accepted.
type Logger struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New builds a logger writing to path. The clock is injectable for tests.
func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// WithNow overrides the logger's clock.
func (l *Logger) WithNow(now func() time.Time) *Logger {
	l.now = now
	return l
}

// Append writes one CSV row and returns its generated id.
func (l *Logger) Append(e Entry) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	writeHeader := false
	if info, err := os.Stat(l.path); err != nil || info.Size() == 0 {
		writeHeader = true
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("open search log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}

	id := uuid.New().String()
	views := ""
	if e.VideoID != "" {
		views = strconv.FormatInt(e.VideoViews, 10)
	}
	row := []string{
		id,
		l.now().UTC().Format(time.RFC3339),
		e.Query,
		e.VideoID,
		e.VideoTitle,
		e.VideoChannel,
		views,
	}
	if err := w.Write(row); err != nil {
		return "", fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	return id, w.Error()
}
