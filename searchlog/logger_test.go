package searchlog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "searches.csv")
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return New(path).WithNow(func() time.Time { return fixed }), path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	l, path := testLogger(t)

	id1, err := l.Append(Entry{Query: "photosynthesis"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	id2, err := l.Append(Entry{Query: "calculus"})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("ids not unique: %q %q", id1, id2)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "id" || rows[0][2] != "query" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][2] != "photosynthesis" || rows[2][2] != "calculus" {
		t.Errorf("queries = %q, %q", rows[1][2], rows[2][2])
	}
}

func TestAppendFullEntry(t *testing.T) {
	l, path := testLogger(t)

	id, err := l.Append(Entry{
		Query:        "photosynthesis",
		VideoID:      "abcdefghij1",
		VideoTitle:   "Photosynthesis, Explained",
		VideoChannel: "CrashCourse",
		VideoViews:   1234567,
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	rows := readRows(t, path)
	row := rows[1]
	if row[0] != id {
		t.Errorf("id column = %q, want %q", row[0], id)
	}
	if row[1] != "2025-06-01T12:00:00Z" {
		t.Errorf("timestamp = %q", row[1])
	}
	if row[3] != "abcdefghij1" || row[4] != "Photosynthesis, Explained" || row[5] != "CrashCourse" || row[6] != "1234567" {
		t.Errorf("video columns = %v", row[3:])
	}
}

func TestAppendNoVideoLeavesViewsEmpty(t *testing.T) {
	l, path := testLogger(t)

	if _, err := l.Append(Entry{Query: "obscure topic"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	row := readRows(t, path)[1]
	for i := 3; i <= 6; i++ {
		if row[i] != "" {
			t.Errorf("column %d = %q, want empty", i, row[i])
		}
	}
}
