package logging

import (
	"bytes"
	"compress/gzip"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestAggregateLogs(t *testing.T) {
	t.Run("parses entries written by the logger", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, LevelDebug)
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		logger.WithView("map").Info("pin placed", "lat", 35.6)
		logger.WithReport("r-1").Debug("report filed")
		logger.Error("activate failed", "view", "unknown")
		_ = logger.Close()

		entries, err := AggregateLogs(dir)
		if err != nil {
			t.Fatalf("AggregateLogs failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Message != "pin placed" || entries[0].Level != "INFO" {
			t.Errorf("first entry = %+v", entries[0])
		}
		if entries[0].View != "map" {
			t.Errorf("expected view 'map', got %q", entries[0].View)
		}
		if entries[0].Attrs["lat"] != 35.6 {
			t.Errorf("expected lat=35.6, got %v", entries[0].Attrs["lat"])
		}
		if entries[1].ReportID != "r-1" {
			t.Errorf("expected report_id 'r-1', got %q", entries[1].ReportID)
		}
	})

	t.Run("returns error for missing log file", func(t *testing.T) {
		_, err := AggregateLogs(t.TempDir())
		if err == nil {
			t.Fatal("expected error for missing log file")
		}
		if !os.IsNotExist(err) && !strings.Contains(err.Error(), "no log file found") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("skips malformed JSON lines", func(t *testing.T) {
		dir := t.TempDir()
		writeLog(t, filepath.Join(dir, FileName), `{"time":"2024-01-01T12:00:00Z","level":"INFO","msg":"valid"}
invalid json line
{"time":"2024-01-01T12:00:01Z","level":"ERROR","msg":"also valid"}
`)

		entries, err := AggregateLogs(dir)
		if err != nil {
			t.Fatalf("AggregateLogs failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected 2 valid entries, got %d", len(entries))
		}
	})

	t.Run("merges rotated backups in time order", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, FileName)

		writeLog(t, base+".2", `{"time":"2024-01-01T12:00:00Z","level":"INFO","msg":"first"}`+"\n")
		writeLog(t, base, `{"time":"2024-01-01T12:00:02Z","level":"INFO","msg":"third"}`+"\n")

		var gz bytes.Buffer
		zw := gzip.NewWriter(&gz)
		_, _ = zw.Write([]byte(`{"time":"2024-01-01T12:00:01Z","level":"INFO","msg":"second"}` + "\n"))
		_ = zw.Close()
		writeLog(t, base+".1.gz", gz.String())

		files := LogFiles(dir)
		if len(files) != 3 || files[len(files)-1] != base {
			t.Fatalf("LogFiles = %v", files)
		}

		entries, err := AggregateLogs(dir)
		if err != nil {
			t.Fatalf("AggregateLogs failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		if entries[0].Message != "first" || entries[1].Message != "second" || entries[2].Message != "third" {
			t.Errorf("entries not sorted: %v, %v, %v", entries[0].Message, entries[1].Message, entries[2].Message)
		}
	})
}

func TestFilterLogs(t *testing.T) {
	now := time.Now()
	entries := []LogEntry{
		{Timestamp: now.Add(-2 * time.Hour), Level: LevelDebug, Message: "view activated", View: "home"},
		{Timestamp: now.Add(-time.Hour), Level: LevelInfo, Message: "report filed", View: "map"},
		{Timestamp: now, Level: LevelError, Message: "activate failed"},
	}

	tests := []struct {
		name   string
		filter LogFilter
		want   int
	}{
		{"empty filter", LogFilter{}, 3},
		{"level info and above", LogFilter{Level: "info"}, 2},
		{"level error", LogFilter{Level: LevelError}, 1},
		{"start time", LogFilter{StartTime: now.Add(-90 * time.Minute)}, 2},
		{"end time", LogFilter{EndTime: now.Add(-90 * time.Minute)}, 1},
		{"view", LogFilter{View: "map"}, 1},
		{"message", LogFilter{MessageContains: "activate"}, 2},
		{"combined", LogFilter{Level: LevelInfo, MessageContains: "activate"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterLogs(entries, tt.filter); len(got) != tt.want {
				t.Errorf("got %d entries, want %d", len(got), tt.want)
			}
		})
	}
}

func TestExportLogEntries(t *testing.T) {
	entries := []LogEntry{
		{
			Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			Level:     LevelInfo,
			Message:   "report filed",
			View:      "camera",
			ReportID:  "r-1",
			Attrs:     map[string]any{"points": 10.0},
		},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := ExportLogEntries(&buf, entries, "json"); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		var got []LogEntry
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got) != 1 || got[0].ReportID != "r-1" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := ExportLogEntries(&buf, entries, "TEXT"); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"[2024-01-01 12:00:00.000]", "INFO - report filed", "view=camera", "report=r-1", `"points":10`} {
			if !strings.Contains(out, want) {
				t.Errorf("text output missing %q: %s", want, out)
			}
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := ExportLogEntries(&buf, entries, "csv"); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		records, err := csv.NewReader(&buf).ReadAll()
		if err != nil {
			t.Fatalf("invalid CSV: %v", err)
		}
		if len(records) != 2 || records[1][3] != "camera" {
			t.Errorf("records = %v", records)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if err := ExportLogEntries(&bytes.Buffer{}, entries, "xml"); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}

func TestParseLogEntry(t *testing.T) {
	entry, err := ParseLogEntry(`{"time":"2024-01-01T12:00:00.5Z","level":"WARN","msg":"camera open failed","view":"camera","error":"denied"}`)
	if err != nil {
		t.Fatalf("ParseLogEntry failed: %v", err)
	}
	if entry.Level != LevelWarn || entry.View != "camera" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Attrs["error"] != "denied" {
		t.Errorf("attrs = %v", entry.Attrs)
	}
	if entry.Timestamp.Nanosecond() != 500000000 {
		t.Errorf("timestamp = %v", entry.Timestamp)
	}

	if _, err := ParseLogEntry("not json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
