package output

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConsoleWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := (&ConsoleWriter{}).Write(sampleReport(t), OutputOptions{Stdout: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := strings.Join([]string{
		"Found 3 commits.",
		"Grouped into 2 sessions.",
		"Session 1: 2 commits, ~17.7 minutes estimated",
		"Session 2: 1 commits, ~0.1 minutes estimated",
		"",
		"--- Summary ---",
		"Total Estimated Coding Time: ~0.3 hours",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("console output mismatch\n got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestConsoleWriter_FileHasNoColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := (&ConsoleWriter{}).Write(sampleReport(t), OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Contains(data, []byte("\x1b[")) {
		t.Error("file output should not contain ANSI escapes")
	}
	if !bytes.Contains(data, []byte("--- Summary ---")) {
		t.Error("file output missing summary")
	}
}

func TestJSONWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONWriter{}).Write(sampleReport(t), OutputOptions{Stdout: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got JSONReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if got.RepoPath != "/work/repo" || got.Since != nil || got.Until != "2026-02-10" {
		t.Errorf("header = %#v", got)
	}
	if got.TotalCommits != 3 || got.TotalSessions != 2 || len(got.Sessions) != 2 {
		t.Errorf("totals = %d commits, %d sessions, %d entries", got.TotalCommits, got.TotalSessions, len(got.Sessions))
	}
	if got.Sessions[0].Commits != 2 || got.Sessions[0].LinesChanged != 60 {
		t.Errorf("sessions[0] = %#v", got.Sessions[0])
	}
	if got.Parameters.Session.MaxGapMinutes != 90 {
		t.Errorf("parameters = %#v", got.Parameters)
	}
	sum := got.Sessions[0].Minutes + got.Sessions[1].Minutes
	if diff := got.TotalMinutes - sum; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("TotalMinutes = %f, sessions sum to %f", got.TotalMinutes, sum)
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVWriter{}).Write(sampleReport(t), OutputOptions{Stdout: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, expected header + 2 rows", len(records))
	}
	if records[0][0] != "Session" || records[0][7] != "Minutes" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][0] != "1" || records[1][1] != "2" || records[2][4] != "5" {
		t.Errorf("rows = %v", records[1:])
	}
}

func TestCSVWriter_TopOption(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVWriter{}).Write(sampleReport(t), OutputOptions{Stdout: &buf, Top: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, expected header + 1 row", len(records))
	}
}

func TestMarkdownWriter_Write(t *testing.T) {
	report := sampleReport(t)
	report.RepoPath = "/work/my_repo"

	var buf bytes.Buffer
	if err := (&MarkdownWriter{}).Write(report, OutputOptions{Stdout: &buf}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Coding Time Estimate",
		"**Repository:** /work/my\\_repo",
		"**Until:** 2026-02-10",
		"**Sessions:** 2",
		"~0.3 hours",
		"| 1 |",
		"| 2 |",
		"_Max gap 90 min, 0.02 min per line, pre-commit factor 1._",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q\n%s", want, out)
		}
	}
}

func TestCIWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci.ndjson")
	if err := (&CIWriter{}).Write(sampleReport(t), OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var m map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatalf("invalid NDJSON line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 3 {
		t.Fatalf("lines = %d, expected summary + 2 sessions", len(lines))
	}
	if lines[0]["type"] != "summary" || lines[0]["totalSessions"] != float64(2) {
		t.Errorf("summary = %v", lines[0])
	}
	if lines[1]["type"] != "session" || lines[2]["index"] != float64(2) {
		t.Errorf("session lines = %v", lines[1:])
	}
}
