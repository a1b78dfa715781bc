package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArchAIq/global-development/internal/progress"
)

const northAmericaReply = "```json\n" + `[
  {"brand_name": "D.R. Horton", "hq_office": "D.R. Horton, Inc.", "hq_address": "1341 Horton Circle, Arlington, TX",
   "lat": 32.73, "lon": -97.11, "country": "United States", "country_code": "US",
   "founded": 1978, "last_Y": 35800.5, "last_Ninc": 4700, "Y": 2023, "IPO": "DHI", "employees": 13450},
  {"brand_name": "   ", "hq_office": "Anonymous Builders", "country_code": "US"},
  {"brand_name": null, "hq_office": "Unnamed Office LLC", "country": "Canada", "country_code": "CA",
   "founded": null, "IPO": "UOL"}
]` + "\n```"

const europeReply = `Here are the results: [
  {"brand_name": "d.r. horton", "country_code": "US", "founded": 1978},
  {"brand_name": "Vinci", "hq_office": "Vinci SA", "country": "France", "country_code": "FR",
   "founded": 1899, "last_Y": 68018, "IPO": "DG", "employees": 279426}
] hope this helps`

func fakeContent(t *testing.T) contentFunc {
	t.Helper()
	return func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "North America"):
			return northAmericaReply, nil
		case strings.Contains(prompt, "Europe"):
			return europeReply, nil
		case strings.Contains(prompt, "Asia"):
			return "", errors.New("status 429: quota exhausted")
		default:
			return "No companies found for this region.", nil
		}
	}
}

func TestCollectCompanies(t *testing.T) {
	progressPath := filepath.Join(t.TempDir(), "progress.jsonl")
	lg := progress.NewLogger(progressPath)
	lg.Out = io.Discard

	rows := collectCompanies(context.Background(), fakeContent(t), lg, 0)
	if len(rows) != 3 {
		t.Fatalf("expected 3 companies, got %d: %v", len(rows), rows)
	}

	if rows[0]["brand_id"] != "1" || rows[1]["brand_id"] != "2" || rows[2]["brand_id"] != "3" {
		t.Fatalf("expected sequential brand ids, got %q %q %q",
			rows[0]["brand_id"], rows[1]["brand_id"], rows[2]["brand_id"])
	}
	if rows[0]["brand_name"] != "D.R. Horton" {
		t.Fatalf("expected D.R. Horton first, got %q", rows[0]["brand_name"])
	}
	// Number literals from the reply survive verbatim.
	if rows[0]["founded"] != "1978" {
		t.Fatalf("expected founded 1978, got %q", rows[0]["founded"])
	}
	if rows[0]["last_Y"] != "35800.5" {
		t.Fatalf("expected last_Y 35800.5, got %q", rows[0]["last_Y"])
	}
	// Null brand_name falls back to the office name for dedup, while the
	// CSV cell itself stays empty.
	if rows[1]["brand_name"] != "" || rows[1]["hq_office"] != "Unnamed Office LLC" {
		t.Fatalf("expected office fallback row, got %v", rows[1])
	}
	if rows[2]["brand_name"] != "Vinci" {
		t.Fatalf("expected Vinci after dedup, got %q", rows[2]["brand_name"])
	}
}

func TestCollectCompaniesProgressEvents(t *testing.T) {
	progressPath := filepath.Join(t.TempDir(), "progress.jsonl")
	lg := progress.NewLogger(progressPath)
	lg.Out = io.Discard

	collectCompanies(context.Background(), fakeContent(t), lg, 0)

	b, err := os.ReadFile(progressPath)
	if err != nil {
		t.Fatalf("read progress: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	counts := map[string]int{}
	for _, line := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("bad progress line %q: %v", line, err)
		}
		evt, _ := rec["evt"].(string)
		counts[evt]++
		if rec["run_id"] != lg.RunID() {
			t.Fatalf("expected run_id %q, got %v", lg.RunID(), rec["run_id"])
		}
	}
	if counts["region_start"] != len(regions) {
		t.Fatalf("expected %d region_start events, got %d", len(regions), counts["region_start"])
	}
	if counts["error"] != 1 {
		t.Fatalf("expected 1 error event, got %d", counts["error"])
	}
	if counts["company_added"] != 3 {
		t.Fatalf("expected 3 company_added events, got %d", counts["company_added"])
	}
}

func TestNormalizeRowBlanksWhitespace(t *testing.T) {
	row := normalizeRow(map[string]any{
		"brand_name": "Acme",
		"hq_address": "   ",
		"IPO":        nil,
	}, 7)
	if row["brand_id"] != "7" {
		t.Fatalf("expected brand_id 7, got %q", row["brand_id"])
	}
	if row["hq_address"] != "" {
		t.Fatalf("expected blank address, got %q", row["hq_address"])
	}
	if row["IPO"] != "" {
		t.Fatalf("expected empty IPO, got %q", row["IPO"])
	}
}

func TestWriteCSVSchemaOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CDC_IPO.csv")
	rows := []map[string]string{{
		"brand_id":   "1",
		"brand_name": "D.R. Horton",
		"hq_address": "1341 Horton Circle, Arlington, TX",
		"country":    "United States",
	}}
	if err := writeCSV(path, schema, rows); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	wantHeader := strings.Join(schema, ",")
	if lines[0] != wantHeader {
		t.Fatalf("expected header %q, got %q", wantHeader, lines[0])
	}
	if !strings.HasPrefix(lines[1], `1,D.R. Horton,,"1341 Horton Circle, Arlington, TX"`) {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}

func TestRegionPromptMentionsSchemaFields(t *testing.T) {
	prompt := fmt.Sprintf(regionPromptFmt, regions[0])
	for _, col := range schema[1:] {
		if !strings.Contains(prompt, col) {
			t.Fatalf("prompt missing field %q", col)
		}
	}
}
