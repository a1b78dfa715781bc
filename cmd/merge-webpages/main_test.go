package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ArchAIq/global-development/internal/artifact"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBuildWebpageIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CDC_midbln.csv"),
		"brand_name,webpage\nVinci,https://www.vinci.com/en\nAcme,not-a-url\nBlank,\n")
	writeFile(t, filepath.Join(dir, "CDC_IPO.csv"),
		"brand_name,webpage\nVinci,https://vinci.example.com/\n")
	// CDC_CIS_100mln.csv intentionally absent.

	index, err := buildWebpageIndex(dir)
	if err != nil {
		t.Fatalf("buildWebpageIndex: %v", err)
	}
	if len(index) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(index), index)
	}
	// The IPO file is read after midbln, so its URL wins.
	if index["Vinci"] != "https://vinci.example.com/" {
		t.Fatalf("expected later file to win, got %q", index["Vinci"])
	}
}

func TestApplyWebpages(t *testing.T) {
	doc := artifact.LinkedDocument{
		Companies: []artifact.LinkedCompany{
			{Company: artifact.Company{Name: "Vinci", Revenue: 100}},
			{Company: artifact.Company{Name: "Acme", Revenue: 50}},
		},
		TotalRevenue: 150,
	}
	index := map[string]string{"Vinci": "https://www.vinci.com/en"}

	merged := applyWebpages(&doc, index)
	if merged != 1 {
		t.Fatalf("expected 1 merged, got %d", merged)
	}
	if doc.Companies[0].Webpage == nil || *doc.Companies[0].Webpage != "https://www.vinci.com/en" {
		t.Fatalf("expected Vinci webpage set, got %v", doc.Companies[0].Webpage)
	}
	if doc.Companies[1].Webpage != nil {
		t.Fatalf("expected nil webpage for Acme, got %q", *doc.Companies[1].Webpage)
	}
}

func TestApplyWebpagesClearsStaleLinks(t *testing.T) {
	old := "https://old.example.com/"
	doc := artifact.LinkedDocument{
		Companies: []artifact.LinkedCompany{
			{Company: artifact.Company{Name: "Acme", Revenue: 50}, Webpage: &old},
		},
		TotalRevenue: 50,
	}
	if merged := applyWebpages(&doc, map[string]string{}); merged != 0 {
		t.Fatalf("expected 0 merged, got %d", merged)
	}
	if doc.Companies[0].Webpage != nil {
		t.Fatalf("expected stale webpage cleared, got %q", *doc.Companies[0].Webpage)
	}
}

func TestMergeWebpagesEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "CDC_midbln.csv"),
		"brand_name,webpage\nVinci,https://www.vinci.com/en\n")
	jsonPath := filepath.Join(dir, "companies-by-revenue.json")
	writeFile(t, jsonPath, `{
  "companies": [
    {"name": "Vinci", "revenue": 100, "country": "France", "ipo": null},
    {"name": "Acme", "revenue": 50, "country": "USA", "ipo": "ACM"}
  ],
  "totalRevenue": 150
}
`)

	index, err := buildWebpageIndex(dir)
	if err != nil {
		t.Fatalf("buildWebpageIndex: %v", err)
	}
	doc, err := artifact.ReadLinked(jsonPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	applyWebpages(&doc, index)
	if err := artifact.Write(jsonPath, doc); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, `"webpage": "https://www.vinci.com/en"`) {
		t.Fatalf("expected Vinci webpage in output, got %s", got)
	}
	if !strings.Contains(got, `"webpage": null`) {
		t.Fatalf("expected null webpage for Acme, got %s", got)
	}
}
