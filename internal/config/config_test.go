package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadPipeline_MissingFileGivesDefaults(t *testing.T) {
	p, err := LoadPipeline(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wantSources := []string{"CDC_midbln.csv", "CDC_IPO.csv", "CDC_CIS_100mln.csv"}
	if len(p.Sources) != len(wantSources) {
		t.Fatalf("expected %d sources, got %v", len(wantSources), p.Sources)
	}
	for i, s := range wantSources {
		if p.Sources[i] != s {
			t.Fatalf("expected source %q at %d, got %q", s, i, p.Sources[i])
		}
	}
	if p.Columns.Name != "brand_name" || p.Columns.NameFallback != "hq_office" {
		t.Fatalf("unexpected default columns %+v", p.Columns)
	}
	if p.Output.JSON != "companies-by-revenue.json" {
		t.Fatalf("unexpected default output %q", p.Output.JSON)
	}
	if p.Output.Page != "index.html" {
		t.Fatalf("unexpected default page %q", p.Output.Page)
	}
}

func TestLoadPipeline_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "sources:\n  - a.csv\n  - b.csv\noutput:\n  json: out.json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := LoadPipeline(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(p.Sources) != 2 || p.Sources[0] != "a.csv" {
		t.Fatalf("unexpected sources %v", p.Sources)
	}
	if p.Output.JSON != "out.json" {
		t.Fatalf("unexpected output %q", p.Output.JSON)
	}
	if p.Columns.Revenue != "last_Y" {
		t.Fatalf("expected default revenue column, got %q", p.Columns.Revenue)
	}
}

func TestLoadPipeline_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sources: [unclosed"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadPipeline(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadPipeline_EmptySourceRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  - a.csv\n  - \"  \"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadPipeline(path)
	if err == nil || !strings.Contains(err.Error(), "sources[1]") {
		t.Fatalf("expected empty source error, got %v", err)
	}
}

func TestLoadCredentials(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"config_gemini.json": `{"ITEM": "gem-key"}`,
		"config_openai.json": `{"openai_api_key": "oai-key"}`,
		"config_mapbox.json": `{"access_token": "pk.abc", "style": "mapbox://styles/x"}`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	c, err := LoadCredentials(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Gemini != "gem-key" || c.OpenAI != "oai-key" {
		t.Fatalf("unexpected keys %+v", c)
	}
	if c.Grok != "" {
		t.Fatalf("expected empty grok key, got %q", c.Grok)
	}
	if c.Mapbox.AccessToken != "pk.abc" || c.Mapbox.Style != "mapbox://styles/x" {
		t.Fatalf("unexpected mapbox %+v", c.Mapbox)
	}
}

func TestLoadCredentials_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config_openai.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadCredentials(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestProviders(t *testing.T) {
	p := NewProviders(Credentials{Gemini: "g", OpenAI: "o"})
	if p.Current() != ProviderOpenAI {
		t.Fatalf("expected default ai_openai, got %q", p.Current())
	}
	if k, ok := p.Key(ProviderGemini); !ok || k != "g" {
		t.Fatalf("unexpected gemini key %q (%v)", k, ok)
	}
	if err := p.Switch(ProviderGemini); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if p.Current() != ProviderGemini {
		t.Fatalf("expected ai_gemini, got %q", p.Current())
	}
	if err := p.Switch("ai_nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
	names := p.Names()
	want := []string{ProviderGemini, ProviderGrok, ProviderOpenAI}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}
