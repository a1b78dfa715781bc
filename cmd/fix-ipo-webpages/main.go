package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArchAIq/global-development/internal/aiclient"
	"github.com/ArchAIq/global-development/internal/artifact"
	"github.com/ArchAIq/global-development/internal/config"
	"github.com/ArchAIq/global-development/internal/webcheck"
)

const openaiSystemPrompt = "You are a researcher. Reply with ONLY a single valid URL (https://) of the official MAIN corporate website for the given company - NOT investor relations, NOT SEC filings. If unsure, return best guess. No explanation, no quotes, just the URL. If you cannot find one, reply exactly: NONE"

const openaiUserFmt = "Main company website (not investor/IPO page) for: %s (company based in %s). Construction/real estate/development company."

const geminiPromptFmt = "Main company website (not investor/IPO page) for: %s (company based in %s). Construction/real estate/development company. Reply with ONLY a single valid https URL. No explanation. If unknown, reply NONE."

var csvNames = []string{"CDC_midbln.csv", "CDC_IPO.csv", "CDC_CIS_100mln.csv"}

type suggestFunc func(ctx context.Context, name, country string) string

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// limiter caps how many replacements a run may make. max 0 means no cap.
type limiter struct {
	max  int
	used int
}

func (l *limiter) note() { l.used++ }

func (l *limiter) exhausted() bool { return l.max > 0 && l.used >= l.max }

type aiChain struct {
	oai         *aiclient.OpenAI
	gem         *aiclient.Gemini
	geminiFirst bool
}

func (c *aiChain) askOpenAI(ctx context.Context, name, country string) string {
	if c.oai == nil {
		return ""
	}
	text, err := c.oai.Complete(ctx, openaiSystemPrompt, fmt.Sprintf(openaiUserFmt, name, country))
	if err != nil {
		fmt.Printf("  OpenAI error: %v\n", err)
		return ""
	}
	return aiclient.ParseSuggestedURL(text)
}

func (c *aiChain) askGemini(ctx context.Context, name, country string) string {
	if c.gem == nil {
		return ""
	}
	text, err := c.gem.Generate(ctx, fmt.Sprintf(geminiPromptFmt, name, country))
	if err != nil {
		fmt.Printf("  Gemini error: %v\n", err)
		return ""
	}
	return aiclient.ParseSuggestedURL(text)
}

func (c *aiChain) suggest(ctx context.Context, name, country string) string {
	if c.geminiFirst {
		if c.gem != nil {
			if url := c.askGemini(ctx, name, country); url != "" {
				return url
			}
			if c.oai != nil {
				fmt.Println("  Trying OpenAI fallback...")
			}
		}
		return c.askOpenAI(ctx, name, country)
	}
	if c.oai != nil {
		if url := c.askOpenAI(ctx, name, country); url != "" {
			return url
		}
		fmt.Println("  Trying Gemini fallback...")
	}
	return c.askGemini(ctx, name, country)
}

func loadCSV(path string) ([]string, []map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%s: empty file", path)
	}
	headers := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

func needsCSVQuote(field string) bool {
	return strings.ContainsAny(field, ",\"\n\r")
}

func writeCSVRecord(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		if needsCSVQuote(f) {
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		} else {
			b.WriteString(f)
		}
	}
	b.WriteString("\r\n")
}

func writeCSV(path string, headers []string, rows []map[string]string) error {
	var b strings.Builder
	writeCSVRecord(&b, headers)
	for _, row := range rows {
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = row[h]
		}
		writeCSVRecord(&b, fields)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// fixRows replaces non-brand webpage URLs in the rows of one CSV and
// returns how many it changed.
func fixRows(ctx context.Context, label string, rows []map[string]string, suggest suggestFunc, lim *limiter) int {
	fixed := 0
	for _, row := range rows {
		url := strings.TrimSpace(row["webpage"])
		if url == "" || !strings.HasPrefix(url, "http") {
			continue
		}
		if !webcheck.IsNonBrandPage(url) {
			continue
		}
		name := strings.TrimSpace(row["brand_name"])
		if name == "" {
			name = "Unknown"
		}
		country := strings.TrimSpace(row["country"])

		fmt.Printf("\n[csv=%s] IPO page: %s\n", label, name)
		fmt.Printf("  URL: %s\n", url)
		fmt.Println("  Asking AI for main company webpage...")
		newURL := suggest(ctx, name, country)
		if newURL == "" {
			fmt.Println("  -> No alternative found, keeping original")
			continue
		}
		fmt.Printf("  -> Replaced with: %s\n", newURL)
		row["webpage"] = newURL
		fixed++
		lim.note()
		if lim.exhausted() {
			break
		}
	}
	return fixed
}

// fixDocument replaces webpages in the revenue artifact that are either
// missing while an IPO ticker exists (the page falls back to a finance
// site then) or point at a non-brand page.
func fixDocument(ctx context.Context, doc *artifact.LinkedDocument, suggest suggestFunc, lim *limiter) int {
	fixed := 0
	for i := range doc.Companies {
		c := &doc.Companies[i]
		urlStr := ""
		if c.Webpage != nil {
			urlStr = strings.TrimSpace(*c.Webpage)
		}
		hasIPO := c.IPO != nil && *c.IPO != ""
		needsFix := (urlStr == "" && hasIPO) || (urlStr != "" && webcheck.IsNonBrandPage(urlStr))
		if !needsFix {
			continue
		}
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = "Unknown"
		}
		country := strings.TrimSpace(c.Country)

		current := urlStr
		if current == "" {
			current = "(null - treemap shows Yahoo Finance)"
		}
		fmt.Printf("\n[json] %s\n", name)
		fmt.Printf("  Current: %s\n", current)
		fmt.Println("  Asking AI for main company webpage...")
		newURL := suggest(ctx, name, country)
		if newURL == "" {
			fmt.Println("  -> No alternative found")
			continue
		}
		fmt.Printf("  -> Set: %s\n", newURL)
		c.Webpage = &newURL
		fixed++
		lim.note()
		if lim.exhausted() {
			break
		}
	}
	return fixed
}

func main() {
	dir := flag.String("dir", ".", "directory holding the source CSVs")
	jsonPath := flag.String("json", "companies-by-revenue.json", "revenue artifact to fix")
	configDir := flag.String("config", "config", "directory with API key files")
	provider := flag.String("provider", "", "provider to ask first (ai_openai, ai_gemini)")
	limit := flag.Int("limit", 0, "max companies to fix (0=no limit)")
	flag.Parse()

	creds, err := config.LoadCredentials(*configDir)
	if err != nil {
		fatalf("config error: %v", err)
	}
	reg := config.NewProviders(creds)
	if *provider != "" {
		if err := reg.Switch(*provider); err != nil {
			fatalf("%v (have: %s)", err, strings.Join(reg.Names(), ", "))
		}
	}

	chain := &aiChain{geminiFirst: reg.Current() == config.ProviderGemini}
	if creds.OpenAI != "" {
		chain.oai = aiclient.NewOpenAI(creds.OpenAI)
	}
	if creds.Gemini != "" {
		chain.gem = aiclient.NewGemini(creds.Gemini)
	}
	if chain.oai == nil && chain.gem == nil {
		fatalf("Error: No AI key found. Set config_openai.json or config_gemini.json (ai_openai / ai_gemini).")
	}

	ctx := context.Background()
	lim := &limiter{max: *limit}
	totalFixed := 0

	for _, name := range csvNames {
		path := filepath.Join(*dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		headers, rows, err := loadCSV(path)
		if err != nil {
			fatalf("%s: %v", name, err)
		}
		hasColumn := false
		for _, h := range headers {
			if h == "webpage" {
				hasColumn = true
				break
			}
		}
		if !hasColumn {
			fmt.Printf("  %s: no webpage column, skip\n", name)
			continue
		}

		fixed := fixRows(ctx, name, rows, chain.suggest, lim)
		totalFixed += fixed
		if fixed > 0 {
			if err := writeCSV(path, headers, rows); err != nil {
				fatalf("%s: %v", name, err)
			}
			fmt.Printf("  Saved %s: %d updated\n", name, fixed)
		}
		if lim.exhausted() {
			break
		}
	}

	if !lim.exhausted() {
		if _, err := os.Stat(*jsonPath); err == nil {
			doc, err := artifact.ReadLinked(*jsonPath)
			if err != nil {
				fatalf("read error: %v", err)
			}
			fixed := fixDocument(ctx, &doc, chain.suggest, lim)
			totalFixed += fixed
			if fixed > 0 {
				if err := artifact.Write(*jsonPath, doc); err != nil {
					fatalf("write error: %v", err)
				}
				fmt.Printf("  Saved %s: %d updated\n", *jsonPath, fixed)
			}
		}
	}

	fmt.Printf("\nDone: %d webpage(s) replaced across CSVs + JSON.\n", totalFixed)
}
