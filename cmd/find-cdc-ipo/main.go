package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ArchAIq/global-development/internal/aiclient"
	"github.com/ArchAIq/global-development/internal/config"
	"github.com/ArchAIq/global-development/internal/progress"
)

var schema = []string{
	"brand_id", "brand_name", "hq_office", "hq_address",
	"lat", "lon", "country", "country_code", "founded",
	"last_Y", "last_Ninc", "Y", "IPO", "employees",
}

var regions = []string{
	"North America (USA, Canada)",
	"Europe (Western, Central, Eastern)",
	"Asia (China, Japan, India, South Korea, Singapore, etc.)",
	"Latin America and Caribbean",
	"Middle East and Africa",
	"Australia and Oceania",
}

const regionPromptFmt = `List publicly traded (IPO) construction and real estate development companies headquartered in %s.
Focus on: residential/commercial construction, real estate development, housing developers, infrastructure.
Exclude: purely real estate agencies, REITs (unless also developers), materials-only manufacturers.

For each company return a JSON array with objects having:
- brand_name: protected/trademark brand name
- hq_office: official legal/head office company name
- hq_address: full official address
- lat: latitude (decimal, best estimate)
- lon: longitude (decimal, best estimate)
- country: full country name
- country_code: ISO 3166-1 alpha-2 (e.g. US, DE)
- founded: year established (integer)
- last_Y: last available annual turnover/revenue (number in millions USD)
- last_Ninc: last available net income (number in millions USD)
- Y: year of turnover/income data
- IPO: exchange ticker symbol
- employees: total employees (integer)

Use null for missing data. Be as accurate as possible.

Return ONLY a valid JSON array, no other text.`

// contentFunc produces the model reply for one research prompt.
type contentFunc func(ctx context.Context, prompt string) (string, error)

type dedupKey struct {
	name        string
	countryCode string
}

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// asString renders a decoded JSON value for a CSV cell. Numbers keep the
// literal form they had in the reply.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// cleanValue blanks whitespace-only cells and keeps everything else.
func cleanValue(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func normalizeRow(c map[string]any, brandID int) map[string]string {
	row := make(map[string]string, len(schema))
	row["brand_id"] = strconv.Itoa(brandID)
	for _, col := range schema[1:] {
		row[col] = cleanValue(asString(c[col]))
	}
	return row
}

// collectCompanies queries every region, parses the replies and dedups
// companies by lowercased name plus country code. A failed region is
// logged and skipped; the survivors keep their arrival order.
func collectCompanies(ctx context.Context, content contentFunc, lg *progress.Logger, pause time.Duration) []map[string]string {
	seen := make(map[dedupKey]bool)
	var rows []map[string]string
	for i, region := range regions {
		lg.Log("region_start", map[string]any{"region": region, "index": i + 1, "total": len(regions)})
		reply, err := content(ctx, fmt.Sprintf(regionPromptFmt, region))
		if err != nil {
			lg.Log("error", map[string]any{"region": region, "message": err.Error()})
			continue
		}
		lg.Log("api_response", map[string]any{"region": region, "length": len(reply)})
		companies := aiclient.ExtractCompanies(reply)
		lg.Log("parsed", map[string]any{"region": region, "count": len(companies)})
		for _, c := range companies {
			raw := asString(c["brand_name"])
			if raw == "" {
				raw = asString(c["hq_office"])
			}
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			key := dedupKey{strings.ToLower(name), asString(c["country_code"])}
			if seen[key] {
				continue
			}
			seen[key] = true
			rows = append(rows, normalizeRow(c, len(rows)+1))
			lg.Log("company_added", map[string]any{"brand_name": name, "brand_id": len(rows)})
		}
		time.Sleep(pause)
	}
	return rows
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

func main() {
	out := flag.String("out", "CDC_IPO.csv", "output CSV path")
	progressPath := flag.String("progress", "CDC_IPO_progress.jsonl", "progress JSONL path")
	configDir := flag.String("config", "config", "directory with API key files")
	sleep := flag.Duration("sleep", 2*time.Second, "pause between region queries")
	flag.Parse()

	creds, err := config.LoadCredentials(*configDir)
	if err != nil {
		fatalf("config error: %v", err)
	}
	if creds.Gemini == "" {
		fatalf("Gemini API key not found in config. Check config/config_gemini.json")
	}
	gem := aiclient.NewGemini(creds.Gemini)

	lg := progress.NewLogger(*progressPath)
	if err := lg.Log("start", map[string]any{"output_csv": *out, "progress_file": *progressPath}); err != nil {
		fatalf("progress error: %v", err)
	}

	rows := collectCompanies(context.Background(), gem.Generate, lg, *sleep)

	if err := writeCSV(*out, schema, rows); err != nil {
		fatalf("write error: %v", err)
	}
	lg.Log("done", map[string]any{"total": len(rows), "csv": *out})
	fmt.Printf("\nWrote %d companies to %s\n", len(rows), *out)
}
