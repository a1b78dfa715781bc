package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArchAIq/global-development/internal/artifact"
)

var csvNames = []string{"CDC_midbln.csv", "CDC_IPO.csv", "CDC_CIS_100mln.csv"}

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func loadCSV(path string) ([]map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: empty file", path)
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
	return rows, nil
}

// buildWebpageIndex collects brand_name -> webpage from the source CSVs.
// Later files win on duplicate names; missing files are skipped.
func buildWebpageIndex(dir string) (map[string]string, error) {
	index := make(map[string]string)
	for _, name := range csvNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		rows, err := loadCSV(path)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			brand := strings.TrimSpace(row["brand_name"])
			url := strings.TrimSpace(row["webpage"])
			if brand != "" && url != "" && strings.HasPrefix(url, "http") {
				index[brand] = url
			}
		}
	}
	return index, nil
}

// applyWebpages sets the webpage field on every company, null when the
// index has no entry for its name. Returns how many got a URL.
func applyWebpages(doc *artifact.LinkedDocument, index map[string]string) int {
	merged := 0
	for i := range doc.Companies {
		url, ok := index[doc.Companies[i].Name]
		if ok && url != "" {
			doc.Companies[i].Webpage = &url
			merged++
		} else {
			doc.Companies[i].Webpage = nil
		}
	}
	return merged
}

func main() {
	dir := flag.String("dir", ".", "directory holding the source CSVs")
	jsonPath := flag.String("json", "companies-by-revenue.json", "revenue artifact to update")
	flag.Parse()

	index, err := buildWebpageIndex(*dir)
	if err != nil {
		fatalf("index error: %v", err)
	}

	doc, err := artifact.ReadLinked(*jsonPath)
	if err != nil {
		fatalf("read error: %v", err)
	}

	merged := applyWebpages(&doc, index)

	if err := artifact.Write(*jsonPath, doc); err != nil {
		fatalf("write error: %v", err)
	}
	fmt.Printf("Updated %s: %d/%d companies have webpage\n", *jsonPath, merged, len(doc.Companies))
}
