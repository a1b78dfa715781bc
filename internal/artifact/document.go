// Package artifact builds and writes companies-by-revenue.json, the
// document every downstream tool reads or enriches.
package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/ArchAIq/global-development/internal/company"
)

// Company is one entry of the emitted document.
type Company struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Country string  `json:"country"`
	IPO     *string `json:"ipo"`
}

// Document is the artifact consumed by the visualization page.
type Document struct {
	Companies    []Company `json:"companies"`
	TotalRevenue float64   `json:"totalRevenue"`
}

// LinkedCompany is a Company carrying the webpage added by the
// enrichment tools; the key is always present, null when unknown.
type LinkedCompany struct {
	Company
	Webpage *string `json:"webpage"`
}

// LinkedDocument is a Document whose companies carry webpage links.
type LinkedDocument struct {
	Companies    []LinkedCompany `json:"companies"`
	TotalRevenue float64         `json:"totalRevenue"`
}

// Build projects merged records into a document. Records without a
// positive finite revenue are dropped, the rest are ordered by revenue
// descending with ties keeping their merge order, and TotalRevenue is
// the exact sum of the kept revenues.
func Build(recs []company.Record, cols company.Columns) Document {
	companies := make([]Company, 0, len(recs))
	for _, r := range recs {
		if math.IsNaN(r.Revenue) || math.IsInf(r.Revenue, 0) || r.Revenue <= 0 {
			continue
		}
		c := Company{
			Name:    cols.DisplayName(r.Row),
			Revenue: r.Revenue,
			Country: r.Row[cols.Country],
		}
		if v := r.Row[cols.IPO]; v != "" {
			c.IPO = &v
		}
		companies = append(companies, c)
	}
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Revenue > companies[j].Revenue
	})
	total := 0.0
	for _, c := range companies {
		total += c.Revenue
	}
	return Document{Companies: companies, TotalRevenue: total}
}

// Write serializes v pretty-printed to path, replacing any previous file.
func Write(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	payload = append(payload, '\n')
	return os.WriteFile(path, payload, 0o644)
}

// Read loads a document written by Write.
func Read(path string) (Document, error) {
	var doc Document
	if err := readJSON(path, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// ReadLinked loads a document tolerating absent webpage keys.
func ReadLinked(path string) (LinkedDocument, error) {
	var doc LinkedDocument
	if err := readJSON(path, &doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
