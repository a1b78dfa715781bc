// Package config loads the pipeline run configuration and the typed
// credential files shared by the research tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pipeline describes a merge run: source files in fold priority order,
// the column roles they share, and the artifact destinations.
type Pipeline struct {
	Sources []string `yaml:"sources"`
	Columns Roles    `yaml:"columns"`
	Output  Output   `yaml:"output"`
}

// Roles names the columns carrying each merge-relevant value.
type Roles struct {
	Name         string `yaml:"name"`
	NameFallback string `yaml:"name_fallback"`
	Revenue      string `yaml:"revenue"`
	Country      string `yaml:"country"`
	IPO          string `yaml:"ipo"`
}

// Output holds the artifact destinations. A Page that does not exist on
// disk is skipped with a warning at run time.
type Output struct {
	JSON string `yaml:"json"`
	Page string `yaml:"page"`
}

// LoadPipeline reads path and fills defaults for anything omitted. A
// missing file is not an error and yields the stock CDC run.
func LoadPipeline(path string) (Pipeline, error) {
	var p Pipeline
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.applyDefaults()
			return p, nil
		}
		return p, err
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return p, fmt.Errorf("config: parse %s: %w", path, err)
	}
	p.applyDefaults()
	if err := p.validate(); err != nil {
		return p, fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

func (p *Pipeline) applyDefaults() {
	if len(p.Sources) == 0 {
		p.Sources = []string{"CDC_midbln.csv", "CDC_IPO.csv", "CDC_CIS_100mln.csv"}
	}
	if p.Columns.Name == "" {
		p.Columns.Name = "brand_name"
	}
	if p.Columns.NameFallback == "" {
		p.Columns.NameFallback = "hq_office"
	}
	if p.Columns.Revenue == "" {
		p.Columns.Revenue = "last_Y"
	}
	if p.Columns.Country == "" {
		p.Columns.Country = "country"
	}
	if p.Columns.IPO == "" {
		p.Columns.IPO = "IPO"
	}
	if p.Output.JSON == "" {
		p.Output.JSON = "companies-by-revenue.json"
	}
	if p.Output.Page == "" {
		p.Output.Page = "index.html"
	}
}

func (p *Pipeline) validate() error {
	for i, s := range p.Sources {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("sources[%d] is empty", i)
		}
	}
	return nil
}
