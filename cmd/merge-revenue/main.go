package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ArchAIq/global-development/internal/artifact"
	"github.com/ArchAIq/global-development/internal/company"
	"github.com/ArchAIq/global-development/internal/config"
)

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// mergeSources folds every configured source, in order, into a single
// deduplicated document. Any unreadable source or source without a
// header line aborts the run.
func mergeSources(p config.Pipeline) (artifact.Document, int, error) {
	cols := company.Columns{
		Name:         p.Columns.Name,
		NameFallback: p.Columns.NameFallback,
		Revenue:      p.Columns.Revenue,
		Country:      p.Columns.Country,
		IPO:          p.Columns.IPO,
	}
	acc := company.NewAccumulator()
	for _, src := range p.Sources {
		tbl, err := company.Load(src)
		if err != nil {
			return artifact.Document{}, 0, err
		}
		company.Merge(acc, tbl, cols)
	}
	return artifact.Build(acc.Records(), cols), acc.Len(), nil
}

// fmtInt renders n with comma grouping.
func fmtInt(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func fmtRevenue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func main() {
	configPath := flag.String("config", "config.yaml", "pipeline configuration file")
	flag.Parse()

	p, err := config.LoadPipeline(*configPath)
	if err != nil {
		fatalf("config error: %v", err)
	}

	doc, merged, err := mergeSources(p)
	if err != nil {
		fatalf("merge error: %v", err)
	}
	if err := artifact.Write(p.Output.JSON, doc); err != nil {
		fatalf("write error: %v", err)
	}

	pageNote := "skipped"
	if p.Output.Page != "" {
		found, err := artifact.RewriteDataBlock(p.Output.Page, doc)
		switch {
		case errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(os.Stderr, "warning: page %s not found, skipped\n", p.Output.Page)
		case err != nil:
			fatalf("page error: %v", err)
		case !found:
			fmt.Fprintf(os.Stderr, "warning: no const data block in %s\n", p.Output.Page)
		default:
			pageNote = p.Output.Page
		}
	}

	fmt.Printf("Sources:        %s\n", fmtInt(len(p.Sources)))
	fmt.Printf("Merged:         %s\n", fmtInt(merged))
	fmt.Printf("Companies:      %s\n", fmtInt(len(doc.Companies)))
	fmt.Printf("Total revenue:  %s\n", fmtRevenue(doc.TotalRevenue))
	fmt.Printf("JSON:           %s\n", p.Output.JSON)
	fmt.Printf("Page:           %s\n", pageNote)
}
