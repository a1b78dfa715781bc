package artifact

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ArchAIq/global-development/internal/company"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func rec(name, country, ipo string, rev float64) company.Record {
	return company.Record{
		Key: company.NormalizeKey(name),
		Row: company.Row{
			"brand_name": name,
			"country":    country,
			"IPO":        ipo,
		},
		Revenue: rev,
	}
}

func TestBuild_FiltersSortsAndSums(t *testing.T) {
	recs := []company.Record{
		rec("Low", "UK", "", 450),
		rec("Bad", "US", "", math.NaN()),
		rec("Zero", "US", "", 0),
		rec("Negative", "DE", "", -50),
		rec("Infinite", "FR", "", math.Inf(1)),
		rec("Top", "RU", "UBJ", 2500),
		rec("Mid", "AU", "HIL", 750),
	}
	doc := Build(recs, company.DefaultColumns())

	want := []string{"Top", "Mid", "Low"}
	if len(doc.Companies) != len(want) {
		t.Fatalf("expected %d companies, got %d", len(want), len(doc.Companies))
	}
	for i, name := range want {
		if doc.Companies[i].Name != name {
			t.Fatalf("expected %q at %d, got %q", name, i, doc.Companies[i].Name)
		}
	}
	for i := 0; i+1 < len(doc.Companies); i++ {
		if doc.Companies[i].Revenue < doc.Companies[i+1].Revenue {
			t.Fatalf("companies not sorted descending at %d", i)
		}
	}
	if !almostEqual(doc.TotalRevenue, 2500+750+450) {
		t.Fatalf("expected total 3700, got %v", doc.TotalRevenue)
	}
}

func TestBuild_TiesKeepMergeOrder(t *testing.T) {
	recs := []company.Record{
		rec("First Tie", "UK", "", 450),
		rec("Second Tie", "FR", "", 450),
	}
	doc := Build(recs, company.DefaultColumns())
	if doc.Companies[0].Name != "First Tie" || doc.Companies[1].Name != "Second Tie" {
		t.Fatalf("expected stable tie order, got %q then %q",
			doc.Companies[0].Name, doc.Companies[1].Name)
	}
}

func TestBuild_IPOEmptyBecomesNull(t *testing.T) {
	doc := Build([]company.Record{
		rec("Listed", "US", "ACM", 100),
		rec("Private", "US", "", 90),
	}, company.DefaultColumns())

	if doc.Companies[0].IPO == nil || *doc.Companies[0].IPO != "ACM" {
		t.Fatalf("expected ticker ACM, got %v", doc.Companies[0].IPO)
	}
	if doc.Companies[1].IPO != nil {
		t.Fatalf("expected nil ipo, got %q", *doc.Companies[1].IPO)
	}
}

func TestWrite_KeyOrderAndRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	doc := Build([]company.Record{rec("Acme", "US", "ACM", 1200)}, company.DefaultColumns())
	if err := Write(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	ci := bytes.Index(b, []byte(`"companies"`))
	ti := bytes.Index(b, []byte(`"totalRevenue"`))
	if ci < 0 || ti < 0 || ci > ti {
		t.Fatalf("expected companies before totalRevenue, got indices %d, %d", ci, ti)
	}
	if !bytes.Contains(b, []byte(`"ipo": "ACM"`)) {
		t.Fatal("expected pretty-printed ipo field")
	}

	back, err := Read(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(back.Companies) != 1 || back.Companies[0].Name != "Acme" {
		t.Fatalf("unexpected round trip %+v", back)
	}
	if !almostEqual(back.TotalRevenue, 1200) {
		t.Fatalf("expected total 1200, got %v", back.TotalRevenue)
	}
}

func TestReadLinked_ToleratesMissingWebpageKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	doc := Build([]company.Record{rec("Acme", "US", "", 1200)}, company.DefaultColumns())
	if err := Write(path, doc); err != nil {
		t.Fatalf("write: %v", err)
	}
	linked, err := ReadLinked(path)
	if err != nil {
		t.Fatalf("read linked: %v", err)
	}
	if len(linked.Companies) != 1 {
		t.Fatalf("expected 1 company, got %d", len(linked.Companies))
	}
	if linked.Companies[0].Webpage != nil {
		t.Fatalf("expected nil webpage, got %q", *linked.Companies[0].Webpage)
	}
}
