package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/ArchAIq/global-development/internal/artifact"
)

var sqliteColumns = []string{"rank", "name", "revenue", "country", "ipo", "webpage"}

var sqliteColumnTypes = map[string]string{
	"rank":    "INTEGER",
	"revenue": "REAL",
}

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

func writeSQLite(path string, doc artifact.LinkedDocument) error {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var defs []string
	for _, c := range sqliteColumns {
		t := sqliteColumnTypes[c]
		if t == "" {
			t = "TEXT"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, t))
	}
	if _, err := db.Exec(`DROP TABLE IF EXISTS "companies"`); err != nil {
		return err
	}
	if _, err := db.Exec(`CREATE TABLE "companies" (` + strings.Join(defs, ",") + `)`); err != nil {
		return err
	}
	ph := strings.TrimRight(strings.Repeat("?,", len(sqliteColumns)), ",")
	var qCols []string
	for _, c := range sqliteColumns {
		qCols = append(qCols, fmt.Sprintf("%q", c))
	}
	stmt, err := db.Prepare(`INSERT INTO "companies" (` + strings.Join(qCols, ",") + `) VALUES (` + ph + `)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, c := range doc.Companies {
		var ipo, webpage any
		if c.IPO != nil {
			ipo = *c.IPO
		}
		if c.Webpage != nil {
			webpage = *c.Webpage
		}
		if _, err := stmt.Exec(i+1, c.Name, c.Revenue, c.Country, ipo, webpage); err != nil {
			return err
		}
	}
	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_companies_name ON companies(name)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_country ON companies(country)`,
		`CREATE INDEX IF NOT EXISTS idx_companies_revenue ON companies(revenue)`,
	} {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	jsonPath := flag.String("path", "companies-by-revenue.json", "revenue artifact to export")
	outPath := flag.String("out", "companies.sqlite", "SQLite output path")
	flag.Parse()

	doc, err := artifact.ReadLinked(*jsonPath)
	if err != nil {
		fatalf("read error: %v", err)
	}
	if err := writeSQLite(*outPath, doc); err != nil {
		fatalf("write sqlite: %v", err)
	}

	fmt.Printf("Companies:  %d\n", len(doc.Companies))
	fmt.Printf("SQLite:     %s\n", *outPath)
}
