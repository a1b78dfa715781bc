package main

import (
	"bytes"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// webpageEntry pairs a researched company name with its verified
// official website. Order matters: containment lookups take the first
// entry that matches.
type webpageEntry struct {
	name string
	url  string
}

var webpageDirectory = []webpageEntry{
	{"China State Construction Engineering", "https://english.cscec.com/"},
	{"China Railway Group", "https://www.crecg.com/english/"},
	{"China Railway Construction", "https://english.crcc.cn/"},
	{"China Communications Construction", "https://en.ccccltd.cn/"},
	{"Power Construction Corporation of China", "https://en.powerchina.cn/"},
	{"Vinci", "https://www.vinci.com/en"},
	{"Grupo ACS", "https://www.grupoacs.com/"},
	{"Bouygues", "https://www.bouygues.com/en/"},
	{"Hochtief", "https://www.hochtief.com/"},
	{"Daiwa House", "https://www.daiwahouse.com/english/"},
	{"Lennar", "https://www.lennar.com/"},
	{"D.R. Horton", "https://www.drhorton.com/"},
	{"Larsen & Toubro", "https://www.larsentoubro.com/"},
	{"Sekisui House", "https://www.sekisuihouse.co.jp/english/"},
	{"China National Chemical Engineering", "https://en.cncec.com.cn/"},
	{"Eiffage", "https://www.eiffage.com/en/"},
	{"Skanska", "https://group.skanska.com/"},
	{"Kajima", "https://www.kajima.co.jp/english/"},
	{"Strabag", "https://www.strabag.com/en"},
	{"PulteGroup", "https://www.pulte.com/"},
	{"China Vanke", "https://www.vanke.com/en/"},
	{"Country Garden", "https://www.countrygarden.com.cn/en/"},
	{"Poly Developments", "https://www.poly.com.cn/"},
	{"China Resources Land", "https://www.crland.com.hk/"},
	{"Emcor", "https://www.emcor.com/"},
	{"Fluor", "https://www.fluor.com/"},
	{"China State Construction International", "https://www.csci.com.hk/en/"},
	{"Sichuan Road and Bridge Group", "https://www.srbg.com.cn/"},
	{"Shimizu Corporation", "https://www.shimz.co.jp/english/"},
	{"Sumitomo Forestry", "https://www.sumitomo-forestry.com/english/"},
	{"Taisei Corporation", "https://www.taisei.co.jp/english/"},
	{"Daito Trust Construction", "https://www.daito-trust.co.jp/english/"},
	{"Toll Brothers", "https://www.tollbrothers.com/"},
	{"NVR", "https://www.nvrinc.com/"},
	{"Balfour Beatty", "https://www.balfourbeatty.com/"},
	{"Ferrovial", "https://www.ferrovial.com/"},
	{"Hyundai Engineering & Construction", "https://www.hdec.kr/eng/"},
	{"Taylor Morrison", "https://www.taylormorrison.com/"},
	{"Acciona", "https://www.acciona.com/"},
	{"Fomento de Construcciones y Contratas", "https://www.fcc.es/"},
	{"AtkinsRéalis", "https://www.atkinsrealis.com/"},
	{"Primoris Services", "https://www.prim.com/"},
	{"HASEKO Corporation", "https://www.haseko.co.jp/english/"},
	{"Subsea 7", "https://www.subsea7.com/"},
	{"PORR", "https://www.porr-group.com/"},
	{"KB Home", "https://www.kbhome.com/"},
	{"Ackermans & Van Haaren", "https://www.avh.be/"},
	{"Lendlease", "https://www.lendlease.com/"},
	{"Sacyr", "https://www.sacyr.com/"},
	{"Meritage Homes", "https://www.meritagehomes.com/"},
	{"NCC", "https://www.ncc.se/en/"},
	{"Peab", "https://www.peab.se/"},
	{"JGC Holdings", "https://www.jgc.com/en/"},
	{"INFRONEER Holdings", "https://www.infroneer.com/"},
	{"Barratt Redrow", "https://www.barrattdevelopments.co.uk/"},
	{"Tutor Perini", "https://www.tutorperini.com/"},
	{"Webuild", "https://www.webuildgroup.com/"},
	{"Obrascón Huarte Lain", "https://www.ohla-group.com/"},
	{"Kier Group", "https://www.kier.co.uk/"},
	{"Vistry Group", "https://www.vistrygroup.co.uk/"},
	{"Fletcher Building", "https://www.fletcherbuilding.com/"},
	{"Dream Finders Homes", "https://www.dreamfindershomes.com/"},
	{"Taylor Wimpey", "https://www.taylorwimpey.co.uk/"},
	{"M/I Homes", "https://www.mihomes.com/"},
	{"Emaar Properties", "https://www.emaar.com/"},
	{"DEME Group", "https://www.deme-group.com/"},
	{"Granite Construction", "https://www.graniteconstruction.com/"},
	{"Century Communities", "https://www.centurycommunities.com/"},
	{"Kandenko", "https://www.kandenko.co.jp/english/"},
	{"Persimmon", "https://www.persimmonhomes.com/"},
	{"Implenia", "https://www.implenia.com/"},
	{"Veidekke", "https://www.veidekke.com/"},
	{"Shandong Hi-Speed", "https://www.sdhs.com.cn/"},
	{"Tri Pointe Homes", "https://www.tripointehomes.com/"},
	{"TODA Corporation", "https://www.todakenchiku.co.jp/english/"},
	{"Aecon Group", "https://www.aecon.com/"},
	{"MYR Group", "https://www.myrgroup.com/"},
	{"Per Aarsleff Holding", "https://www.aarsleff.com/"},
	{"Hovnanian Enterprises", "https://www.khov.com/"},
	{"The Berkeley Group", "https://www.berkeleygroup.co.uk/"},
	{"Bellway", "https://www.bellway.co.uk/"},
	{"Installed Building Products", "https://www.installedbuildingproducts.com/"},
	{"AF Gruppen", "https://www.afgruppen.com/"},
	{"ENKA", "https://www.enka.com/"},
	{"Arcosa", "https://www.arcosa.com/"},
	{"Kalpataru Power Transmission", "https://www.kalpatarupower.com/"},
	{"KEC International", "https://www.kecl.com/"},
	{"Elecnor", "https://www.elecnor.com/"},
	{"Champion Homes", "https://www.skylinechampion.com/"},
	{"Shikun & Binui", "https://www.shikunbinui.com/"},
	{"NCC Limited", "https://www.ncclimited.com/"},
	{"Bird Construction", "https://www.bird.ca/"},
	{"Park Lawn Corporation", "https://www.parklawncorp.com/"},
	{"Construction Partners", "https://www.constructionpartners.com/"},
	{"Beazer Homes", "https://www.beazer.com/"},
	{"Budimex", "https://www.budimex.pl/"},
	{"Galliford Try", "https://www.gallifordtry.co.uk/"},
	{"Sterling Infrastructure", "https://www.sterlinginfrastructure.com/"},
	{"Gek Terna", "https://www.gekterna.com/"},
	{"Grupo Empresarial San José", "https://www.gruposanjose.com/"},
	{"Green Brick Partners", "https://www.greenbrickpartners.com/"},
	{"Okumura Corporation", "https://www.okumura.co.jp/english/"},
	{"YIT", "https://www.yitgroup.com/"},
	{"NRW Holdings", "https://www.nrw.com.au/"},
	{"Danya Cebus", "https://www.danyacebus.co.il/"},
	{"BAUER AG", "https://www.bauer.de/"},
	{"GS Engineering & Construction", "https://www.gsconst.com/eng/"},
	{"Mitsui Fudosan", "https://www.mitsuifudosan.co.jp/english/"},
	{"Sumitomo Realty & Development", "https://www.sumitomo-rd.co.jp/english/"},
	{"Orascom Construction", "https://www.orascom.com/"},
	{"China Overseas Land & Investment", "https://www.coli.com.hk/"},
	{"Longfor Group", "https://www.longfor.com/"},
	{"Mitsubishi Estate", "https://www.mec.co.jp/e/"},
	{"Open House Group", "https://www.openhouse-group.com/english/"},
	{"Iida Group", "https://www.iida-group.co.jp/english/"},
	{"Sun Hung Kai Properties", "https://www.shkp.com/"},
	{"Vinhomes", "https://vinhomes.vn/"},
	{"Nexity", "https://www.nexity.fr/"},
	{"City Developments Limited", "https://www.cdl.com.sg/"},
	{"Mirvac", "https://www.mirvac.com/"},
	{"Stockland", "https://www.stockland.com.au/"},
	{"MDC Holdings", "https://www.richmondamerican.com/"},
	{"DLF Limited", "https://www.dlf.in/"},
	{"PIK Group", "https://pik-group.com/"},
	{"LSR Group", "https://www.lsrgroup.ru/"},
	{"Samolet Group", "https://www.samolet.ru/"},
	{"Etalon Group", "https://www.etalongroup.com/"},
	{"Setl Group", "https://www.setlgroup.ru/"},
	{"BI Group", "https://www.bi-group.org/"},
	{"KazStroyService", "https://www.kazstroy.kz/"},
	{"Mattamy Homes", "https://www.mattamyhomes.com/"},
	{"Brookfield Residential", "https://www.brookfieldresidential.com/"},
	{"Vonovia", "https://www.vonovia.de/"},
	{"Balder", "https://www.balder.se/"},
	{"LEG Immobilien", "https://www.leg-wohnen.de/"},
	{"Aroundtown", "https://www.aroundtown.de/"},
	{"TAG Immobilien", "https://www.tag-ag.com/"},
	{"Kojamo", "https://www.kojamo.fi/"},
	{"Befimmo", "https://www.befimmo.be/"},
	{"Cofinimmo", "https://www.cofinimmo.be/"},
	{"PSP Swiss Property", "https://www.psp.info/"},
	{"S Immo", "https://www.s-immo.at/"},
	{"Warimpex", "https://www.warimpex.com/"},
	{"De Volkswoningborg", "https://www.volkswoningbouw.nl/"},
	{"MRV", "https://www.mrv.com.br/"},
	{"Gafisa", "https://www.gafisa.com.br/"},
	{"Cyrela Brazil Realty", "https://www.cyrela.com.br/"},
	{"Direcional Engenharia", "https://www.direcional.com.br/"},
	{"Tegra Incorporadora", "https://www.tegra.com.br/"},
	{"TAV Construction", "https://www.tavconstruction.com/eng/"},
	{"Arabtec Holding", "https://www.arabtec-construction.com/en"},
	{"Cedar Woods Properties", "https://www.cedarwoods.com.au/"},
	{"Villa World (AVID Property Group)", "https://www.avid.com.au/"},
	{"Goodman Group", "https://www.goodman.com/"},
}

var csvNames = []string{"CDC_midbln.csv", "CDC_CIS_100mln.csv", "CDC_IPO.csv"}

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// normalizeLookupName strips surrounding whitespace and quote characters
// before directory lookups.
func normalizeLookupName(name string) string {
	return strings.Trim(strings.TrimSpace(name), `"`)
}

// webpageFor resolves a brand name against the directory: exact match
// first, then case-insensitive containment in either direction.
func webpageFor(brandName string) string {
	name := normalizeLookupName(brandName)
	if name == "" {
		return ""
	}
	for _, e := range webpageDirectory {
		if e.name == name {
			return e.url
		}
	}
	lower := strings.ToLower(name)
	for _, e := range webpageDirectory {
		key := strings.ToLower(e.name)
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return e.url
		}
	}
	return ""
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

// processCSV fills the webpage column of the file in place and returns
// the number of rows written.
func processCSV(path string) (int, error) {
	headers, rows, err := loadCSV(path)
	if err != nil {
		return 0, err
	}
	hasColumn := false
	for _, h := range headers {
		if h == "webpage" {
			hasColumn = true
			break
		}
	}
	if !hasColumn {
		headers = append(headers, "webpage")
	}
	for _, row := range rows {
		row["webpage"] = webpageFor(row["brand_name"])
	}
	if err := writeCSV(path, headers, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func main() {
	dir := flag.String("dir", ".", "directory holding the source CSVs")
	flag.Parse()

	for _, name := range csvNames {
		path := filepath.Join(*dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		n, err := processCSV(path)
		if err != nil {
			fatalf("%s: %v", name, err)
		}
		fmt.Printf("Updated %s with webpage column (%d rows)\n", path, n)
	}
}
