package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/ArchAIq/global-development/internal/artifact"
	"github.com/ArchAIq/global-development/internal/config"
)

type server struct {
	artifactPath string
	mapbox       config.Mapbox
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	jsonPath := flag.String("path", "companies-by-revenue.json", "revenue artifact to serve")
	configDir := flag.String("config", "config", "directory with API key files")
	flag.Parse()

	creds, err := config.LoadCredentials(*configDir)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	s := &server{artifactPath: *jsonPath, mapbox: creds.Mapbox}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/companies.json", s.handleCompanies)
	mux.HandleFunc("/config.js", s.handleConfigJS)
	mux.HandleFunc("/", s.handleIndex)

	log.Printf("treemap-server listening on %s (artifact=%s)", *addr, *jsonPath)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// handleIndex renders the treemap page. The artifact is read per request
// so enrichment runs show up on the next reload.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	doc, err := artifact.ReadLinked(s.artifactPath)
	if err != nil {
		http.Error(w, "artifact unavailable", http.StatusInternalServerError)
		log.Printf("artifact read error: %v", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, map[string]any{
		"data_json": mustJSONTemplateJS(doc),
		"count":     len(doc.Companies),
		"total":     fmtMillions(doc.TotalRevenue),
	}); err != nil {
		log.Printf("template error: %v", err)
	}
}

func (s *server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	doc, err := artifact.ReadLinked(s.artifactPath)
	if err != nil {
		http.Error(w, "artifact unavailable", http.StatusInternalServerError)
		log.Printf("artifact read error: %v", err)
		return
	}
	writeJSON(w, doc)
}

func (s *server) handleConfigJS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	fmt.Fprintf(w, "const MAPBOX_ACCESS_TOKEN = %q;\nconst MAPBOX_STYLE = %q;\n",
		s.mapbox.AccessToken, s.mapbox.Style)
}

func writeJSON(w http.ResponseWriter, v any) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		log.Printf("json marshal error: %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(append(payload, '\n'))
}

func mustJSONTemplateJS(v any) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("json marshal error for template data: %v", err)
		return template.JS("null")
	}
	return template.JS(b)
}

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

func fmtMillions(f float64) string {
	return "$" + fmtInt(int(math.Round(f))) + "M"
}

var pageTemplate = template.Must(template.New("treemap").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Construction & Development Companies by Revenue</title>
  <script src="/config.js"></script>
  <style>
    :root {
      --bg: #f6f3ee;
      --ink: #222;
      --line: #d8d2c6;
      --accent: #1f6f54;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      background: var(--bg);
      color: var(--ink);
      font-family: "Georgia", "Times New Roman", serif;
    }
    .shell { max-width: 1280px; margin: 0 auto; padding: 20px 20px 48px; }
    .topbar {
      display: flex;
      align-items: center;
      justify-content: space-between;
      gap: 12px;
      padding: 12px 18px;
      border: 1px solid var(--line);
      border-radius: 999px;
      background: #fff;
    }
    .logo {
      font-size: 14px;
      letter-spacing: 0.16em;
      text-transform: uppercase;
      font-weight: 700;
      color: var(--accent);
    }
    .meta { color: #6b6358; font-size: 13px; }
    .meta b { color: var(--ink); }
    .status {
      margin-top: 16px;
      border: 1px dashed var(--line);
      border-radius: 10px;
      padding: 12px;
      background: #fff;
      color: #6b6358;
      font-size: 14px;
    }
    #treemap {
      display: flex;
      flex-wrap: wrap;
      align-items: flex-start;
      gap: 6px;
      margin-top: 18px;
    }
    .tile {
      display: flex;
      flex-direction: column;
      justify-content: space-between;
      padding: 10px;
      border-radius: 6px;
      color: #fff;
      text-decoration: none;
      overflow: hidden;
    }
    a.tile:hover { outline: 2px solid var(--ink); outline-offset: 1px; }
    .tile-name { font-size: 13px; line-height: 1.25; overflow: hidden; }
    .tile-revenue { font-size: 12px; opacity: 0.85; }
    .foot { margin-top: 20px; color: #6b6358; font-size: 13px; }
    .foot a { color: var(--accent); }
  </style>
</head>
<body>
  <div class="shell">
    <div class="topbar">
      <div class="logo">global development</div>
      <div class="meta"><b>{{ .count }}</b> companies &middot; <b>{{ .total }}</b> combined revenue</div>
    </div>

    <div class="status" id="status">Loading treemap...</div>
    <div id="treemap"></div>

    <div class="foot">
      Tile area follows annual revenue (millions USD). Raw data:
      <a href="/companies.json">companies.json</a>
    </div>
  </div>

  <script>
    (function () {
      var treemapEl = document.getElementById("treemap");
      var statusEl = document.getElementById("status");

      function escapeHtml(s) {
        return String(s).replace(/[&<>"']/g, function (ch) {
          return { "&": "&amp;", "<": "&lt;", ">": "&gt;", '"': "&quot;", "'": "&#39;" }[ch];
        });
      }

      function fmtMillions(n) {
        if (!isFinite(n)) return "";
        return "$" + Math.round(n).toLocaleString("en-US") + "M";
      }

      function linkFor(c) {
        if (c.webpage) return c.webpage;
        if (c.ipo) return "https://finance.yahoo.com/quote/" + encodeURIComponent(c.ipo);
        return null;
      }

      var palette = ["#1f6f54", "#2d8a68", "#3f7a93", "#8a5a2d", "#6d4e7e", "#a23e48"];

      function renderTile(c, share, i) {
        var size = Math.max(56, Math.round(Math.sqrt(share * 480000)));
        var name = escapeHtml(c.name || "Unknown");
        var revenue = fmtMillions(c.revenue);
        var style = "width:" + size + "px;height:" + size + "px;background:" + palette[i % palette.length] + ";";
        var inner =
          '<span class="tile-name">' + name + '</span>' +
          '<span class="tile-revenue">' + revenue + '</span>';
        var title = name + " " + revenue;
        var href = linkFor(c);
        if (href) {
          return '<a class="tile" target="_blank" rel="noopener" href="' + escapeHtml(href) +
            '" style="' + style + '" title="' + title + '">' + inner + '</a>';
        }
        return '<div class="tile" style="' + style + '" title="' + title + '">' + inner + '</div>';
      }

      try {
        var data = {{ .data_json }};
        var companies = Array.isArray(data.companies) ? data.companies : [];
        if (companies.length === 0) {
          statusEl.textContent = "No companies to display.";
          return;
        }
        var total = data.totalRevenue || 0;
        treemapEl.innerHTML = companies.map(function (c, i) {
          var share = total > 0 ? c.revenue / total : 0;
          return renderTile(c, share, i);
        }).join("");
        statusEl.hidden = true;
      } catch (err) {
        statusEl.textContent = "Could not render the treemap right now.";
      }
    })();
  </script>
</body>
</html>`))
