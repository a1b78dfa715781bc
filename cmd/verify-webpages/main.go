package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ArchAIq/global-development/internal/aiclient"
	"github.com/ArchAIq/global-development/internal/artifact"
	"github.com/ArchAIq/global-development/internal/config"
	"github.com/ArchAIq/global-development/internal/webcheck"
)

const openaiSystemPrompt = "You are a researcher. Reply with ONLY a single valid URL (starting with https://) of the official corporate website for the given company. If unsure, return a best guess. No explanation, no quotes, just the URL. If you cannot find a reliable URL, reply with exactly: NONE"

const openaiUserFmt = "Official website URL for: %s (company based in %s). Construction/real estate/development company."

const geminiPromptFmt = "Official website URL for: %s (company based in %s). Construction/real estate/development company. Reply with ONLY a single valid https URL. No explanation. If unknown, reply NONE."

type statusFunc func(ctx context.Context, url string) int

type suggestFunc func(ctx context.Context, name, country string) string

func fatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg+"\n", args...)
	os.Exit(1)
}

// aiChain asks the preferred provider first and falls back to the other
// one when the answer is empty or errors out.
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

// verifyCompanies rechecks every linked webpage and replaces the broken
// ones with an AI suggestion that answers with an acceptable status.
func verifyCompanies(ctx context.Context, doc *artifact.LinkedDocument, status statusFunc, suggest suggestFunc) (fixed, broken int) {
	for i := range doc.Companies {
		c := &doc.Companies[i]
		if c.Webpage == nil {
			continue
		}
		url := *c.Webpage
		if !strings.HasPrefix(url, "http") {
			continue
		}
		name := c.Name
		if name == "" {
			name = "Unknown"
		}

		st := status(ctx, url)
		if !webcheck.Broken(st) {
			continue
		}
		fmt.Printf("[%d] %s: %s\n", st, name, url)
		fmt.Println("  Asking AI for alternative...")

		newURL := suggest(ctx, name, c.Country)
		if newURL == "" {
			fmt.Println("  -> No alternative found")
			broken++
			continue
		}
		newStatus := status(ctx, newURL)
		if webcheck.Acceptable(newStatus) {
			fmt.Printf("  -> Replaced with: %s (status %d)\n", newURL, newStatus)
			c.Webpage = &newURL
			fixed++
		} else {
			fmt.Printf("  -> Suggested URL returned %d, kept old\n", newStatus)
			broken++
		}
	}
	return fixed, broken
}

func main() {
	jsonPath := flag.String("json", "companies-by-revenue.json", "revenue artifact to verify")
	configDir := flag.String("config", "config", "directory with API key files")
	provider := flag.String("provider", "", "provider to ask first (ai_openai, ai_gemini)")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request HTTP timeout")
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

	doc, err := artifact.ReadLinked(*jsonPath)
	if err != nil {
		fatalf("read error: %v", err)
	}

	checker := webcheck.New(*timeout)
	fixed, broken := verifyCompanies(context.Background(), &doc, checker.Status, chain.suggest)

	if err := artifact.Write(*jsonPath, doc); err != nil {
		fatalf("write error: %v", err)
	}
	fmt.Printf("\nDone: %d fixed, %d still broken.\n", fixed, broken)
}
