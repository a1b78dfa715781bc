package config

import (
	"fmt"
	"sort"
)

// Provider names understood by the research tools.
const (
	ProviderGemini = "ai_gemini"
	ProviderGrok   = "ai_grok"
	ProviderOpenAI = "ai_openai"
)

// Providers is an explicit registry of provider API keys with a current
// selection. Construct with NewProviders.
type Providers struct {
	keys    map[string]string
	current string
}

// NewProviders builds the registry from loaded credentials. The initial
// selection is ai_openai.
func NewProviders(c Credentials) *Providers {
	return &Providers{
		keys: map[string]string{
			ProviderGemini: c.Gemini,
			ProviderGrok:   c.Grok,
			ProviderOpenAI: c.OpenAI,
		},
		current: ProviderOpenAI,
	}
}

// Key returns the API key stored for the named provider; ok is false for
// names outside the registry.
func (p *Providers) Key(name string) (string, bool) {
	k, ok := p.keys[name]
	return k, ok
}

// Current returns the selected provider name.
func (p *Providers) Current() string {
	return p.current
}

// Switch selects the named provider.
func (p *Providers) Switch(name string) error {
	if _, ok := p.keys[name]; !ok {
		return fmt.Errorf("config: unknown provider %q", name)
	}
	p.current = name
	return nil
}

// Names lists the registered providers in sorted order.
func (p *Providers) Names() []string {
	names := make([]string, 0, len(p.keys))
	for n := range p.keys {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
