package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// The per-provider file schemas are fixed by the tooling that maintains
// the config directory.
type geminiFile struct {
	Key string `json:"ITEM"`
}

type openaiFile struct {
	Key string `json:"openai_api_key"`
}

type grokFile struct {
	Key string `json:"grok_api_key"`
}

// Mapbox holds the map rendering settings served to the page.
type Mapbox struct {
	AccessToken string `json:"access_token"`
	Style       string `json:"style"`
}

// Credentials carries every key found in a config directory. Absent
// files leave their fields empty.
type Credentials struct {
	Gemini string
	OpenAI string
	Grok   string
	Mapbox Mapbox
}

// LoadCredentials reads the typed JSON files under dir:
// config_gemini.json, config_openai.json, config_grok.json and
// config_mapbox.json. Missing files are skipped, malformed ones are
// errors.
func LoadCredentials(dir string) (Credentials, error) {
	var c Credentials
	var gem geminiFile
	if err := readJSONFile(filepath.Join(dir, "config_gemini.json"), &gem); err != nil {
		return c, err
	}
	c.Gemini = gem.Key
	var oai openaiFile
	if err := readJSONFile(filepath.Join(dir, "config_openai.json"), &oai); err != nil {
		return c, err
	}
	c.OpenAI = oai.Key
	var grk grokFile
	if err := readJSONFile(filepath.Join(dir, "config_grok.json"), &grk); err != nil {
		return c, err
	}
	c.Grok = grk.Key
	if err := readJSONFile(filepath.Join(dir, "config_mapbox.json"), &c.Mapbox); err != nil {
		return c, err
	}
	return c, nil
}

func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
