// https://rapidapi.com/dpventures/api/wordsapi
package rapidapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Response struct {
	Word          string        `json:"word"`
	Syllables     Syllable      `json:"syllables"`
	Frequency     float64       `json:"frequency"`
	Pronunciation Pronunciation `json:"pronunciation"`
	Results       []Result      `json:"results"`
}

type Syllable struct {
	Count int      `json:"count"`
	List  []string `json:"list"`
}

type Pronunciation struct {
	All string `json:"all"`
}

func (p *Pronunciation) UnmarshalJSON(data []byte) error {
	// pronunciation can be either a struct or a simple string
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}

	var all string
	if err := json.Unmarshal(data, &all); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = all
	return nil
}

type Result struct {
	Definition   string   `json:"definition"`
	Derivation   []string `json:"derivation,omitempty"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	SimilarTo    []string `json:"similarTo,omitempty"`
	TypeOf       []string `json:"typeOf,omitempty"`
	Examples     []string `json:"examples"`
}

// Definitions returns one line per result, prefixed with its part of speech when known.
func (r Response) Definitions() []string {
	definitions := make([]string, 0, len(r.Results))
	for _, result := range r.Results {
		definition := strings.TrimSpace(result.Definition)
		if definition == "" {
			continue
		}
		if result.PartOfSpeech != "" {
			definition = fmt.Sprintf("(%s) %s", result.PartOfSpeech, definition)
		}
		definitions = append(definitions, definition)
	}
	return definitions
}
