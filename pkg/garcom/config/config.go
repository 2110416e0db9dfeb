// Package config loads the file-based configuration of the extraction
// core: vocabulary overrides and intent keyword sets, plus the YAML menu
// seed format consumed by cmd/bootstrap.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zapmesa/garcom/pkg/garcom/intent"
)

// Vocabulary is the tenant vocabulary override file.
//
// Expected format:
//
//	ignored:
//	  - princesa
//	  - chefia
type Vocabulary struct {
	Ignored []string `yaml:"ignored"`
}

// LoadVocabulary loads a vocabulary override file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// Intents is the intent keyword override file. Keys are intent tags,
// values extra trigger phrases merged on top of the built-in sets.
//
//	intents:
//	  SHOW_MENU: [tabela de precos]
//	  CONFIRM: [fecha ai]
type Intents struct {
	Intents map[string][]string `yaml:"intents"`
}

// LoadIntents loads an intent keyword override file.
func LoadIntents(path string) (*Intents, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var in Intents
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Menu is the seed file format for a tenant's catalog and lexicon,
// consumed by cmd/bootstrap.
type Menu struct {
	Tenant   string        `yaml:"tenant"`
	Products []MenuProduct `yaml:"products"`
	Addons   []MenuAddon   `yaml:"addons"`
	Ignored  []string      `yaml:"ignored"`
	Synonyms []MenuMapping `yaml:"synonyms"`
	Keywords []MenuMapping `yaml:"keywords"`
}

// MenuProduct is one product entry in a seed file.
type MenuProduct struct {
	Name      string     `yaml:"name"`
	Price     float64    `yaml:"price"`
	Available *bool      `yaml:"available"`
	Sizes     []MenuSize `yaml:"sizes"`
}

// MenuSize is a size option in a seed file.
type MenuSize struct {
	Label string  `yaml:"label"`
	Price float64 `yaml:"price"`
}

// MenuAddon is one addon entry in a seed file.
type MenuAddon struct {
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
}

// MenuMapping is one phrase-to-product mapping in a seed file; the product
// is referenced by name and resolved to an ID at seed time.
type MenuMapping struct {
	Phrase  string `yaml:"phrase"`
	Product string `yaml:"product"`
}

// LoadMenu loads a menu seed file.
func LoadMenu(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Menu
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Loader loads optional configuration files and constructs components.
// Empty paths yield defaults.
type Loader struct {
	VocabularyPath string
	IntentsPath    string
}

// Components holds the constructed configuration components.
type Components struct {
	ExtraIgnored []string
	Intents      *intent.Classifier
}

// Load reads the configured files and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{}

	if l.VocabularyPath != "" {
		vocab, err := LoadVocabulary(l.VocabularyPath)
		if err != nil {
			return nil, err
		}
		comp.ExtraIgnored = vocab.Ignored
	}

	if l.IntentsPath != "" {
		in, err := LoadIntents(l.IntentsPath)
		if err != nil {
			return nil, err
		}
		extra := make(map[intent.Intent][]string, len(in.Intents))
		for tag, phrases := range in.Intents {
			extra[intent.Intent(tag)] = phrases
		}
		comp.Intents = intent.NewClassifierWithKeywords(extra)
	} else {
		comp.Intents = intent.NewClassifier()
	}

	return comp, nil
}
