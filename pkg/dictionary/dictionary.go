// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package dictionary

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v2"
)

//go:embed data/default.yaml
var defaultYAML []byte

// Replacement is one entry of the ordered abbreviation index.
type Replacement struct {
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`
}

// Dictionary holds the street index and the abbreviation index.
// It is read-only once built and may be shared between goroutines.
type Dictionary struct {
	streets       map[string]string
	abbreviations []Replacement
}

type document struct {
	StreetIndex   map[string]string `yaml:"street_index"`
	Abbreviations []Replacement     `yaml:"abbreviations"`
}

// New validates and copies the given tables into a Dictionary.
func New(streets map[string]string, abbreviations []Replacement) (*Dictionary, error) {
	d := &Dictionary{
		streets:       make(map[string]string, len(streets)),
		abbreviations: make([]Replacement, 0, len(abbreviations)),
	}

	for key, value := range streets {
		if key == "" {
			return nil, eris.New("dictionary: empty street index key")
		}
		if !isToken(key, false) {
			return nil, eris.Errorf("dictionary: street index key %q must contain only A-Z and 0-9", key)
		}
		if !isToken(value, false) {
			return nil, eris.Errorf("dictionary: street index value %q for %q must contain only A-Z and 0-9", value, key)
		}
		d.streets[key] = value
	}

	for i, r := range abbreviations {
		if r.Find == "" {
			return nil, eris.Errorf("dictionary: abbreviation %d has an empty find string", i)
		}
		if !isToken(r.Find, true) {
			return nil, eris.Errorf("dictionary: abbreviation %q must contain only A-Z, 0-9 and spaces", r.Find)
		}
		if !isToken(r.Replace, true) {
			return nil, eris.Errorf("dictionary: replacement %q for %q must contain only A-Z, 0-9 and spaces", r.Replace, r.Find)
		}
		d.abbreviations = append(d.abbreviations, r)
	}

	return d, nil
}

// Parse decodes a YAML dictionary document. Duplicate street keys are rejected.
func Parse(data []byte) (*Dictionary, error) {
	var doc document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, eris.Wrap(err, "dictionary: unmarshal")
	}
	return New(doc.StreetIndex, doc.Abbreviations)
}

// Load reads and parses a YAML dictionary file.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dictionary: read %s", path)
	}
	return Parse(data)
}

// LoadDefault parses the embedded reference dictionary.
func LoadDefault() (*Dictionary, error) {
	return Parse(defaultYAML)
}

// Street returns the canonical replacement for a whole word.
func (d *Dictionary) Street(word string) (string, bool) {
	value, ok := d.streets[word]
	return value, ok
}

// Abbreviations returns a copy of the abbreviation index in application order.
func (d *Dictionary) Abbreviations() []Replacement {
	out := make([]Replacement, len(d.abbreviations))
	copy(out, d.abbreviations)
	return out
}

// Len reports the size of both indices.
func (d *Dictionary) Len() (streets, abbreviations int) {
	return len(d.streets), len(d.abbreviations)
}

// isToken reports whether s contains only characters that survive the
// character filter of the pipeline.
func isToken(s string, allowSpace bool) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == ' ' && allowSpace:
		default:
			return false
		}
	}
	return true
}
