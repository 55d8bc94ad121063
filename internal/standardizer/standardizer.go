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

package standardizer

import (
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/TFMV/AddressKey/pkg/dictionary"
)

// DefaultMaxExpansion caps the number of addresses a single range may produce.
const DefaultMaxExpansion = 1000

var (
	zipRun       = regexp.MustCompile(`[0-9]+(-[0-9]+)?`)
	spacedTH     = regexp.MustCompile(`([0-9]) TH `)
	ordinalForms = []*regexp.Regexp{
		regexp.MustCompile(`([0-9])ND`),
		regexp.MustCompile(`([0-9])ST`),
		regexp.MustCompile(`([0-9])RD`),
		regexp.MustCompile(`([0-9])TH`),
	}
)

// Standardizer crushes raw US postal addresses into canonical keys.
// It never mutates its dictionary and is safe for concurrent use.
type Standardizer struct {
	dict          *dictionary.Dictionary
	abbreviations []dictionary.Replacement
	maxExpansion  int
	strictRanges  bool
}

// Option configures a Standardizer.
type Option func(*Standardizer)

// WithMaxExpansion sets the largest range ExpandRange will expand.
// Values below 1 keep DefaultMaxExpansion.
func WithMaxExpansion(n int) Option {
	return func(s *Standardizer) {
		if n > 0 {
			s.maxExpansion = n
		}
	}
}

// WithStrictRanges makes ExpandRange reject bounds that are not plain numbers
// instead of coercing them.
func WithStrictRanges(strict bool) Option {
	return func(s *Standardizer) {
		s.strictRanges = strict
	}
}

// New returns a Standardizer backed by dict.
func New(dict *dictionary.Dictionary, opts ...Option) (*Standardizer, error) {
	if dict == nil {
		return nil, eris.New("standardizer: nil dictionary")
	}

	s := &Standardizer{
		dict:          dict,
		abbreviations: dict.Abbreviations(),
		maxExpansion:  DefaultMaxExpansion,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Stage is the output of one named pipeline step.
type Stage struct {
	Name   string `json:"name"`
	Output string `json:"output"`
}

// Normalize returns the canonical key for a raw address. It never fails; input
// made only of punctuation or whitespace yields an empty key.
func (s *Standardizer) Normalize(raw string) string {
	stages := s.Stages(raw)
	return stages[len(stages)-1].Output
}

// Stages runs the pipeline and records the string after every step.
// The last stage holds the value Normalize returns.
func (s *Standardizer) Stages(raw string) []Stage {
	steps := []struct {
		name string
		fn   func(string) string
	}{
		{"uppercase", upperASCII},
		{"zip", truncateZipCode},
		{"clean", cleanText},
		{"ordinals", cleanSuffixes},
		{"streets", s.applyStreetIndex},
		{"abbreviations", s.applyAbbreviationIndex},
		{"spaces", collapseSpaces},
		{"units", applyUnitFix},
	}

	out := make([]Stage, 0, len(steps))
	for _, step := range steps {
		raw = step.fn(raw)
		out = append(out, Stage{Name: step.name, Output: raw})
	}
	return out
}

// upperASCII folds a-z only; every other byte passes through untouched.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

// truncateZipCode shortens ZIP+4 codes, hyphenated or not, to five digits.
// Digit runs of any other length are left alone.
func truncateZipCode(s string) string {
	return zipRun.ReplaceAllStringFunc(s, func(run string) string {
		head, tail, hyphenated := strings.Cut(run, "-")
		if !hyphenated {
			if len(run) == 9 {
				return run[:5]
			}
			return run
		}
		if len(head) == 5 && len(tail) == 4 {
			return head
		}
		return run
	})
}

// cleanText keeps A-Z, 0-9 and spaces.
func cleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == ' ' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// cleanSuffixes strips ordinal suffixes from numbers: 1ST, 2ND, 3RD, 4TH and "4 TH".
func cleanSuffixes(s string) string {
	s = spacedTH.ReplaceAllString(s, "${1}TH ")
	for _, re := range ordinalForms {
		s = re.ReplaceAllString(s, "${1}")
	}
	return s
}

func (s *Standardizer) applyStreetIndex(address string) string {
	words := strings.Split(address, " ")
	for i, word := range words {
		if replacement, ok := s.dict.Street(word); ok {
			words[i] = replacement
		}
	}
	return strings.Join(words, " ")
}

func (s *Standardizer) applyAbbreviationIndex(address string) string {
	for _, r := range s.abbreviations {
		address = strings.ReplaceAll(address, r.Find, r.Replace)
	}
	return address
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.TrimSpace(s)
}
