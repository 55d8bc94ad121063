package dictionary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	d, err := LoadDefault()
	require.NoError(t, err)

	streets, abbreviations := d.Len()
	assert.Greater(t, streets, 50)
	assert.Greater(t, abbreviations, 3)

	tests := []struct {
		word     string
		expected string
	}{
		{"BOULEVARD", "BLVD"},
		{"BOULV", "BLVD"},
		{"ONE", "1"},
		{"ZERO", "0"},
		{"NORTH", "N"},
		{"UNIT", ""},
		{"NO", ""},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, ok := d.Street(tt.word)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, ok := d.Street("MAIN")
	assert.False(t, ok)

	first := d.Abbreviations()[0]
	assert.Equal(t, Replacement{Find: "POST OFFICE BOX", Replace: "PO BOX"}, first)
}

func TestAbbreviations_ReturnsCopy(t *testing.T) {
	d, err := New(nil, []Replacement{{Find: "A", Replace: "B"}})
	require.NoError(t, err)

	got := d.Abbreviations()
	got[0].Find = "Z"

	assert.Equal(t, "A", d.Abbreviations()[0].Find)
}

func TestNew_CopiesInput(t *testing.T) {
	streets := map[string]string{"STREET": "ST"}
	d, err := New(streets, nil)
	require.NoError(t, err)

	streets["STREET"] = "XX"
	got, _ := d.Street("STREET")
	assert.Equal(t, "ST", got)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name          string
		streets       map[string]string
		abbreviations []Replacement
	}{
		{"empty street key", map[string]string{"": "X"}, nil},
		{"lowercase street key", map[string]string{"street": "ST"}, nil},
		{"street key with space", map[string]string{"MAIN ST": "X"}, nil},
		{"punctuation in street value", map[string]string{"STREET": "ST."}, nil},
		{"empty abbreviation", nil, []Replacement{{Find: "", Replace: "X"}}},
		{"lowercase abbreviation", nil, []Replacement{{Find: "po box", Replace: "PO BOX"}}},
		{"punctuation in replacement", nil, []Replacement{{Find: "P O BOX", Replace: "P.O. BOX"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.streets, tt.abbreviations)
			assert.Error(t, err)
		})
	}
}

func TestParse(t *testing.T) {
	d, err := Parse([]byte(`
street_index:
  AVENUE: AVE
abbreviations:
  - find: SECOND
    replace: "2"
  - find: FIRST
    replace: "1"
`))
	require.NoError(t, err)

	got, ok := d.Street("AVENUE")
	assert.True(t, ok)
	assert.Equal(t, "AVE", got)
	assert.Equal(t, []Replacement{{"SECOND", "2"}, {"FIRST", "1"}}, d.Abbreviations())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"duplicate street key", "street_index:\n  AVENUE: AVE\n  AVENUE: AV\n"},
		{"unknown field", "streets:\n  AVENUE: AVE\n"},
		{"not yaml", "street_index: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("street_index:\n  ROAD: RD\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	got, ok := d.Street("ROAD")
	assert.True(t, ok)
	assert.Equal(t, "RD", got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
