package standardizer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/AddressKey/internal/standardizer"
	"github.com/TFMV/AddressKey/pkg/config"
)

func TestFromConfig_Default(t *testing.T) {
	s, err := standardizer.FromConfig(config.StandardizerConfig{MaxRangeExpansion: 2, StrictRanges: true})
	require.NoError(t, err)

	assert.Equal(t, "123BILTMOREBLVD101A", s.Normalize("123 Biltmore Boulevard #A-101"))

	_, err = s.ExpandRange("1-3 Main St")
	assert.True(t, eris.Is(err, standardizer.ErrRangeTooLarge))
	_, err = s.ExpandRange("A-1 Main St")
	assert.True(t, eris.Is(err, standardizer.ErrInvalidRange))
}

func TestFromConfig_DictionaryPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte("street_index:\n  PIKE: PK\n"), 0o644))

	s, err := standardizer.FromConfig(config.StandardizerConfig{DictionaryPath: path})
	require.NoError(t, err)
	assert.Equal(t, "5TURNPK", s.Normalize("5 Turn Pike"))
	assert.Equal(t, "5MAINSTREET", s.Normalize("5 Main Street"))

	_, err = standardizer.FromConfig(config.StandardizerConfig{DictionaryPath: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}
