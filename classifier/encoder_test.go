package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLabelsSortsAndDedupes(t *testing.T) {
	enc := FitLabels([]string{"Wheat", "Rice", "Wheat", "Bengal Gram", "Rice"})
	assert.Equal(t, []string{"Bengal Gram", "Rice", "Wheat"}, enc.Classes())
	assert.Equal(t, 3, enc.Len())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := FitLabels([]string{"Rice", "Wheat", "Cotton"})
	for _, class := range enc.Classes() {
		code, ok := enc.Encode(class)
		require.True(t, ok)
		got, err := enc.Decode(code)
		require.NoError(t, err)
		assert.Equal(t, class, got)
	}
}

func TestEncodeUnknownLabel(t *testing.T) {
	enc := FitLabels([]string{"Rice"})
	_, ok := enc.Encode("Quinoa")
	assert.False(t, ok)
}

func TestDecodeOutOfRange(t *testing.T) {
	enc := FitLabels([]string{"Rice", "Wheat"})
	for _, code := range []int{-1, 2, 99} {
		_, err := enc.Decode(code)
		assert.Error(t, err, "code %d", code)
	}
}

func TestEncoderFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), EncoderFileName)
	enc := FitLabels([]string{"Wheat", "Rice", "Cotton"})
	require.NoError(t, enc.SaveFile(path))

	loaded, err := LoadEncoderFile(path)
	require.NoError(t, err)
	assert.Equal(t, enc.Classes(), loaded.Classes())

	code, ok := loaded.Encode("Rice")
	assert.True(t, ok)
	want, _ := enc.Encode("Rice")
	assert.Equal(t, want, code)
}

func TestLoadEncoderFileMissing(t *testing.T) {
	_, err := LoadEncoderFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, ErrMissingModel)
}

func TestLoadEncoderFileEmptyClasses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"classes": []}`), 0o644))
	_, err := LoadEncoderFile(path)
	assert.Error(t, err)
}
