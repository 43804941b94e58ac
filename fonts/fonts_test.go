package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadMissingFileFallsBack(t *testing.T) {
	face := Load(filepath.Join(t.TempDir(), "nope.ttf"))

	require.NotNil(t, face)
	assert.Equal(t, SourceEmbedded, face.Source)
	assert.True(t, face.Unicode())
	assert.False(t, face.Arabic, "Go Regular has no Arabic glyphs")
	assert.True(t, errors.Is(face.Err, ErrFontMissing))
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ttf")
	require.NoError(t, os.WriteFile(path, []byte("not a font"), 0o644))

	face := Load(path)
	assert.Equal(t, SourceEmbedded, face.Source)
	assert.ErrorIs(t, face.Err, ErrFontMissing)
	assert.Equal(t, path, face.Path)
}

func TestLoadFontWithoutArabic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	face := Load(path)
	assert.Equal(t, SourceFile, face.Source)
	assert.Equal(t, "ReportSans", face.Family)
	assert.ErrorIs(t, face.Err, ErrFontMissing)
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	_, err := FromBytes("x", []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestCore(t *testing.T) {
	c := Core()
	assert.False(t, c.Unicode())
	assert.Equal(t, "Helvetica", c.Family)
	assert.Equal(t, "core", c.Source.String())
}

func TestDefaultIsStable(t *testing.T) {
	a := Default()
	b := Default()
	assert.Same(t, a, b)
}
