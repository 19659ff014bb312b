package files

import (
	"os"
	"testing"

	"github.com/BerryWebFounder/berryweb-shop/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(t.TempDir(), 100, []string{"jpg", "PNG", " gif "})
}

func TestCheckAcceptsAllowedUpload(t *testing.T) {
	s := newTestService(t)
	assert.NoError(t, s.Check(Upload{Filename: "photo.jpg", Size: 100}))
}

func TestCheckExtensionIsCaseInsensitive(t *testing.T) {
	s := newTestService(t)

	// Both the configured list and the filename are normalized.
	assert.NoError(t, s.Check(Upload{Filename: "photo.JPG", Size: 1}))
	assert.NoError(t, s.Check(Upload{Filename: "photo.png", Size: 1}))
	assert.NoError(t, s.Check(Upload{Filename: "photo.gif", Size: 1}))
}

func TestCheckRejectsDisallowedExtension(t *testing.T) {
	s := newTestService(t)

	for _, name := range []string{"setup.exe", "script.sh", "noextension"} {
		err := s.Check(Upload{Filename: name, Size: 1})
		assert.ErrorIs(t, err, apperrors.ErrFileExtensionNotAllowed, name)
	}
}

func TestCheckRejectsOversizedUpload(t *testing.T) {
	s := newTestService(t)
	err := s.Check(Upload{Filename: "big.jpg", Size: 101})
	assert.ErrorIs(t, err, apperrors.ErrFileSizeExceeded)
}

func TestCheckCount(t *testing.T) {
	s := newTestService(t)
	assert.NoError(t, s.CheckCount(5, 5))
	assert.ErrorIs(t, s.CheckCount(6, 5), apperrors.ErrFileCountExceeded)
}

func TestSaveGeneratesStorageName(t *testing.T) {
	dir := t.TempDir()
	s := NewService(dir, 100, []string{"jpg"})

	storedName, path, err := s.Save(Upload{Filename: "photo.jpg", Size: 4, Content: []byte("data")})
	require.NoError(t, err)

	assert.NotEqual(t, "photo.jpg", storedName)
	assert.True(t, len(storedName) > len(".jpg"))
	assert.Contains(t, storedName, ".jpg")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), content)
}

func TestSaveProducesUniqueNamesForSameFilename(t *testing.T) {
	s := newTestService(t)
	upload := Upload{Filename: "photo.jpg", Size: 1, Content: []byte("x")}

	first, _, err := s.Save(upload)
	require.NoError(t, err)
	second, _, err := s.Save(upload)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", Extension("photo.jpg"))
	assert.Equal(t, "gz", Extension("archive.tar.gz"))
	assert.Equal(t, "", Extension("noextension"))
}
