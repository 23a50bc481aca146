package filecheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByExtension(t *testing.T) {
	cases := []struct {
		path string
		want Type
	}{
		{"movie.mp4", Video},
		{"C:/Videos/movie.avi", Video},
		{"clip.MKV", Video}, // case-insensitive
		{"song.mp3", Audio},
		{"music/album/track.FLAC", Audio},
		{"image.jpg", Other},
		{"presentation.pptx", Other},
		{"noextension", Other},
		{"", Other},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ByExtension(tc.path), "path %q", tc.path)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	video := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(video, []byte("x"), 0o644))
	audio := filepath.Join(dir, "track.wav")
	require.NoError(t, os.WriteFile(audio, []byte("x"), 0o644))

	assert.Equal(t, Video, Check(video))
	assert.Equal(t, Audio, Check(audio))
	assert.Equal(t, Directory, Check(dir))
	assert.Equal(t, Other, Check(filepath.Join(dir, "missing.mp4")))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "video file", Video.String())
	assert.Equal(t, "audio file", Audio.String())
	assert.Equal(t, "directory", Directory.String())
	assert.Equal(t, "other file", Other.String())
}
