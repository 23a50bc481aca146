// Package filecheck classifies filesystem paths by media type using
// their extension.
package filecheck

import (
	"os"
	"path/filepath"
	"strings"
)

// Type is the classification of a path.
type Type int

const (
	Other Type = iota
	Video
	Audio
	Directory
)

func (t Type) String() string {
	switch t {
	case Video:
		return "video file"
	case Audio:
		return "audio file"
	case Directory:
		return "directory"
	default:
		return "other file"
	}
}

var videoExtensions = map[string]bool{
	".mp4": true, ".avi": true, ".mkv": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true, ".mpg": true, ".mpeg": true,
	".3gp": true, ".mts": true, ".m2ts": true, ".vob": true, ".ogv": true,
	".qt": true, ".rm": true, ".rmvb": true, ".asf": true, ".swf": true,
	".f4v": true, ".m4s": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".flac": true, ".aac": true, ".ogg": true,
	".wma": true, ".m4a": true, ".opus": true, ".aiff": true, ".alac": true,
	".amr": true, ".ape": true, ".au": true, ".mid": true, ".midi": true,
	".ra": true, ".ram": true, ".voc": true, ".weba": true,
}

// Check classifies an existing path. Directories win over extensions;
// paths that cannot be stat'ed are Other.
func Check(path string) Type {
	info, err := os.Stat(path)
	if err != nil {
		return Other
	}
	if info.IsDir() {
		return Directory
	}
	if !info.Mode().IsRegular() {
		return Other
	}
	return ByExtension(path)
}

// ByExtension classifies a path by its extension alone, so it also works
// for output files that do not exist yet.
func ByExtension(path string) Type {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case videoExtensions[ext]:
		return Video
	case audioExtensions[ext]:
		return Audio
	default:
		return Other
	}
}
