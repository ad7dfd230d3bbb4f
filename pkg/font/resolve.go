package font

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gregjohnson2017/overlay-clock/pkg/log"
)

// ErrNoFontFile indicates no TrueType file matched the requested family.
const ErrNoFontFile log.ConstErr = "no font file found for family"

// Resolve searches the conventional font directories for a TrueType file
// matching family. Matching is on the file name with case, spaces, and
// dashes ignored, so "DejaVu Sans Mono" finds DejaVuSansMono.ttf.
func Resolve(family string) (string, error) {
	want := normalize(family)
	if want == "" {
		return "", fmt.Errorf("resolving %q: %w", family, ErrNoFontFile)
	}
	for _, dir := range fontDirs() {
		if path := findIn(dir, want); path != "" {
			return path, nil
		}
	}
	return "", fmt.Errorf("resolving %q: %w", family, ErrNoFontFile)
}

func fontDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".fonts"))
	}
	if data := os.Getenv("XDG_DATA_HOME"); data != "" {
		dirs = append(dirs, filepath.Join(data, "fonts"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"))
	}
	return append(dirs, "/usr/local/share/fonts", "/usr/share/fonts")
}

// findIn prefers an exact normalized name match, falling back to the first
// file whose name begins with the family (catching style-suffixed files
// like FiraMono-Regular.ttf).
func findIn(dir, want string) string {
	var exact, prefix string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || exact != "" {
			return nil
		}
		name := d.Name()
		if !strings.EqualFold(filepath.Ext(name), ".ttf") {
			return nil
		}
		got := normalize(strings.TrimSuffix(name, filepath.Ext(name)))
		if got == want {
			exact = path
		} else if prefix == "" && strings.HasPrefix(got, want) {
			prefix = path
		}
		return nil
	})
	if exact != "" {
		return exact
	}
	return prefix
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '_' {
			return -1
		}
		return r
	}, s)
}
