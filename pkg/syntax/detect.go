package syntax

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names reported by enry.
const (
	enryCSS  = "CSS"
	enrySCSS = "SCSS"
	enrySass = "Sass"
	enryLess = "Less"
)

//nolint:gochecknoglobals // Read-only lookup table.
var extensions = map[string]Syntax{
	".css":  CSS,
	".pcss": CSS,
	".scss": SCSS,
	".sass": Sass,
	".less": Less,
}

// Detect determines the dialect of a file. The extension is consulted first;
// unknown extensions fall back to a vim or emacs modeline in the content.
// The boolean result is false when the file is not a stylesheet.
func Detect(path string, content []byte) (Syntax, bool) {
	if syn, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return syn, true
	}

	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return fromEnry(lang)
	}

	if len(content) == 0 {
		return CSS, false
	}

	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return fromEnry(lang)
	}

	return CSS, false
}

// IsStylesheetPath reports whether the extension of path is a known
// stylesheet extension.
func IsStylesheetPath(path string) bool {
	_, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func fromEnry(lang string) (Syntax, bool) {
	switch lang {
	case enryCSS:
		return CSS, true
	case enrySCSS:
		return SCSS, true
	case enrySass:
		return Sass, true
	case enryLess:
		return Less, true
	default:
		return CSS, false
	}
}
