package comments

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"csd/internal/models"
)

const fileExt = ".json"

// maxFileNameBytes leaves room for the extension within a 255 byte name.
const maxFileNameBytes = 255 - len(fileExt)

var reservedNames = map[string]struct{}{
	"CON": {}, "PRN": {}, "AUX": {}, "NUL": {},
	"COM1": {}, "COM2": {}, "COM3": {}, "COM4": {}, "COM5": {}, "COM6": {}, "COM7": {}, "COM8": {}, "COM9": {},
	"LPT1": {}, "LPT2": {}, "LPT3": {}, "LPT4": {}, "LPT5": {}, "LPT6": {}, "LPT7": {}, "LPT8": {}, "LPT9": {},
}

// SanitizeFileName turns a show name into a portable file name (without
// extension). Characters that are invalid in file names on common platforms
// are dropped. Names that end up empty or reserved are rejected so unrelated
// shows never collapse onto one shared file.
func SanitizeFileName(show string) (string, error) {
	var b strings.Builder
	for _, r := range show {
		if unicode.IsControl(r) || r == utf8.RuneError || strings.ContainsRune(`/\:*?"<>|`, r) {
			continue
		}
		b.WriteRune(r)
	}
	name := strings.TrimRight(strings.TrimSpace(b.String()), ". ")

	for len(name) > maxFileNameBytes {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}

	if name == "" {
		return "", fmt.Errorf("%w: %q", models.ErrInvalidShowName, show)
	}
	base := strings.ToUpper(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if _, ok := reservedNames[base]; ok {
		return "", fmt.Errorf("%w: %q is reserved", models.ErrInvalidShowName, show)
	}
	return name, nil
}
