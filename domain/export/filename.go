package export

import (
	"fmt"
	"strings"
)

// DefaultBaseName is used when the user has not named the batch.
const DefaultBaseName = "screenshot"

// FileName returns "{base}_{NNN}.png" with the number zero-padded to at least
// three digits.
func FileName(base string, number int) string {
	return fmt.Sprintf("%s_%03d.png", base, number)
}

// PDFName returns the bundle name for a batch covering first..last.
func PDFName(base string, first, last int) string {
	return fmt.Sprintf("%s_%03d-%03d.pdf", base, first, last)
}

// SanitizeBaseName trims name, strips path separators and falls back to
// DefaultBaseName when nothing usable is left.
func SanitizeBaseName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return DefaultBaseName
	}
	return name
}
