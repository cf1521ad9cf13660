// Package extract pulls plain text out of uploaded source material.
package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kelime/kelime-backend/internal/domain"
)

// maxSRTSize caps uploaded subtitle files at 10MB.
const maxSRTSize = 10 * 1024 * 1024

var (
	timestampRE = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}[,.]\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}[,.]\d{3}`)
	indexLineRE = regexp.MustCompile(`^\d+$`)
	markupRE    = regexp.MustCompile(`<[^>]*>|\{[^}]*\}|\[[^\]]*\]`)
	spacesRE    = regexp.MustCompile(`\s+`)
)

// SRT extracts the spoken text from SubRip subtitle file content. Cue
// indices, timestamp lines, and styling markup are dropped; cue text is
// joined with single spaces. Content is decoded as UTF-8 with a Latin-1
// fallback for legacy files.
func SRT(raw []byte) (string, error) {
	if len(raw) > maxSRTSize {
		return "", fmt.Errorf("%w: subtitle file exceeds 10MB", domain.ErrValidation)
	}

	text := decodeText(raw)

	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "\uFEFF"))
		if line == "" || indexLineRE.MatchString(line) || timestampRE.MatchString(line) {
			continue
		}
		line = markupRE.ReplaceAllString(line, " ")
		line = strings.TrimSpace(spacesRE.ReplaceAllString(line, " "))
		if line != "" {
			parts = append(parts, line)
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no readable text found in subtitle file", domain.ErrValidation)
	}
	return strings.Join(parts, " "), nil
}

// decodeText returns raw as a string, treating invalid UTF-8 as Latin-1.
func decodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}
