package extract

import "strings"

const previewLength = 200

// Preview shortens content for API responses, breaking at a sentence or
// word boundary when one lands near the cutoff.
func Preview(content string) string {
	if len(content) <= previewLength {
		return content
	}

	preview := content[:previewLength]
	if period := strings.LastIndexByte(preview, '.'); period > previewLength*7/10 {
		preview = preview[:period+1]
	} else if space := strings.LastIndexByte(preview, ' '); space > previewLength*8/10 {
		preview = preview[:space]
	}
	return preview + "..."
}
