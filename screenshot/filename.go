package screenshot

import "strings"

const (
	filenamePrefix = "screenshot_"
	filenameExt    = ".png"

	// MaxFilenameLength bounds every generated name, extension included
	MaxFilenameLength = 255
)

// Sanitize turns a URL into a string safe to use inside a filename.
// A single leading http:// or https:// is stripped, slashes become
// underscores, anything outside [A-Za-z0-9_.-] is dropped and the result is
// cut to MaxFilenameLength. Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(url string) string {
	if strings.HasPrefix(url, "http://") {
		url = url[7:]
	} else if strings.HasPrefix(url, "https://") {
		url = url[8:]
	}

	var b strings.Builder
	b.Grow(len(url))
	for i := 0; i < len(url); i++ {
		c := url[i]
		switch {
		case c == '/':
			b.WriteByte('_')
		case isFilenameByte(c):
			b.WriteByte(c)
		}
	}

	sanitized := b.String()
	if len(sanitized) > MaxFilenameLength {
		sanitized = sanitized[:MaxFilenameLength]
	}
	return sanitized
}

// Filename returns the screenshot file name for a URL:
// screenshot_<sanitized url>.png, never longer than MaxFilenameLength.
func Filename(url string) string {
	stem := filenamePrefix + Sanitize(url)
	if limit := MaxFilenameLength - len(filenameExt); len(stem) > limit {
		stem = stem[:limit]
	}
	return stem + filenameExt
}

func isFilenameByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '-' || c == '.'
}
