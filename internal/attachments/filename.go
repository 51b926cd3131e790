package attachments

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// allowedExtensions is the fixed allow-set of upload extensions.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"txt":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"mp3":  true,
	"mp4":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var windowsDeviceNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true,
}

// Allowed reports whether filename carries an allow-listed extension. The
// check is made on the name as submitted, before sanitizing.
func Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(filename[i+1:])]
}

// SecureFilename reduces a client supplied filename to a flat, ASCII-only name
// that is safe to join onto the uploads directory. The result may be empty.
func SecureFilename(filename string) string {
	folded := norm.NFKD.String(filename)
	var b strings.Builder
	for _, r := range folded {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	name := b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name != "" && windowsDeviceNames[strings.ToUpper(strings.Split(name, ".")[0])] {
		name = "_" + name
	}
	return name
}
