package textutil

import "strings"

// UnsafeFileNameChars lists the characters replaced by SanitizeFileName.
const UnsafeFileNameChars = `<>:"/\|?*`

// fileNameReplacer maps every unsafe character to an underscore.
var fileNameReplacer = strings.NewReplacer(
	"<", "_",
	">", "_",
	":", "_",
	"\"", "_",
	"/", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
)

// SanitizeFileName replaces filesystem-unsafe characters in a file name with
// underscores. Length and character order are preserved.
func SanitizeFileName(name string) string {
	if !strings.ContainsAny(name, UnsafeFileNameChars) {
		return name
	}
	return fileNameReplacer.Replace(name)
}

// SplitExt separates a file name into stem and extension (leading dot
// included). A name whose only dot is the first character (".bashrc") or the
// last character ("notes.") has no extension.
func SplitExt(name string) (stem, ext string) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return name, ""
	}
	return name[:idx], name[idx:]
}
