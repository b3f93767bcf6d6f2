package category

import (
	"fmt"
	"strings"

	"filesort/internal/textutil"
)

// Category identifies a destination bucket.
type Category uint8

const (
	Others Category = iota
	Images
	Documents
	Audio
	Video
	Archives
	Executables
	Scripts
	Models3D
)

type definition struct {
	category   Category
	label      string
	extensions []string
}

// table order is the listing order; Others stays last.
var table = []definition{
	{Images, "Images", []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".tiff", ".ico"}},
	{Documents, "Documents", []string{".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".xls", ".xlsx", ".csv"}},
	{Audio, "Audio", []string{".mp3", ".wav", ".flac", ".m4a", ".ogg", ".wma", ".aac", ".mid", ".midi"}},
	{Video, "Video", []string{".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".3gp"}},
	{Archives, "Archives", []string{".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz"}},
	{Executables, "Executables", []string{".exe", ".msi", ".bat", ".cmd", ".com", ".dll"}},
	{Scripts, "Scripts", []string{".py", ".js", ".php", ".html", ".css", ".java", ".cpp", ".c", ".cs", ".rb"}},
	{Models3D, "3D_Models", []string{".stl", ".obj", ".fbx", ".collada", ".3ds", ".iges", ".step", ".x3d", ".blend"}},
	{Others, "Others", nil},
}

var (
	byExtension = make(map[string]Category)
	byCategory  = make(map[Category]*definition, len(table))
)

func init() {
	for i := range table {
		def := &table[i]
		byCategory[def.category] = def
		for _, ext := range def.extensions {
			if prev, dup := byExtension[ext]; dup {
				panic(fmt.Sprintf("category: extension %s registered for both %s and %s", ext, prev, def.category))
			}
			byExtension[ext] = def.category
		}
	}
}

// Classify returns the category for a file name. Unknown or missing
// extensions resolve to Others.
func Classify(name string) Category {
	_, ext := textutil.SplitExt(name)
	if ext == "" {
		return Others
	}
	if c, ok := byExtension[strings.ToLower(ext)]; ok {
		return c
	}
	return Others
}

// Parse resolves a folder label (case-insensitive) back to its category.
func Parse(label string) (Category, bool) {
	label = strings.TrimSpace(label)
	for _, def := range table {
		if strings.EqualFold(def.label, label) {
			return def.category, true
		}
	}
	return Others, false
}

// All returns every category in listing order.
func All() []Category {
	out := make([]Category, 0, len(table))
	for _, def := range table {
		out = append(out, def.category)
	}
	return out
}

// String returns the folder name for the category.
func (c Category) String() string {
	if def, ok := byCategory[c]; ok {
		return def.label
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Extensions returns a copy of the extensions owned by the category.
func (c Category) Extensions() []string {
	def, ok := byCategory[c]
	if !ok || len(def.extensions) == 0 {
		return nil
	}
	out := make([]string, len(def.extensions))
	copy(out, def.extensions)
	return out
}
