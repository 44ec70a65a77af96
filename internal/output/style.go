package output

import "github.com/mdemp/treescan/internal/types"

// glyphSet holds the four branch drawing strings of one tree style.
type glyphSet struct {
	Branch   string
	Last     string
	Vertical string
	Space    string
}

var glyphSets = map[string]glyphSet{
	types.StyleUnicode: {Branch: "├── ", Last: "└── ", Vertical: "│   ", Space: "    "},
	types.StyleASCII:   {Branch: "|-- ", Last: "`-- ", Vertical: "|   ", Space: "    "},
	types.StyleSimple:  {Branch: "  ", Last: "  ", Vertical: "  ", Space: "  "},
}

// fileCategory is a closed enumeration of display categories. Every file maps
// to exactly one category through its extension; unrecognized extensions fall
// into categoryDefault.
type fileCategory int

const (
	categoryDefault fileCategory = iota
	categoryCode
	categoryMarkup
	categoryImage
	categoryVideo
	categoryAudio
	categoryDocument
	categoryArchive
	categoryExecutable
	categoryData
	categoryProse
)

var categoryGlyphs = [...]string{
	categoryDefault:    "📄",
	categoryCode:       "📜",
	categoryMarkup:     "🌐",
	categoryImage:      "🖼️",
	categoryVideo:      "🎬",
	categoryAudio:      "🎵",
	categoryDocument:   "📝",
	categoryArchive:    "📦",
	categoryExecutable: "⚙️",
	categoryData:       "📋",
	categoryProse:      "📖",
}

const directoryGlyph = "📁"

// categoryForExtension classifies a lowercased extension (including the
// leading dot) into its display category.
func categoryForExtension(extension string) fileCategory {
	switch extension {
	case ".py", ".js", ".ts", ".go", ".rs", ".java", ".c", ".h", ".cpp", ".rb", ".sh":
		return categoryCode
	case ".html", ".htm", ".css":
		return categoryMarkup
	case ".jpg", ".jpeg", ".png", ".gif", ".svg", ".bmp", ".webp", ".ico":
		return categoryImage
	case ".mp4", ".avi", ".mkv", ".mov", ".webm":
		return categoryVideo
	case ".mp3", ".wav", ".flac", ".ogg", ".m4a":
		return categoryAudio
	case ".pdf", ".doc", ".docx", ".odt", ".rtf":
		return categoryDocument
	case ".zip", ".rar", ".7z", ".tar", ".gz", ".bz2", ".xz":
		return categoryArchive
	case ".exe", ".msi", ".deb", ".rpm", ".bin", ".dll", ".so":
		return categoryExecutable
	case ".json", ".xml", ".yml", ".yaml", ".toml", ".csv", ".ini":
		return categoryData
	case ".md", ".rst", ".adoc":
		return categoryProse
	default:
		return categoryDefault
	}
}

// fileGlyph returns the display glyph for a file node.
func fileGlyph(node *types.Node) string {
	return categoryGlyphs[categoryForExtension(node.Extension)]
}

// nodeGlyph returns the display glyph for any node.
func nodeGlyph(node *types.Node) string {
	if node.IsDirectory() {
		return directoryGlyph
	}
	return fileGlyph(node)
}
