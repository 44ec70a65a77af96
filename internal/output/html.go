package output

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/mdemp/treescan/internal/types"
)

// RenderHTML renders the tree as a single self-contained HTML document.
// Directory nodes collapse and expand through a small embedded script; the
// markup is emitted fully expanded so the document stays completely viewable
// when scripting is disabled.
func RenderHTML(root *types.Node, title string, configuration types.ScanConfig) (string, error) {
	if root == nil {
		return "", fmt.Errorf(nilTreeMessage, ErrInvalidOptions)
	}
	if title == "" {
		title = defaultDocumentTitle
	}
	summary := Summarize(root)
	documentData := htmlDocumentData{
		Title:          title,
		Root:           root,
		TotalFiles:     summary.TotalFiles,
		TotalFolders:   summary.TotalFolders,
		TotalSizeHuman: FormatFileSize(summary.TotalSize),
	}
	var builder strings.Builder
	if executeError := htmlDocument.Execute(&builder, documentData); executeError != nil {
		return "", executeError
	}
	return builder.String(), nil
}

const defaultDocumentTitle = "Directory Tree"

type htmlDocumentData struct {
	Title          string
	Root           *types.Node
	TotalFiles     int
	TotalFolders   int
	TotalSizeHuman string
}

func nodeAnnotationHTML(node *types.Node) string {
	if node.IsDirectory() {
		totalItems := node.FileCount + node.FolderCount
		return fmt.Sprintf("(%d items, %s)", totalItems, FormatFileSize(node.Size))
	}
	return fmt.Sprintf("(%s)", FormatFileSize(node.Size))
}

var htmlDocument = template.Must(template.New("document").Funcs(template.FuncMap{
	"glyph":      nodeGlyph,
	"annotation": nodeAnnotationHTML,
}).Parse(htmlDocumentTemplate))

const htmlDocumentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { font-family: 'Consolas', 'Monaco', monospace; line-height: 1.4; margin: 20px; background-color: #f8f9fa; }
.header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; border-radius: 10px; margin-bottom: 20px; }
.stats { display: flex; justify-content: space-around; margin-top: 10px; }
.stat { text-align: center; }
.stat-value { font-size: 1.5em; font-weight: bold; }
.stat-label { font-size: 0.9em; opacity: 0.8; }
.tree-container { background: white; padding: 20px; border-radius: 10px; max-height: 80vh; overflow: auto; }
.tree-node { margin: 2px 0; }
.tree-node.directory { font-weight: bold; color: #495057; cursor: pointer; }
.tree-node.file { color: #6c757d; }
.tree-name { color: #212529; }
.tree-size { color: #6c757d; font-size: 0.9em; margin-left: 10px; }
.tree-children { margin-left: 20px; border-left: 1px dotted #dee2e6; padding-left: 10px; }
.collapsed { display: none; }
</style>
</head>
<body>
<div class="header">
<h1>{{.Title}}</h1>
<div class="stats">
<div class="stat"><div class="stat-value">{{.TotalFolders}}</div><div class="stat-label">Folders</div></div>
<div class="stat"><div class="stat-value">{{.TotalFiles}}</div><div class="stat-label">Files</div></div>
<div class="stat"><div class="stat-value">{{.TotalSizeHuman}}</div><div class="stat-label">Total Size</div></div>
</div>
</div>
<div class="tree-container">
{{template "node" .Root}}
</div>
<script>
function toggleNode(event, element) {
  event.stopPropagation();
  var children = element.nextElementSibling;
  if (children && children.classList.contains('tree-children')) {
    children.classList.toggle('collapsed');
  }
}
</script>
</body>
</html>
{{define "node"}}{{if .IsDirectory}}<div class="tree-node directory" onclick="toggleNode(event, this)"><span class="tree-icon">{{glyph .}}</span> <span class="tree-name">{{.Name}}</span> <span class="tree-size">{{annotation .}}</span></div>
{{if .Children}}<div class="tree-children">
{{range .Children}}{{template "node" .}}{{end}}</div>
{{end}}{{else}}<div class="tree-node file"><span class="tree-icon">{{glyph .}}</span> <span class="tree-name">{{.Name}}</span> <span class="tree-size">{{annotation .}}</span></div>
{{end}}{{end}}`
