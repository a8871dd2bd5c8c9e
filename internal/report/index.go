package report

import (
	"fmt"
	"html"
)

// Index renders the index document enumerating all twelve sections in
// order. Links are relative filenames, so the document set stays
// addressable as a unit wherever the namespace is hosted.
func Index(in Input) string {
	links := ""
	for _, s := range Sections() {
		links += fmt.Sprintf(
			"<a href=\"%s\" class=\"slide-link\">Slide %d: %s</a>\n",
			s.Filename(), int(s), html.EscapeString(s.Label()),
		)
	}
	name := html.EscapeString(in.Snapshot.Project.Name)
	css := `body{margin:0;font-family:Arial,sans-serif;padding:20px}h1{color:#1a202c}` +
		`.slides{display:grid;grid-template-columns:repeat(auto-fill,minmax(300px,1fr));gap:20px;margin-top:20px}` +
		`.slide-link{display:block;padding:20px;background:#f7fafc;border-radius:8px;text-decoration:none;color:#1a202c;border:2px solid transparent}` +
		`.slide-link:hover{border-color:#667eea;background:#fff}`
	body := `<h1>` + name + ` - Financial Portfolio</h1>
<div class="slides">
` + links + `</div>`
	return page(name+" - Portfolio", css, body)
}
