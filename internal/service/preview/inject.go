// Package preview runs the generated document inside an isolated rendering
// surface and carries the selection/mutation protocol between that surface
// and the host. The host never touches the sandbox DOM directly: every
// mutation is a validated message, so the two sides can live in fully
// isolated execution contexts even when the document is attacker-controlled.
package preview

import (
	_ "embed"
	"strings"
)

//go:embed editor.js
var editorScript string

const closingBody = "</body>"

// Instrument returns the document ready to render. With editable set, the
// instrumentation script is inserted immediately before the closing body tag
// (appended when the document has none). Read-only previews are returned
// byte-identical to the stored document.
func Instrument(doc string, editable bool) string {
	if doc == "" || !editable {
		return doc
	}

	payload := "<script>\n" + editorScript + "</script>\n"

	if idx := strings.LastIndex(doc, closingBody); idx >= 0 {
		return doc[:idx] + payload + doc[idx:]
	}
	return doc + payload
}
