package preview

import (
	"strings"
	"testing"
)

func TestInstrument_InsertsBeforeClosingBody(t *testing.T) {
	doc := "<html><body><h1>Hi</h1></body></html>"

	out := Instrument(doc, true)

	scriptIdx := strings.Index(out, "<script>")
	bodyIdx := strings.LastIndex(out, "</body>")
	if scriptIdx < 0 {
		t.Fatalf("script not injected: %q", out)
	}
	if scriptIdx > bodyIdx {
		t.Errorf("script injected after closing body tag")
	}
	if !strings.Contains(out, "<h1>Hi</h1>") {
		t.Errorf("document content altered")
	}
	if !strings.HasSuffix(out, "</body></html>") {
		t.Errorf("document tail altered: %q", out[len(out)-40:])
	}
}

func TestInstrument_AppendsWhenNoBodyTag(t *testing.T) {
	doc := "<h1>fragment</h1>"

	out := Instrument(doc, true)
	if !strings.HasPrefix(out, doc) {
		t.Errorf("fragment altered: %q", out)
	}
	if !strings.Contains(out, "<script>") {
		t.Errorf("script not appended")
	}
}

func TestInstrument_ReadOnlyIsByteIdentical(t *testing.T) {
	doc := "<html><body>content</body></html>"

	if out := Instrument(doc, false); out != doc {
		t.Errorf("read-only preview modified")
	}
}

func TestInstrument_EmptyDocument(t *testing.T) {
	if out := Instrument("", true); out != "" {
		t.Errorf("empty document instrumented: %q", out)
	}
}

// The tag search is a raw string match, so the last occurrence wins even if
// the document mentions the tag in text earlier on.
func TestInstrument_LastClosingBodyWins(t *testing.T) {
	doc := "<html><body><code>&lt;/body&gt;</code></body></html>"

	out := Instrument(doc, true)
	bodyIdx := strings.LastIndex(out, "</body>")
	scriptEnd := strings.LastIndex(out, "</script>")
	if scriptEnd > bodyIdx {
		t.Errorf("script landed after the final closing body tag")
	}
}
