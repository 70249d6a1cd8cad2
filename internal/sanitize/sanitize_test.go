package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean_RemovesScriptElements(t *testing.T) {
	out := Clean("<script>alert(1)</script>hello")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hello")
}

func TestClean_ScriptVariants(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"uppercase", "<SCRIPT>alert(1)</SCRIPT>safe"},
		{"mixed case", "<ScRiPt src='x'>alert(1)</sCrIpT>safe"},
		{"multiline", "<script>\nalert(1);\nalert(2);\n</script>safe"},
		{"unclosed", "<script src='evil.js'>safe"},
		{"iframe", "<iframe src='//evil'></iframe>safe"},
		{"object", "<object data='x'></object>safe"},
		{"embed", "<embed src='x'></embed>safe"},
		{"unclosed iframe", "<iframe src='//evil'>safe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Clean(tt.input)
			assert.NotContains(t, out, "<script")
			assert.NotContains(t, out, "<SCRIPT")
			assert.NotContains(t, out, "<iframe")
			assert.NotContains(t, out, "<object")
			assert.NotContains(t, out, "<embed")
			assert.Contains(t, out, "safe")
		})
	}
}

func TestClean_RemovesEventHandlersKeepsTag(t *testing.T) {
	out := Clean(`<b onclick="evil()">bold</b>`)
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "evil")
	assert.Contains(t, out, "<b>bold</b>")

	out = Clean(`<p onmouseover='steal()'>text</p>`)
	assert.NotContains(t, out, "onmouseover")
	assert.Contains(t, out, "<p>text</p>")
}

func TestClean_RemovesScriptSchemeURIs(t *testing.T) {
	out := Clean(`<a href="javascript:alert(1)">link</a>`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "link")

	out = Clean(`<img src='javascript:bad()'>`)
	assert.NotContains(t, out, "javascript:")

	// Ordinary links survive
	out = Clean(`<a href="https://example.com">ok</a>`)
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>hello",
		`<b onclick="evil()">bold</b>`,
		`<a href="javascript:x">y</a>`,
		"plain text, no markup at all",
		"<p>kept <strong>formatting</strong></p>",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "Clean must be idempotent for %q", in)
	}
}

func TestDisplay_AllowlistIsAuthoritative(t *testing.T) {
	out := Display("<script>alert(1)</script><b>hello</b>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "<b>hello</b>")
}

func TestDisplay_KeepsFormattingDropsHandlers(t *testing.T) {
	out := Display(`<p onclick="evil()">para</p><em>kept</em>`)
	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "para")
	assert.Contains(t, out, "<em>kept</em>")
}

func TestDisplay_RestrictsLinkSchemes(t *testing.T) {
	out := Display(`<a href="javascript:alert(1)">bad</a>`)
	assert.NotContains(t, out, "javascript:")

	out = Display(`<a href="https://example.com">good</a>`)
	assert.Contains(t, out, "https://example.com")
}
