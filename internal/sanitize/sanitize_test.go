package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsEventHandlers(t *testing.T) {
	s := New()
	out := s.Sanitize(`<img src=x onerror=alert(1)>`)
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "alert")
}

func TestSanitizeStripsScriptTags(t *testing.T) {
	s := New()
	out := s.Sanitize(`<p>hello</p><script>alert(1)</script>`)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "hello")
}

func TestSanitizeKeepsFormattingMarkup(t *testing.T) {
	s := New()
	out := s.Sanitize(`<p>hi <strong>there</strong> <a href="https://example.com">link</a></p>`)
	assert.Contains(t, out, "<strong>there</strong>")
	assert.Contains(t, out, `href="https://example.com"`)
}

func TestSanitizeMalformedInputDoesNotPanic(t *testing.T) {
	s := New()
	assert.NotPanics(t, func() {
		s.Sanitize(`<div><p>unclosed <b>tags <<>> <script`)
	})
}

func TestExtractScriptsPullsInlineBodies(t *testing.T) {
	s := New()
	scripts, rest := s.ExtractScripts(`<p>before</p><script>var a = 1;</script><p>after</p>`)
	assert.Len(t, scripts, 1)
	assert.Equal(t, "var a = 1;", scripts[0])
	assert.NotContains(t, rest, "<script")
	assert.Contains(t, rest, "before")
	assert.Contains(t, rest, "after")
}

func TestExtractScriptsDropsExternalReferences(t *testing.T) {
	s := New()
	scripts, rest := s.ExtractScripts(`<script src="https://evil.example/x.js"></script><p>ok</p>`)
	assert.Empty(t, scripts)
	assert.NotContains(t, rest, "evil.example")
	assert.Contains(t, rest, "ok")
}

func TestExtractScriptsNoScriptContent(t *testing.T) {
	s := New()
	scripts, rest := s.ExtractScripts(`<p>plain markup</p>`)
	assert.Empty(t, scripts)
	assert.Equal(t, `<p>plain markup</p>`, rest)
}

func TestExtractScriptsMultiple(t *testing.T) {
	s := New()
	scripts, _ := s.ExtractScripts(`<script>one();</script><div></div><script>two();</script>`)
	assert.Equal(t, []string{"one();", "two();"}, scripts)
}
