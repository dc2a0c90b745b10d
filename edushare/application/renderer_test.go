package application

import (
	"strings"
	"testing"
)

func TestRender_BasicMarkdown(t *testing.T) {
	r := NewContentRenderer(testPreviewURL)

	result, err := r.Render("# Title\n\nSome **bold** text")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(result.HTML, "<h1") {
		t.Errorf("HTML missing heading: %q", result.HTML)
	}
	if !strings.Contains(result.HTML, "<strong>bold</strong>") {
		t.Errorf("HTML missing bold text: %q", result.HTML)
	}
	if result.Snippet != "Some **bold** text" {
		t.Errorf("Snippet = %q, want first paragraph", result.Snippet)
	}
}

func TestRender_RewritesAttachmentLinks(t *testing.T) {
	r := NewContentRenderer(testPreviewURL)

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "bare file id image",
			markdown: "![cover](abc123)",
			want:     testPreviewURL("abc123"),
		},
		{
			name:     "dot-slash link",
			markdown: "[download](./abc123)",
			want:     testPreviewURL("abc123"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Render(tt.markdown)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(result.HTML, tt.want) {
				t.Errorf("HTML = %q, want it to contain %q", result.HTML, tt.want)
			}
		})
	}
}

func TestRender_LeavesAbsoluteLinksAlone(t *testing.T) {
	r := NewContentRenderer(testPreviewURL)

	result, err := r.Render("[site](https://example.com/page) and [root](/local/path)")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !strings.Contains(result.HTML, `href="https://example.com/page"`) {
		t.Errorf("absolute URL was rewritten: %q", result.HTML)
	}
	if !strings.Contains(result.HTML, `href="/local/path"`) {
		t.Errorf("rooted path was rewritten: %q", result.HTML)
	}
}

func TestExtractSnippet(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "simple paragraph",
			markdown: "Just some text",
			want:     "Just some text",
		},
		{
			name:     "skips heading",
			markdown: "# Heading\n\nThe real content",
			want:     "The real content",
		},
		{
			name:     "joins wrapped lines",
			markdown: "first line\nsecond line",
			want:     "first line second line",
		},
		{
			name:     "stops at blank line",
			markdown: "first paragraph\n\nsecond paragraph",
			want:     "first paragraph",
		},
		{
			name:     "skips leading list",
			markdown: "- one\n- two\n\nafter the list",
			want:     "after the list",
		},
		{
			name:     "empty input",
			markdown: "",
			want:     "",
		},
		{
			name:     "only headings",
			markdown: "# One\n## Two",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractSnippet(tt.markdown); got != tt.want {
				t.Errorf("extractSnippet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSnippet_TruncatesOnWordBoundary(t *testing.T) {
	long := strings.Repeat("word ", 60)

	snippet := extractSnippet(long)

	if len(snippet) > snippetMaxLength+len("...") {
		t.Errorf("snippet length %d exceeds the limit", len(snippet))
	}
	if !strings.HasSuffix(snippet, "...") {
		t.Errorf("snippet %q missing ellipsis", snippet)
	}
	if strings.HasSuffix(strings.TrimSuffix(snippet, "..."), " ") {
		t.Errorf("snippet %q truncated mid-boundary", snippet)
	}
}
