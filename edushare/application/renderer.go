package application

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const snippetMaxLength = 200

// RenderResult contains the derived representations of a post body.
type RenderResult struct {
	HTML    string
	Snippet string
}

// ContentRenderer converts a post's markdown source into HTML and a
// plain-text snippet for listings.
type ContentRenderer interface {
	Render(markdown string) (*RenderResult, error)
}

// attachmentLinkTransformer rewrites relative image and link destinations
// into bucket preview URLs, so post bodies can reference uploaded files by
// their bare file id.
type attachmentLinkTransformer struct {
	previewURL func(fileID string) string
}

func (t *attachmentLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		link, linkOk := n.(*ast.Link)
		img, imgOk := n.(*ast.Image)
		if !linkOk && !imgOk {
			return ast.WalkContinue, nil
		}

		dest := ""
		if linkOk {
			dest = string(link.Destination)
		} else if imgOk {
			dest = string(img.Destination)
		}

		if isRelativeDest(dest) {
			rewritten := []byte(t.previewURL(strings.TrimPrefix(dest, "./")))
			if imgOk {
				img.Destination = rewritten
			} else {
				link.Destination = rewritten
			}
		}

		return ast.WalkContinue, nil
	})
}

func isRelativeDest(dest string) bool {
	if dest == "" {
		return false
	}

	if strings.HasPrefix(dest, "/") {
		return false
	}

	if strings.HasPrefix(dest, "./") {
		return true
	}

	// Anything with a scheme or fragment is left alone
	if strings.ContainsAny(dest, ":#") {
		return false
	}

	return true
}

type goldmarkRenderer struct {
	renderer goldmark.Markdown
}

// NewContentRenderer builds the production renderer. previewURL turns a file
// id into the URL clients fetch the attachment from.
func NewContentRenderer(previewURL func(fileID string) string) ContentRenderer {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&attachmentLinkTransformer{previewURL: previewURL}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &goldmarkRenderer{
		renderer: renderer,
	}
}

func (r *goldmarkRenderer) Render(markdown string) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}

	return &RenderResult{
		HTML:    buf.String(),
		Snippet: extractSnippet(markdown),
	}, nil
}

// extractSnippet pulls the first plain paragraph out of the markdown source,
// truncated on a word boundary.
func extractSnippet(markdown string) string {
	lines := strings.Split(markdown, "\n")
	var paragraphLines []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Skip headings before we find content
		if strings.HasPrefix(trimmed, "#") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		// Empty line handling
		if trimmed == "" {
			if len(paragraphLines) > 0 {
				break // End of first paragraph
			}
			continue
		}

		// Stop at code blocks, horizontal rules, lists, tables
		if strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "---") ||
			strings.HasPrefix(trimmed, "***") ||
			strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			strings.HasPrefix(trimmed, "|") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		paragraphLines = append(paragraphLines, trimmed)
	}

	if len(paragraphLines) == 0 {
		return ""
	}

	snippet := strings.Join(paragraphLines, " ")

	if len(snippet) > snippetMaxLength {
		snippet = snippet[:snippetMaxLength]
		if lastSpace := strings.LastIndexAny(snippet, " \t"); lastSpace > 0 {
			snippet = snippet[:lastSpace]
		}
		snippet += "..."
	}

	return snippet
}
